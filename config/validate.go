package config

import (
	"errors"
	"fmt"

	"github.com/cloudx-io/rosterauction/core"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if len(c.Organizations) == 0 {
		return errors.New("organizations must not be empty")
	}

	seen := make(map[string]struct{}, len(c.Organizations))
	for i, org := range c.Organizations {
		if org.Code == "" {
			return fmt.Errorf("organizations[%d].code is required", i)
		}
		if _, dup := seen[org.Code]; dup {
			return fmt.Errorf("organizations[%d].code %q is duplicated", i, org.Code)
		}
		seen[org.Code] = struct{}{}
	}

	specs, err := c.OrgSpecs()
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if spec.Budget <= 0 {
			return fmt.Errorf("organizations.%s.budget must be > 0, got %s", spec.Code, spec.Budget)
		}
	}

	settings, err := c.Settings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if _, err := core.NewRegistry(specs); err != nil {
		return err
	}
	return nil
}
