// Package config loads auction session configuration from YAML with
// environment overrides.
package config

import (
	"fmt"

	"github.com/cloudx-io/rosterauction/core"
)

// Config is the auction configuration file.
type Config struct {
	// Amounts are major-unit decimal strings ("100", "0.1") so the file reads
	// the way auctioneers talk about money.
	InitialBudget    string               `yaml:"initial_budget" env:"AUCTION_INITIAL_BUDGET"`
	BidSteps         []string             `yaml:"bid_steps" env:"AUCTION_BID_STEPS" envSeparator:","`
	DefaultBidStep   string               `yaml:"default_bid_step" env:"AUCTION_DEFAULT_BID_STEP"`
	HistoryRetention int                  `yaml:"history_retention" env:"AUCTION_HISTORY_RETENTION"`
	PriceDecimals    *int32               `yaml:"price_decimals" env:"AUCTION_PRICE_DECIMALS"`
	Unit             string               `yaml:"unit" env:"AUCTION_UNIT"`
	Organizations    []OrganizationConfig `yaml:"organizations"`

	Catalog  string `yaml:"catalog" env:"AUCTION_CATALOG"`
	Journal  string `yaml:"journal" env:"AUCTION_JOURNAL"`
	Manifest string `yaml:"portrait_manifest" env:"AUCTION_PORTRAIT_MANIFEST"`
}

// OrganizationConfig is one bidding organization. Budget overrides
// InitialBudget when set.
type OrganizationConfig struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Budget string `yaml:"budget,omitempty"`
}

// Settings converts the configuration into core session settings.
func (c *Config) Settings() (core.Settings, error) {
	steps := make([]core.Money, 0, len(c.BidSteps))
	for _, raw := range c.BidSteps {
		step, err := core.ParseMoney(raw)
		if err != nil {
			return core.Settings{}, fmt.Errorf("bid_steps: %w", err)
		}
		steps = append(steps, step)
	}
	defaultStep, err := core.ParseMoney(c.DefaultBidStep)
	if err != nil {
		return core.Settings{}, fmt.Errorf("default_bid_step: %w", err)
	}

	decimals := core.DefaultPriceDecimals
	if c.PriceDecimals != nil {
		decimals = *c.PriceDecimals
	}

	return core.Settings{
		BidSteps:         steps,
		DefaultBidStep:   defaultStep,
		HistoryRetention: c.HistoryRetention,
		PriceDecimals:    decimals,
		Unit:             c.Unit,
	}, nil
}

// OrgSpecs converts the organizations into core specs.
func (c *Config) OrgSpecs() ([]core.OrgSpec, error) {
	specs := make([]core.OrgSpec, 0, len(c.Organizations))
	for _, org := range c.Organizations {
		raw := org.Budget
		if raw == "" {
			raw = c.InitialBudget
		}
		budget, err := core.ParseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("organizations.%s.budget: %w", org.Code, err)
		}
		specs = append(specs, core.OrgSpec{
			Code:   core.OrgCode(org.Code),
			Name:   org.Name,
			Budget: budget,
		})
	}
	return specs, nil
}
