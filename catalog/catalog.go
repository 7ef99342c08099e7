// Package catalog loads the entrant catalog from YAML or JSON files and
// validates it against the catalog schema before it reaches the auction.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cloudx-io/rosterauction/core"
)

//go:embed catalog.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("catalog.schema.json", schemaSource)

// Record is one entrant as written in a catalog file. BasePrice is in major
// units and may be a number or a decimal string.
type Record struct {
	Name             string      `json:"name"`
	Role             string      `json:"role"`
	Origin           string      `json:"origin"`
	BasePrice        json.Number `json:"basePrice"`
	PriorAffiliation string      `json:"priorAffiliation"`
	Capped           bool        `json:"capped"`
}

type document struct {
	Entrants []Record `json:"entrants"`
}

// Load reads a catalog file. The format is chosen by extension: .yaml and
// .yml are YAML, anything else is JSON.
func Load(path string) ([]core.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseYAML parses a YAML catalog.
func ParseYAML(data []byte) ([]core.Listing, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	// Round-trip through JSON so schema validation and decoding see exactly
	// the same value types for both formats.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert catalog yaml: %w", err)
	}
	return ParseJSON(jsonData)
}

// ParseJSON parses a JSON catalog.
func ParseJSON(data []byte) ([]core.Listing, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("catalog does not match schema: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	listings := make([]core.Listing, 0, len(doc.Entrants))
	for i, rec := range doc.Entrants {
		listing, err := rec.Listing()
		if err != nil {
			return nil, fmt.Errorf("entrant %d (%s): %w", i, rec.Name, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// Listing converts the record into a core listing. Organization codes are
// upper-cased to match how requests name organizations.
func (r Record) Listing() (core.Listing, error) {
	price, err := decimal.NewFromString(r.BasePrice.String())
	if err != nil {
		return core.Listing{}, fmt.Errorf("base price %q: %w", r.BasePrice, err)
	}
	base, err := core.MoneyFromDecimal(price)
	if err != nil {
		return core.Listing{}, fmt.Errorf("base price: %w", err)
	}
	return core.Listing{
		Name:             strings.TrimSpace(r.Name),
		Role:             r.Role,
		Origin:           r.Origin,
		BasePrice:        base,
		PriorAffiliation: core.OrgCode(strings.ToUpper(strings.TrimSpace(r.PriorAffiliation))),
		Capped:           r.Capped,
	}, nil
}
