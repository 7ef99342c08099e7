package core

import "fmt"

// Registry is the fixed set of bidding organizations for a run.
// Organizations keep the order they were registered in.
type Registry struct {
	specs  []OrgSpec
	orgs   []*Organization
	byCode map[OrgCode]int
}

// NewRegistry validates the organization specs and builds a registry with
// every organization at its initial budget and RTM eligibility.
func NewRegistry(specs []OrgSpec) (*Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one organization is required")
	}

	r := &Registry{
		specs:  make([]OrgSpec, len(specs)),
		byCode: make(map[OrgCode]int, len(specs)),
	}
	copy(r.specs, specs)

	for i, spec := range specs {
		if spec.Code == "" {
			return nil, fmt.Errorf("organization %d has an empty code", i)
		}
		if _, dup := r.byCode[spec.Code]; dup {
			return nil, fmt.Errorf("duplicate organization code %q", spec.Code)
		}
		if spec.Budget < 0 {
			return nil, fmt.Errorf("organization %q has negative budget %s", spec.Code, spec.Budget)
		}
		r.byCode[spec.Code] = i
	}

	r.reset()
	return r, nil
}

func (r *Registry) reset() {
	orgs := make([]*Organization, len(r.specs))
	for i, spec := range r.specs {
		orgs[i] = &Organization{
			Code:        spec.Code,
			Name:        spec.Name,
			Budget:      spec.Budget,
			Acquired:    []Acquisition{},
			RTMEligible: true,
		}
	}
	r.orgs = orgs
}

func (r *Registry) lookup(code OrgCode) (*Organization, error) {
	i, ok := r.byCode[code]
	if !ok {
		return nil, reject(CodeNotFound, "organization %q does not exist", code)
	}
	return r.orgs[i], nil
}

// Has reports whether code names a registered organization.
func (r *Registry) Has(code OrgCode) bool {
	_, ok := r.byCode[code]
	return ok
}

// Organization returns a copy of the organization's current state.
func (r *Registry) Organization(code OrgCode) (Organization, error) {
	org, err := r.lookup(code)
	if err != nil {
		return Organization{}, err
	}
	return org.clone(), nil
}

// Organizations returns copies of every organization in registration order.
func (r *Registry) Organizations() []Organization {
	out := make([]Organization, len(r.orgs))
	for i, org := range r.orgs {
		out[i] = org.clone()
	}
	return out
}

// Specs returns the initial organization specs.
func (r *Registry) Specs() []OrgSpec {
	out := make([]OrgSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// RemainingBudget sums every organization's current budget.
func (r *Registry) RemainingBudget() Money {
	var total Money
	for _, org := range r.orgs {
		total += org.Budget
	}
	return total
}

func (o *Organization) clone() Organization {
	c := *o
	c.Acquired = make([]Acquisition, len(o.Acquired))
	copy(c.Acquired, o.Acquired)
	return c
}
