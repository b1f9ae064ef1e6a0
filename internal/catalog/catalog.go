package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound is returned by Get for ids the catalog does not hold.
var ErrNotFound = errors.New("scenario not found")

// Catalog is a read-only scenario table. Safe for concurrent use since it
// never changes after construction.
type Catalog struct {
	scenarios []Scenario
	byID      map[string]int
}

// New builds a catalog from the given scenarios, keeping their order.
func New(scenarios ...Scenario) (*Catalog, error) {
	if err := validateScenarios(scenarios); err != nil {
		return nil, err
	}

	c := &Catalog{
		scenarios: make([]Scenario, len(scenarios)),
		byID:      make(map[string]int, len(scenarios)),
	}
	for i, s := range scenarios {
		s.Prompts = slices.Clone(s.Prompts)
		c.scenarios[i] = s
		c.byID[s.ID] = i
	}
	return c, nil
}

// Default returns the built-in workplace scenarios.
func Default() *Catalog {
	c, err := New(seedScenarios...)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid seed data: %v", err))
	}
	return c
}

// Get returns the scenario with the given id.
func (c *Catalog) Get(id string) (Scenario, error) {
	i, ok := c.byID[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s := c.scenarios[i]
	s.Prompts = slices.Clone(s.Prompts)
	return s, nil
}

// IDs returns scenario ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.scenarios))
	for i, s := range c.scenarios {
		ids[i] = s.ID
	}
	return ids
}

// All returns every scenario in declaration order.
func (c *Catalog) All() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	for i, s := range c.scenarios {
		s.Prompts = slices.Clone(s.Prompts)
		out[i] = s
	}
	return out
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.scenarios)
}

// validateScenarios collects every structural problem in one error.
func validateScenarios(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return errors.New("catalog needs at least one scenario")
	}

	var errs []string
	seen := make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("scenario %q has an empty id", s.Title))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate scenario id: %q", s.ID))
		}
		seen[s.ID] = true

		if len(s.Prompts) == 0 {
			errs = append(errs, fmt.Sprintf("scenario %q has no prompts", s.ID))
		}
		for i, p := range s.Prompts {
			if strings.TrimSpace(p.Text) == "" {
				errs = append(errs, fmt.Sprintf("scenario %q prompt %d is empty", s.ID, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
