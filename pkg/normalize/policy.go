package normalize

import (
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/auditgrid/shadowmap/pkg/errors"
)

// Policy enumerates the token lists Family strips from identifiers. The
// lists are a versioned configuration, not an inferred rule: changing them
// is an explicit, auditable change to how families are derived.
type Policy struct {
	// Version identifies the policy revision in audit metadata.
	Version int `json:"version" yaml:"version"`

	// Regions are country and region codes stripped from identifiers.
	Regions []string `json:"regions" yaml:"regions"`

	// Prefixes are structural prefix tokens stripped from identifiers.
	Prefixes []string `json:"prefixes" yaml:"prefixes"`

	// Qualifiers are plan-tier and marketing tokens stripped from identifiers.
	Qualifiers []string `json:"qualifiers" yaml:"qualifiers"`
}

// DefaultPolicy returns the built-in strip lists.
func DefaultPolicy() Policy {
	return Policy{
		Version:    1,
		Regions:    []string{"GB", "EUR", "US", "AU", "NZ", "SG", "JP", "RO", "FR", "PL", "ES", "IT", "IE"},
		Prefixes:   []string{"PT", "MF", "ACQ", "REVX", "RV", "PRCHS"},
		Qualifiers: []string{"REPRICING", "PLAN", "BASE", "STD", "PREM", "METAL", "PLUS", "OFFER", "FREE", "UL", "PR", "ST"},
	}
}

// LoadPolicy reads a YAML policy file. Token matching is case-insensitive:
// the lists are upper-cased on load.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, errors.WrapIO("read", path, err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, errors.WrapParse("yaml", path, err)
	}

	upper(p.Regions)
	upper(p.Prefixes)
	upper(p.Qualifiers)
	return p, nil
}

// strips reports whether an upper-cased token is named by any strip list.
func (p Policy) strips(token string) bool {
	return slices.Contains(p.Regions, token) ||
		slices.Contains(p.Prefixes, token) ||
		slices.Contains(p.Qualifiers, token)
}

func upper(tokens []string) {
	for i, t := range tokens {
		tokens[i] = strings.ToUpper(strings.TrimSpace(t))
	}
}
