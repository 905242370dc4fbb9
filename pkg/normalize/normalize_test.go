package normalize_test

import (
	"testing"

	"github.com/auditgrid/shadowmap/pkg/normalize"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"empty label", "", ""},
		{"plain name", "Alpha Product", "alpha product"},
		{"lower cases", "ALPHA PRODUCT", "alpha product"},
		{"pipe keeps trailing segment", "CARDS | Alpha Product", "alpha product"},
		{"middle dot keeps trailing segment", "Retail · Alpha Product", "alpha product"},
		{"last separator wins", "Tribe | Squad | Alpha Product", "alpha product"},
		{"punctuation becomes space", "Alpha-Product (v2)", "alpha product v2"},
		{"whitespace collapses", "  Alpha   Product  ", "alpha product"},
		{"diacritics stripped", "Café Crème", "cafe creme"},
		{"digits survive", "Product 360", "product 360"},
		{"only punctuation", "!!!", ""},
		{"separator with empty tail", "Alpha |", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize.Identity(tt.label); got != tt.want {
				t.Errorf("Identity(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestIdentityIdempotent(t *testing.T) {
	labels := []string{
		"",
		"Alpha Product",
		"CARDS | Alpha Product",
		"Retail · Alpha Product",
		"Café Crème",
		"Alpha-Product (v2)",
		"  spaced   out  ",
		"!!!",
	}

	for _, label := range labels {
		once := normalize.Identity(label)
		twice := normalize.Identity(once)
		if once != twice {
			t.Errorf("Identity not idempotent for %q: first %q, second %q", label, once, twice)
		}
	}
}

func TestFamily(t *testing.T) {
	policy := normalize.DefaultPolicy()

	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"empty identifier", "", ""},
		{"prefix region and qualifier stripped", "PT_ALPHA_PRODUCT_GB_STD", "alpha product"},
		{"region stripped", "UNMAPPED_WIDGET_FR", "unmapped widget"},
		{"multiple strip tokens", "MF_BETA_SERVICE_EUR_PREM", "beta service"},
		{"no strip tokens", "GAMMA_CORE", "gamma core"},
		{"lower case input", "pt_alpha_product_gb", "alpha product"},
		{"dashes split tokens", "ACQ-DELTA-PLATFORM-US", "delta platform"},
		{"all tokens stripped", "PT_GB_STD", ""},
		{"qualifier only strips whole tokens", "PT_STANDARD_PRODUCT", "standard product"},
		{"st token inside word survives", "FASTLANE_SERVICE", "fastlane service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize.Family(tt.identifier, policy); got != tt.want {
				t.Errorf("Family(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestFamilyMatchesIdentity(t *testing.T) {
	// The family of a SKU and the join key of its display label must
	// collide for the footprint merge to land.
	policy := normalize.DefaultPolicy()

	family := normalize.Family("PT_ALPHA_PRODUCT_GB_STD", policy)
	key := normalize.Identity("Alpha Product")

	if family != key {
		t.Errorf("Family %q does not match Identity %q", family, key)
	}
}
