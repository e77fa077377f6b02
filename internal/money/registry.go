package money

import (
	"fmt"
	"os"
	"regexp"

	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

// maxSubunits bounds override exponents; decimal handles more but no real
// currency needs it.
const maxSubunits = 18

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Registry is the read-only currency lookup the core depends on.
type Registry interface {
	// Contains reports whether the code is a known currency.
	Contains(c Currency) bool

	// SubunitFor returns the number of fractional digits of the currency's
	// smallest unit. Callers must check Contains first.
	SubunitFor(c Currency) int
}

// ISORegistry resolves ISO 4217 codes and their standard fractional digits
// from the CLDR tables in golang.org/x/text/currency. Entries loaded from an
// overrides file take precedence and may add codes the tables do not know.
type ISORegistry struct {
	overrides map[Currency]int
}

// NewISORegistry returns a registry without overrides.
func NewISORegistry() *ISORegistry {
	return &ISORegistry{overrides: map[Currency]int{}}
}

// OverridesFile is the YAML layout of a registry overrides file:
//
//	currencies:
//	  - code: XBT
//	    subunits: 8
type OverridesFile struct {
	Currencies []CurrencyOverride `yaml:"currencies"`
}

// CurrencyOverride adds a currency or replaces its subunit exponent.
type CurrencyOverride struct {
	Code     string `yaml:"code"`
	Subunits int    `yaml:"subunits"`
}

// LoadISORegistry returns an ISO registry extended with the overrides in path.
// An empty path yields the plain ISO registry.
func LoadISORegistry(path string) (*ISORegistry, error) {
	registry := NewISORegistry()
	if path == "" {
		return registry, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("money: failed to read currency overrides: %w", err)
	}

	var file OverridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("money: failed to parse currency overrides %s: %w", path, err)
	}

	for _, o := range file.Currencies {
		if err := registry.Override(Currency(o.Code), o.Subunits); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Override registers code with the given subunit exponent.
func (r *ISORegistry) Override(code Currency, subunits int) error {
	if !codePattern.MatchString(string(code)) {
		return fmt.Errorf("money: invalid override currency code %q", code)
	}
	if subunits < 0 || subunits > maxSubunits {
		return fmt.Errorf("money: invalid subunits %d for %s (allowed 0-%d)", subunits, code, maxSubunits)
	}
	r.overrides[code] = subunits
	return nil
}

// Contains implements Registry.
func (r *ISORegistry) Contains(c Currency) bool {
	if _, ok := r.overrides[c]; ok {
		return true
	}
	_, ok := parseISO(c)
	return ok
}

// SubunitFor implements Registry.
func (r *ISORegistry) SubunitFor(c Currency) int {
	if subunits, ok := r.overrides[c]; ok {
		return subunits
	}
	unit, ok := parseISO(c)
	if !ok {
		return 0
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// parseISO only accepts exact upper case codes; x/text folds case on its own.
func parseISO(c Currency) (currency.Unit, bool) {
	if !codePattern.MatchString(string(c)) {
		return currency.Unit{}, false
	}
	unit, err := currency.ParseISO(string(c))
	if err != nil || unit.String() != string(c) {
		return currency.Unit{}, false
	}
	return unit, true
}
