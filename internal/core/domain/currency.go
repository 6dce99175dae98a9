package domain

import (
	"fmt"
	"strings"
)

// Currency identifies one of the cash drawers kept in the caja mayor.
// The ledger stores the internal lowercase names; the HTTP boundary speaks
// ISO 4217 codes. All mapping between the two lives here and nowhere else.
type Currency string

const (
	Guaranies Currency = "guaranies"
	Dolares   Currency = "dolares"
	Reales    Currency = "reales"
)

// ReportingCurrency is the currency every multi-currency total collapses into.
const ReportingCurrency = Guaranies

// currencyToISO is the single bidirectional lookup between the ledger's
// internal names and the ISO codes used at the API boundary.
var currencyToISO = map[Currency]string{
	Guaranies: "PYG",
	Dolares:   "USD",
	Reales:    "BRL",
}

var isoToCurrency = func() map[string]Currency {
	m := make(map[string]Currency, len(currencyToISO))
	for c, iso := range currencyToISO {
		m[iso] = c
	}
	return m
}()

// SupportedCurrencies returns the fixed currency set in a stable order.
func SupportedCurrencies() []Currency {
	return []Currency{Guaranies, Dolares, Reales}
}

// IsValid reports whether c belongs to the supported set.
func (c Currency) IsValid() bool {
	_, ok := currencyToISO[c]
	return ok
}

// ISOCode returns the ISO 4217 code for c ("PYG", "USD", "BRL").
func (c Currency) ISOCode() string {
	return currencyToISO[c]
}

// Precision returns the number of decimal places the drawer is kept in.
// Guaraníes have no fractional unit.
func (c Currency) Precision() int32 {
	if c == Guaranies {
		return 0
	}
	return 2
}

// CurrencyFromISO maps a three-letter ISO code to the internal currency name.
func CurrencyFromISO(code string) (Currency, error) {
	c, ok := isoToCurrency[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return "", fmt.Errorf("unsupported currency code %q", code)
	}
	return c, nil
}

// ParseCurrency accepts either the internal name or the ISO code.
// Handlers use it so both forms are valid at the boundary.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c, nil
	}
	return CurrencyFromISO(s)
}
