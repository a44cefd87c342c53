package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is exclusive: a subtotal of exactly 100 still pays ShippingFee.
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.NewFromInt(10)
	TaxRate               = decimal.RequireFromString("0.08")
)

// plainAmount is a non-negative amount of at most 9 integer and 2 fraction digits. Exponents are
// not accepted.
var plainAmount = regexp.MustCompile(`^\d{1,9}(\.\d{1,2})?$`)

// ParsePrice turns a display price such as "$25", "₹1,200" or "Rs. 99.50" into an amount.
// Currency symbols, letters and spaces around the number are ignored, thousands separators dropped.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ValidationError("price is required")
	}

	start := 0
	prevLetter := false
scan:
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		switch {
		case unicode.Is(unicode.Sc, r), unicode.IsSpace(r):
			prevLetter = false
		case unicode.IsLetter(r):
			prevLetter = true
		case r == '.' && prevLetter:
			// abbreviation dot, as in "Rs."
			prevLetter = false
		default:
			break scan
		}
		start += size
	}
	s = strings.TrimRightFunc(s[start:], func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
	})
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, ValidationError("price %q cannot be negative", raw)
	}
	if !plainAmount.MatchString(s) {
		return decimal.Zero, ValidationError("invalid price %q", raw)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ValidationError("invalid price %q", raw)
	}
	return amount, nil
}

// Pricing is the checkout breakdown derived from a cart subtotal.
type Pricing struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"totalAmount"`
}

func PriceSubtotal(subtotal decimal.Decimal) Pricing {
	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)
	return Pricing{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}
