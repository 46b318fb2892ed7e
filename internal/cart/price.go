package cart

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const currency = "MXN"

// ParsePrice turns a display price such as "$1,250.50 MXN" into a number.
// Every rune except ASCII digits and '.' is dropped and the longest numeric
// prefix of what remains is parsed, so "1.2.3" yields 1.2. Unparseable input
// yields 0.
func ParsePrice(s string) float64 {
	return parsePrefix(StripPrice(s))
}

// StripPrice keeps only ASCII digits and dots.
func StripPrice(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func parsePrefix(s string) float64 {
	end, digits, dot := 0, 0, false
	for end < len(s) {
		c := s[end]
		if c == '.' {
			if dot {
				break
			}
			dot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatTotal renders an order amount with two decimals: "$1350.00 MXN".
func FormatTotal(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2) + " " + currency
}

// FormatPrice renders a bare amount the way catalog prices are stored:
// "$450 MXN".
func FormatPrice(bare string) string {
	return "$" + bare + " " + currency
}
