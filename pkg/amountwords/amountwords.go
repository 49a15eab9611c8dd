// Package amountwords spells monetary amounts using the Indian numbering system
// (thousand, lakh, crore) as printed on invoices.
package amountwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Currency names the major and minor units.
type Currency struct {
	Major string
	Minor string
}

// Taka is the default currency on printed invoices.
var Taka = Currency{Major: "Taka", Minor: "Paisa"}

// Spell returns amount in words, e.g. 123456.78 ->
// "One Lakh Twenty Three Thousand Four Hundred Fifty Six Taka and Seventy Eight Paisa Only".
// Negative amounts are prefixed with "Minus".
func Spell(amount decimal.Decimal, cur Currency) string {
	amount = amount.Round(2)
	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}

	major := amount.IntPart()
	minor := amount.Sub(decimal.NewFromInt(major)).Mul(decimal.NewFromInt(100)).IntPart()

	words := Integer(major)
	if words == "" {
		words = "Zero"
	}
	out := prefix + words + " " + cur.Major
	if minor > 0 {
		out += " and " + Integer(minor) + " " + cur.Minor
	}
	return out + " Only"
}

// Integer spells a non-negative integer; zero yields the empty string.
func Integer(n int64) string {
	if n <= 0 {
		return ""
	}
	var parts []string
	scales := []struct {
		value int64
		name  string
	}{
		{10000000, "Crore"},
		{100000, "Lakh"},
		{1000, "Thousand"},
		{100, "Hundred"},
	}
	for _, s := range scales {
		if n >= s.value {
			q := n / s.value
			parts = append(parts, Integer(q), s.name)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
