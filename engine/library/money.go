package library

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats a whole-dollar amount with thousands separators, e.g. $94,870.
func Money(amount float64) string {
	if amount < 0 {
		return printer.Sprintf("-$%.0f", -amount)
	}
	return printer.Sprintf("$%.0f", amount)
}

// Quantity formats a value with thousands separators and the given number of decimals.
func Quantity(v float64, decimals int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}
