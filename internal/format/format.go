// Package format holds the pure display formatters shared by handlers:
// Chilean peso amounts, delivery dates and catalog category names.
package format

import (
	"strconv"
	"time"
)

// Price renders an integer peso amount in Chilean convention, with a dot as
// the thousands separator: Price(5000) == "$5.000".
func Price(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return sign + "$" + string(out)
}

// Date renders a time in the DD-MM-YYYY form used across the storefront.
func Date(t time.Time) string {
	return t.Format("02-01-2006")
}

// categoryNames maps catalog category codes to their display names.
var categoryNames = map[string]string{
	"TC":  "Tortas Cuadradas",
	"TT":  "Tortas Circulares",
	"PI":  "Postres Individuales",
	"PSA": "Productos Sin Azúcar",
	"PT":  "Pastelería Tradicional",
	"PG":  "Productos Sin Gluten",
	"PV":  "Productos Veganos",
	"TE":  "Tortas Especiales",
}

// CategoryName resolves a category code to its display name. Unknown codes
// are echoed back so a new code never renders as an empty label.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}
