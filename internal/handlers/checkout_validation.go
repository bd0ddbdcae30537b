package handlers

import (
	"regexp"
	"time"
	"unicode"
)

//
// --- Checkout Form Validation ---
//
// These checks go beyond what gin binding tags can express (letters-only
// names, digit counting, a rolling date window), so they live here as plain
// functions. A failed validation must abort checkout before any database
// work happens.
//

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateCheckout returns a field -> message map; an empty map means the
// form is acceptable. 'now' is injected so the delivery window is testable.
func validateCheckout(input CheckoutInput, now time.Time) map[string]string {
	errs := map[string]string{}

	if input.Name == "" {
		errs["name"] = "Name is required"
	} else if !lettersAndSpacesOnly(input.Name) {
		errs["name"] = "Name may only contain letters and spaces"
	}

	if input.Phone == "" {
		errs["phone"] = "Phone is required"
	} else if digitCount(input.Phone) < 8 {
		errs["phone"] = "Phone must contain at least 8 digits"
	}

	if input.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(input.Email) {
		errs["email"] = "Email is not valid"
	}

	if input.Address == "" {
		errs["address"] = "Address is required"
	}

	if input.DeliveryDate == "" {
		errs["deliveryDate"] = "Delivery date is required"
	} else if msg := validateDeliveryDate(input.DeliveryDate, now); msg != "" {
		errs["deliveryDate"] = msg
	}

	return errs
}

// lettersAndSpacesOnly accepts unicode letters (accented names included)
// and spaces, nothing else.
func lettersAndSpacesOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// digitCount counts decimal digits, so "+56 9 1234 5678" passes while
// separators do not inflate the count.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// validateDeliveryDate accepts YYYY-MM-DD dates within [today, today+1
// month]. Comparison is by calendar day, not by clock time.
func validateDeliveryDate(value string, now time.Time) string {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "Delivery date must be in YYYY-MM-DD format"
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	latest := today.AddDate(0, 1, 0)

	if date.Before(today) {
		return "Delivery date cannot be in the past"
	}
	if date.After(latest) {
		return "Delivery date cannot be more than one month ahead"
	}
	return ""
}
