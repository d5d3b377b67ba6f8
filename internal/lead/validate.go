package lead

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// FieldErrors maps a field name to its validation message. It is
// returned before any persistence is attempted.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func validateInput(in Input, policy surfacePolicy) FieldErrors {
	errs := FieldErrors{}

	if len(strings.TrimSpace(in.Name)) < 2 {
		errs["name"] = "Enter at least 2 characters"
	}

	if !isDigits(in.Phone) {
		errs["phone"] = "Phone must contain digits only"
	} else if len(in.Phone) < 10 {
		errs["phone"] = "Enter at least 10 digits"
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs["email"] = "Enter a valid email"
	}

	if len(in.InterestedIn) == 0 {
		errs["interested_in"] = "Please select at least one option"
	} else {
		for _, value := range in.InterestedIn {
			opt, ok := lookupOption(value)
			if !ok {
				errs["interested_in"] = fmt.Sprintf("Unknown option: %s", value)
				break
			}
			if opt.Disabled {
				errs["interested_in"] = fmt.Sprintf("Option is not available: %s", value)
				break
			}
		}
	}

	if policy.RequiresMessage && len(strings.TrimSpace(in.Message)) < 10 {
		errs["message"] = "Enter at least 10 characters"
	}

	if policy.RequiresConsent && !in.Agreement {
		errs["agreement"] = "Please agree to the terms"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
