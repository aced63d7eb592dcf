package orchestrator

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
)

const minFieldLength = 2

// FormError lists the form fields that failed the precondition gate.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// ValidateForm checks the business form before anything is sent.
// It returns nil when the form may be submitted.
func ValidateForm(id models.BusinessIdentity) *FormError {
	fields := make(map[string]string)
	checkField(fields, "name", id.Name, "Business name")
	checkField(fields, "location", id.Location, "Location")
	if len(fields) == 0 {
		return nil
	}
	return &FormError{Fields: fields}
}

func checkField(fields map[string]string, key, value, label string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		fields[key] = label + " is required"
	case utf8.RuneCountInString(value) < minFieldLength:
		fields[key] = label + " must be at least 2 characters"
	}
}
