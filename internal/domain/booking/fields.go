package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Form field names as they appear on the booking form.
const (
	FieldName             = "name"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldPackageSelection = "package_selection"
	FieldGuests           = "guests"
	FieldPromoCode        = "promo_code"
)

var ErrUnknownField = errors.New("booking: unknown form field")

// Fields holds the raw booking form values exactly as entered.
type Fields struct {
	Name             string `json:"name"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	PackageSelection string `json:"package_selection"`
	Guests           string `json:"guests"`
	PromoCode        string `json:"promo_code"`
}

// Set assigns a single field by its form name.
func (f *Fields) Set(name, value string) error {
	switch name {
	case FieldName:
		f.Name = value
	case FieldStartDate:
		f.StartDate = value
	case FieldEndDate:
		f.EndDate = value
	case FieldPackageSelection:
		f.PackageSelection = value
	case FieldGuests:
		f.Guests = value
	case FieldPromoCode:
		f.PromoCode = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Apply sets every field in values. Nothing is changed when a name is unknown.
func (f *Fields) Apply(values map[string]string) error {
	next := *f
	for name, value := range values {
		if err := next.Set(name, value); err != nil {
			return err
		}
	}
	*f = next
	return nil
}

// ParseGuests reads the leading integer of a guests input the way a browser's parseInt does:
// "3", " 3", "3 adults" and "3.5" all give 3. ok is false when no digits lead the value.
func ParseGuests(raw string) (n int, ok bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
