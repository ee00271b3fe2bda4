package booking

import (
	"strings"

	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/pricing"
	"tripquote/internal/domain/shared/daterange"
)

// Display messages for an invalid form.
const (
	MessageIncomplete     = "Please complete all required fields and ensure dates are valid."
	MessageSelectPackage  = "Please select a package."
	MessageSubmitBlocked  = "Please check the form: Ensure all fields are valid, dates are correct, and a package is selected."
	MessageSubmitAccepted = "Booking request submitted successfully!\nEstimated total: "
)

// Problem explains why a form is not bookable.
type Problem uint8

const (
	ProblemNone Problem = iota
	// ProblemIncomplete covers a missing name, package, guests or a missing/inverted date range.
	ProblemIncomplete
	// ProblemPackageNotFound is a selected package id that is not in the catalog.
	ProblemPackageNotFound
)

func (p Problem) Message() string {
	switch p {
	case ProblemIncomplete:
		return MessageIncomplete
	case ProblemPackageNotFound:
		return MessageSelectPackage
	default:
		return ""
	}
}

func (p Problem) String() string {
	switch p {
	case ProblemNone:
		return "none"
	case ProblemIncomplete:
		return "incomplete"
	case ProblemPackageNotFound:
		return "package_not_found"
	default:
		return "unknown"
	}
}

// Assessment is the result of checking form fields against the catalog.
type Assessment struct {
	Problem Problem
	Package catalog.Package
	Range   daterange.DateRange
	Nights  int
	Guests  int
	Promo   pricing.Promo
}

func (a Assessment) Valid() bool {
	return a.Problem == ProblemNone
}

// QuoteInput is only meaningful for a valid assessment.
func (a Assessment) QuoteInput() pricing.QuoteInput {
	return pricing.QuoteInput{
		Package: a.Package,
		Nights:  a.Nights,
		Guests:  a.Guests,
		Promo:   a.Promo,
	}
}

// Assess validates the fields. A form is valid with a non-empty name, a selected package that
// exists in the catalog, at least one guest and a date range of one night or more.
func Assess(f Fields, c *catalog.Catalog) Assessment {
	var a Assessment
	a.Promo = pricing.ParsePromo(f.PromoCode)
	a.Guests, _ = ParseGuests(f.Guests)
	a.Nights = nights(f.StartDate, f.EndDate)

	selected := strings.TrimSpace(f.PackageSelection)
	if strings.TrimSpace(f.Name) == "" || selected == "" || a.Guests < 1 || a.Nights <= 0 {
		a.Problem = ProblemIncomplete
		return a
	}
	pkg, err := c.ByID(catalog.PackageID(selected))
	if err != nil {
		a.Problem = ProblemPackageNotFound
		return a
	}
	a.Package = pkg
	a.Range, _ = daterange.Parse(f.StartDate, f.EndDate)
	return a
}

func nights(start, end string) int {
	from, err := daterange.ParseDate(start)
	if err != nil {
		return 0
	}
	to, err := daterange.ParseDate(end)
	if err != nil {
		return 0
	}
	return daterange.NightsBetween(from, to)
}
