package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/pricing"
	"tripquote/internal/domain/shared/daterange"
	"tripquote/internal/domain/shared/events"
	"tripquote/internal/domain/shared/money"
)

var (
	ErrInvalidForm         = errors.New("booking: form is not valid")
	ErrSubmissionIDMissing = errors.New("booking: submission id is required")
	ErrSubmissionNotFound  = errors.New("booking: submission not found")
)

type SubmissionID string

// Submission is an accepted booking request.
type Submission struct {
	ID          SubmissionID
	Name        string
	PackageID   catalog.PackageID
	Destination string
	Range       daterange.DateRange
	Nights      int
	Guests      int
	PromoCode   string
	Total       money.Money
	CreatedAt   time.Time
	events.Log
}

type Repository interface {
	Save(ctx context.Context, s *Submission) error
	ByID(ctx context.Context, id SubmissionID) (*Submission, error)
}

// Submit turns a valid form into a Submission priced by the engine and records
// a BookingRequested event.
func Submit(id SubmissionID, f Fields, c *catalog.Catalog, now time.Time) (*Submission, error) {
	if id == "" {
		return nil, ErrSubmissionIDMissing
	}
	a := Assess(f, c)
	if !a.Valid() {
		return nil, ErrInvalidForm
	}
	s := &Submission{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		PackageID:   a.Package.ID,
		Destination: a.Package.Destination,
		Range:       a.Range,
		Nights:      a.Nights,
		Guests:      a.Guests,
		PromoCode:   a.Promo.Code(),
		Total:       pricing.QuoteMoney(a.QuoteInput()),
		CreatedAt:   now.UTC(),
	}
	s.Record(BookingRequested{
		SubmissionID: s.ID,
		PackageID:    s.PackageID,
		Name:         s.Name,
		Range:        s.Range,
		Nights:       s.Nights,
		Guests:       s.Guests,
		PromoCode:    s.PromoCode,
		Total:        s.Total,
		At:           s.CreatedAt,
	})
	return s, nil
}
