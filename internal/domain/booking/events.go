package booking

import (
	"time"

	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/shared/daterange"
	"tripquote/internal/domain/shared/events"
	"tripquote/internal/domain/shared/money"
)

type BookingRequested struct {
	SubmissionID SubmissionID        `json:"submission_id"`
	PackageID    catalog.PackageID   `json:"package_id"`
	Name         string              `json:"name"`
	Range        daterange.DateRange `json:"range"`
	Nights       int                 `json:"nights"`
	Guests       int                 `json:"guests"`
	PromoCode    string              `json:"promo_code,omitempty"`
	Total        money.Money         `json:"total"`
	At           time.Time           `json:"at"`
}

// BookingRequestedName is also the outbox record name and selects the "booking" topic.
const BookingRequestedName events.Name = "booking.requested"

func (e BookingRequested) EventName() events.Name { return BookingRequestedName }
func (e BookingRequested) AggregateID() string    { return string(e.SubmissionID) }
func (e BookingRequested) OccurredAt() time.Time  { return e.At }
