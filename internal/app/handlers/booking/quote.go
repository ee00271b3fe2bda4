package booking

import (
	"context"

	"tripquote/internal/app/bus"
	"tripquote/internal/app/dto"
	"tripquote/internal/app/form"
	domainbooking "tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
)

const quoteKey = "booking.quote"

// QuoteQuery evaluates a set of form fields without a session.
type QuoteQuery struct {
	Fields domainbooking.Fields
}

func (q QuoteQuery) Key() string { return quoteKey }

type QuoteHandler struct {
	Catalog *catalog.Catalog
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (dto.Quote, error) {
	return dto.MapQuote(form.Evaluate(q.Fields, h.Catalog)), nil
}

var _ bus.Handler[QuoteQuery, dto.Quote] = (*QuoteHandler)(nil)
