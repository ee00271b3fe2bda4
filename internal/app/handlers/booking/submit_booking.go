package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tripquote/internal/app/bus"
	"tripquote/internal/app/form"
	"tripquote/internal/app/middleware"
	"tripquote/internal/app/outbox"
	domainbooking "tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
)

const submitBookingKey = "booking.submit"

type SubmitBookingCommand struct {
	SubmissionID    string
	Fields          domainbooking.Fields
	IdempotencyKeyV string
}

func (c SubmitBookingCommand) Key() string { return submitBookingKey }

func (c SubmitBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SubmitBookingCommand) ResultPrototype() any { return &SubmitBookingResult{} }

type SubmitBookingResult struct {
	SubmissionID string `json:"submission_id"`
	Total        int64  `json:"total"`
}

var ErrRepositoryRequired = errors.New("booking: submission repository required")

// SubmitBookingHandler prices a valid form, stores the submission and records its events.
type SubmitBookingHandler struct {
	Catalog     *catalog.Catalog
	Submissions domainbooking.Repository
	Outbox      outbox.Outbox
	Encoder     outbox.Encoder
	Now         func() time.Time
}

func (h *SubmitBookingHandler) Handle(ctx context.Context, cmd SubmitBookingCommand) (*SubmitBookingResult, error) {
	if h.Submissions == nil {
		return nil, ErrRepositoryRequired
	}
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	sub, err := domainbooking.Submit(domainbooking.SubmissionID(cmd.SubmissionID), cmd.Fields, h.Catalog, now)
	if err != nil {
		return nil, err
	}
	if err := h.Submissions.Save(ctx, sub); err != nil {
		return nil, err
	}
	if err := outbox.Stage(ctx, h.Outbox, h.Encoder, sub.Drain()); err != nil {
		return nil, err
	}
	return &SubmitBookingResult{SubmissionID: string(sub.ID), Total: sub.Total.Amount}, nil
}

// Submitter hands valid forms to the bus as SubmitBookingCommand.
type Submitter struct {
	Bus bus.Bus
}

func (s Submitter) Submit(ctx context.Context, req form.SubmitRequest) (domainbooking.SubmissionID, error) {
	res, err := bus.Dispatch[SubmitBookingCommand, *SubmitBookingResult](ctx, s.Bus, SubmitBookingCommand{
		SubmissionID:    uuid.NewString(),
		Fields:          req.Fields,
		IdempotencyKeyV: req.IdempotencyKey,
	})
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", nil
	}
	return domainbooking.SubmissionID(res.SubmissionID), nil
}

var (
	_ bus.Handler[SubmitBookingCommand, *SubmitBookingResult] = (*SubmitBookingHandler)(nil)
	_ middleware.IdempotentMessage                            = SubmitBookingCommand{}
	_ form.Submitter                                          = Submitter{}
)
