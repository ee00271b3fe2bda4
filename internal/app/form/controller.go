package form

import (
	"context"
	"log/slog"

	"tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/pricing"
	"tripquote/internal/domain/shared/money"
)

// State is the observable state of the booking form.
type State uint8

const (
	StateInvalid State = iota
	StateValid
)

func (s State) String() string {
	if s == StateValid {
		return "valid"
	}
	return "invalid"
}

// FieldSource exposes the current form values. It is read once at the start of every event.
type FieldSource interface {
	Fields() booking.Fields
}

// View receives the rendered form state.
type View interface {
	ShowTotal(text string)
	SetSubmitEnabled(enabled bool)
	Alert(text string)
	// Reset returns every field to its initial empty value.
	Reset()
}

// Submitter accepts a valid booking. A nil Submitter makes submission a no-op.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (booking.SubmissionID, error)
}

type SubmitRequest struct {
	Fields         booking.Fields
	IdempotencyKey string
}

// Result is the outcome of one evaluation.
type Result struct {
	State   State
	Problem booking.Problem
	Message string
	Total   money.Money
	Nights  int
}

// Evaluate is the pure state function behind the controller.
func Evaluate(f booking.Fields, c *catalog.Catalog) Result {
	a := booking.Assess(f, c)
	if !a.Valid() {
		return Result{
			State:   StateInvalid,
			Problem: a.Problem,
			Message: a.Problem.Message(),
			Nights:  a.Nights,
		}
	}
	total := pricing.QuoteMoney(a.QuoteInput())
	return Result{
		State:   StateValid,
		Message: total.Format(),
		Total:   total,
		Nights:  a.Nights,
	}
}

// SubmitOutcome describes what a submit event did.
type SubmitOutcome struct {
	Accepted     bool
	SubmissionID booking.SubmissionID
	Total        money.Money
	Alert        string
}

// Controller drives a View from a FieldSource.
type Controller struct {
	catalog   *catalog.Catalog
	fields    FieldSource
	view      View
	submitter Submitter
	logger    *slog.Logger
	state     State
	last      SubmitOutcome
}

type Options struct {
	Catalog   *catalog.Catalog
	Fields    FieldSource
	View      View
	Submitter Submitter
	Logger    *slog.Logger
}

func NewController(opts Options) *Controller {
	if opts.Fields == nil || opts.View == nil {
		panic("form: fields and view are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		catalog:   opts.Catalog,
		fields:    opts.Fields,
		view:      opts.View,
		submitter: opts.Submitter,
		logger:    logger,
	}
}

// State reports the state after the last evaluation.
func (c *Controller) State() State {
	return c.state
}

// LastSubmit returns the outcome of the most recent submit event.
func (c *Controller) LastSubmit() SubmitOutcome {
	return c.last
}

// Bind subscribes the controller to src and renders the initial state.
func (c *Controller) Bind(ctx context.Context, src EventSource) (unbind func()) {
	onInput := func(ctx context.Context, ev Event) error {
		c.Update(ctx)
		return nil
	}
	onSubmit := func(ctx context.Context, ev Event) error {
		_, err := c.Submit(ctx, ev.IdempotencyKey)
		return err
	}
	unsubs := []func(){
		src.Subscribe(EventChange, onInput),
		src.Subscribe(EventKeyUp, onInput),
		src.Subscribe(EventSubmit, onSubmit),
	}
	c.Update(ctx)
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Update re-reads the fields and renders either the problem message or the quote.
func (c *Controller) Update(ctx context.Context) Result {
	res := Evaluate(c.fields.Fields(), c.catalog)
	c.state = res.State
	c.view.ShowTotal(res.Message)
	c.view.SetSubmitEnabled(res.State == StateValid)
	return res
}

// Submit is the guarded submit action. An invalid form is not submitted and the user is
// alerted. A valid form is handed to the Submitter, then reset, which puts the controller back
// into the invalid state.
func (c *Controller) Submit(ctx context.Context, idempotencyKey string) (SubmitOutcome, error) {
	fields := c.fields.Fields()
	res := c.Update(ctx)
	if res.State != StateValid {
		c.view.Alert(booking.MessageSubmitBlocked)
		c.last = SubmitOutcome{Alert: booking.MessageSubmitBlocked}
		return c.last, nil
	}

	var id booking.SubmissionID
	if c.submitter != nil {
		var err error
		id, err = c.submitter.Submit(ctx, SubmitRequest{Fields: fields, IdempotencyKey: idempotencyKey})
		if err != nil {
			c.logger.ErrorContext(ctx, "booking submission failed", "error", err, "package_id", fields.PackageSelection)
			return SubmitOutcome{}, err
		}
	}
	alert := booking.MessageSubmitAccepted + res.Message
	c.view.Alert(alert)
	c.logger.InfoContext(ctx, "booking submitted", "submission_id", id, "package_id", fields.PackageSelection, "total", res.Total.Amount)

	c.view.Reset()
	c.Update(ctx)
	c.last = SubmitOutcome{Accepted: true, SubmissionID: id, Total: res.Total, Alert: alert}
	return c.last, nil
}
