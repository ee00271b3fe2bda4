package form

import (
	"context"
	"errors"
	"time"

	"tripquote/internal/domain/booking"
)

var (
	ErrSessionNotFound  = errors.New("form: session not found")
	ErrSessionIDMissing = errors.New("form: session id is required")
)

// ViewState is what a browser would show for the form.
type ViewState struct {
	Display       string `json:"display"`
	SubmitEnabled bool   `json:"submit_enabled"`
	Alert         string `json:"alert,omitempty"`
}

// Session is a server-held booking form: its fields and its rendered view.
// It implements both FieldSource and View.
type Session struct {
	ID        string         `json:"id"`
	Fields    booking.Fields `json:"fields"`
	View      ViewState      `json:"view"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

func (s *Session) ShowTotal(text string) { s.View.Display = text }

func (s *Session) SetSubmitEnabled(enabled bool) { s.View.SubmitEnabled = enabled }

func (s *Session) Alert(text string) { s.View.Alert = text }

func (s *Session) Reset() { s.Fields = booking.Fields{} }

// fieldsOf adapts a Session to FieldSource; Session.Fields is the data field.
type fieldsOf struct{ s *Session }

func (f fieldsOf) Fields() booking.Fields { return f.s.Fields }

var _ View = (*Session)(nil)
