package dto

import (
	"tripquote/internal/app/form"
	"tripquote/internal/domain/booking"
)

// Quote is the evaluation of a booking form.
type Quote struct {
	Valid   bool   `json:"valid"`
	State   string `json:"state"`
	Problem string `json:"problem,omitempty"`
	Message string `json:"message"`
	Amount  int64  `json:"amount,omitempty"`
	Total   string `json:"total,omitempty"`
	Nights  int    `json:"nights"`
}

func MapQuote(res form.Result) Quote {
	q := Quote{
		Valid:   res.State == form.StateValid,
		State:   res.State.String(),
		Message: res.Message,
		Nights:  res.Nights,
	}
	if q.Valid {
		q.Amount = res.Total.Amount
		q.Total = res.Total.Format()
	} else {
		q.Problem = res.Problem.String()
	}
	return q
}

// FormSession is a form session as returned to the client.
type FormSession struct {
	ID           string         `json:"id"`
	Fields       booking.Fields `json:"fields"`
	View         form.ViewState `json:"view"`
	Accepted     bool           `json:"accepted,omitempty"`
	SubmissionID string         `json:"submission_id,omitempty"`
}

func MapFormSession(s *form.Session, outcome form.SubmitOutcome) FormSession {
	return FormSession{
		ID:           s.ID,
		Fields:       s.Fields,
		View:         s.View,
		Accepted:     outcome.Accepted,
		SubmissionID: string(outcome.SubmissionID),
	}
}
