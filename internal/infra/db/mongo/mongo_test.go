package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"tripquote/internal/app/middleware"
	domainbooking "tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/shared/daterange"
	"tripquote/internal/domain/shared/money"
)

func TestSubmissionDocumentRoundTrip(t *testing.T) {
	rng, err := daterange.Parse("2025-08-01", "2025-08-05")
	require.NoError(t, err)
	sub := &domainbooking.Submission{
		ID:          "sub-1",
		Name:        "Ada",
		PackageID:   catalog.PackageID("pat-exp"),
		Destination: "Torres del Paine, Chile",
		Range:       rng,
		Nights:      4,
		Guests:      3,
		PromoCode:   "GLOBETROTTER",
		Total:       money.Dollars(2244),
		CreatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(newSubmissionDocument(sub))
	require.NoError(t, err)
	var doc submissionDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	got, err := doc.toSubmission()
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, sub.PackageID, got.PackageID)
	assert.True(t, sub.Range.CheckIn.Equal(got.Range.CheckIn))
	assert.True(t, sub.Range.CheckOut.Equal(got.Range.CheckOut))
	assert.Equal(t, sub.Total, got.Total)
	assert.Equal(t, sub.PromoCode, got.PromoCode)
	assert.True(t, sub.CreatedAt.Equal(got.CreatedAt))
}

func TestSubmissionDocumentRejectsBadCurrency(t *testing.T) {
	_, err := submissionDocument{ID: "sub-1", Total: 10, Currency: "dollars"}.toSubmission()
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)

	sub, err := submissionDocument{ID: "sub-2", Total: 10}.toSubmission()
	require.NoError(t, err)
	assert.Equal(t, money.Dollars(10), sub.Total)
}

func TestIdempotencyDocumentSplitsScopedKey(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	key := middleware.IdempotencyKey{Command: "booking.submit", Client: "k-1"}
	doc, err := newIdempotencyDocument(middleware.IdempotencyRecord{
		Key:        key,
		Payload:    []byte(`{"submission_id":"s"}`),
		OccurredAt: at,
	}, at.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "booking.submit:k-1", doc.ID)
	assert.Equal(t, "booking.submit", doc.Command)
	assert.Equal(t, "k-1", doc.ClientKey)

	rec := doc.toRecord()
	assert.Equal(t, key, rec.Key)
	assert.JSONEq(t, `{"submission_id":"s"}`, string(rec.Payload))
	assert.Equal(t, at, rec.OccurredAt)

	_, err = newIdempotencyDocument(middleware.IdempotencyRecord{Key: middleware.IdempotencyKey{Command: "booking.submit"}}, at)
	assert.ErrorIs(t, err, ErrEmptyIdempotencyKey)
}

func TestIdempotencyLiveFilterHonoursTTL(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &IdempotencyStore{ttl: time.Hour, now: func() time.Time { return now }}

	f := s.liveFilter(middleware.IdempotencyKey{Command: "booking.submit", Client: "k-1"})
	assert.Equal(t, "booking.submit:k-1", f["_id"])
	assert.Equal(t, bson.M{"$gt": now.Add(-time.Hour)}, f["created_at"])

	_, _, err := s.Get(context.Background(), middleware.IdempotencyKey{Client: "k-1"})
	assert.ErrorIs(t, err, ErrEmptyIdempotencyKey)
}
