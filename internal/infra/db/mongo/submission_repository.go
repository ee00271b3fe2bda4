package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/shared/daterange"
	"tripquote/internal/domain/shared/money"
)

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	col := db.Collection("agg_submission")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &SubmissionRepository{col: col}
}

func (r *SubmissionRepository) ByID(ctx context.Context, id domainbooking.SubmissionID) (*domainbooking.Submission, error) {
	var doc submissionDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrSubmissionNotFound
		}
		return nil, err
	}
	return doc.toSubmission()
}

// Save upserts by id; submissions are written once, so a retried command overwrites the same
// document.
func (r *SubmissionRepository) Save(ctx context.Context, s *domainbooking.Submission) error {
	if s == nil || s.ID == "" {
		return domainbooking.ErrSubmissionIDMissing
	}
	doc := newSubmissionDocument(s)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

type submissionDocument struct {
	ID          string        `bson:"_id"`
	Name        string        `bson:"name"`
	PackageID   string        `bson:"package_id"`
	Destination string        `bson:"destination"`
	Range       rangeDocument `bson:"range"`
	Nights      int           `bson:"nights"`
	Guests      int           `bson:"guests"`
	PromoCode   string        `bson:"promo_code,omitempty"`
	Total       int64         `bson:"total"`
	Currency    string        `bson:"currency"`
	CreatedAt   time.Time     `bson:"created_at"`
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

func newSubmissionDocument(s *domainbooking.Submission) submissionDocument {
	return submissionDocument{
		ID:          string(s.ID),
		Name:        s.Name,
		PackageID:   string(s.PackageID),
		Destination: s.Destination,
		Range:       rangeDocument{CheckIn: s.Range.CheckIn.UnixMilli(), CheckOut: s.Range.CheckOut.UnixMilli()},
		Nights:      s.Nights,
		Guests:      s.Guests,
		PromoCode:   s.PromoCode,
		Total:       s.Total.Amount,
		Currency:    s.Total.Currency,
		CreatedAt:   s.CreatedAt.UTC(),
	}
}

func (d submissionDocument) toSubmission() (*domainbooking.Submission, error) {
	total, err := money.New(d.Total, d.Currency)
	if err != nil {
		return nil, fmt.Errorf("mongo: submission %s total: %w", d.ID, err)
	}
	return &domainbooking.Submission{
		ID:          domainbooking.SubmissionID(d.ID),
		Name:        d.Name,
		PackageID:   catalog.PackageID(d.PackageID),
		Destination: d.Destination,
		Range: daterange.DateRange{
			CheckIn:  time.UnixMilli(d.Range.CheckIn).UTC(),
			CheckOut: time.UnixMilli(d.Range.CheckOut).UTC(),
		},
		Nights:    d.Nights,
		Guests:    d.Guests,
		PromoCode: d.PromoCode,
		Total:     total,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

var _ domainbooking.Repository = (*SubmissionRepository)(nil)
