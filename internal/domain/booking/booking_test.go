package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/pricing"
)

func validFields() Fields {
	return Fields{
		Name:             "Ada",
		StartDate:        "2025-07-01",
		EndDate:          "2025-07-10",
		PackageSelection: "bali-bliss",
		Guests:           "2",
	}
}

func TestAssessValidForm(t *testing.T) {
	a := Assess(validFields(), catalog.Default())
	require.True(t, a.Valid())
	assert.Equal(t, 9, a.Nights)
	assert.Equal(t, 2, a.Guests)
	assert.Equal(t, catalog.PackageID("bali-bliss"), a.Package.ID)
	assert.Equal(t, int64(1813), pricing.Quote(a.QuoteInput()))
	assert.Equal(t, 9, a.Range.Nights())
}

func TestAssessIncomplete(t *testing.T) {
	cases := map[string]func(f *Fields){
		"no name":        func(f *Fields) { f.Name = "  " },
		"no package":     func(f *Fields) { f.PackageSelection = "" },
		"no guests":      func(f *Fields) { f.Guests = "" },
		"zero guests":    func(f *Fields) { f.Guests = "0" },
		"no start":       func(f *Fields) { f.StartDate = "" },
		"no end":         func(f *Fields) { f.EndDate = "" },
		"same day":       func(f *Fields) { f.EndDate = f.StartDate },
		"inverted dates": func(f *Fields) { f.StartDate, f.EndDate = f.EndDate, f.StartDate },
		"garbage date":   func(f *Fields) { f.EndDate = "soon" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validFields()
			mutate(&f)
			a := Assess(f, catalog.Default())
			assert.False(t, a.Valid())
			assert.Equal(t, ProblemIncomplete, a.Problem)
			assert.Equal(t, MessageIncomplete, a.Problem.Message())
		})
	}
}

func TestAssessInvalidWheneverNightsNotPositive(t *testing.T) {
	f := validFields()
	f.PackageSelection = "moon-base"
	f.EndDate = "2025-06-30"
	a := Assess(f, catalog.Default())
	assert.Equal(t, ProblemIncomplete, a.Problem)
}

func TestAssessUnknownPackage(t *testing.T) {
	f := validFields()
	f.PackageSelection = "moon-base"
	a := Assess(f, catalog.Default())
	assert.Equal(t, ProblemPackageNotFound, a.Problem)
	assert.Equal(t, MessageSelectPackage, a.Problem.Message())
}

func TestParseGuests(t *testing.T) {
	cases := []struct {
		raw string
		n   int
		ok  bool
	}{
		{"3", 3, true},
		{" 4", 4, true},
		{"2 adults", 2, true},
		{"2.5", 2, true},
		{"+1", 1, true},
		{"-1", -1, true},
		{"", 0, false},
		{"two", 0, false},
		{"-", 0, false},
	}
	for _, tc := range cases {
		n, ok := ParseGuests(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.n, n, tc.raw)
	}
}

func TestFieldsApply(t *testing.T) {
	var f Fields
	require.NoError(t, f.Apply(map[string]string{FieldName: "Ada", FieldGuests: "3"}))
	assert.Equal(t, "Ada", f.Name)
	assert.Equal(t, "3", f.Guests)

	err := f.Apply(map[string]string{FieldPromoCode: "EARLYBIRD", "email": "x"})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Empty(t, f.PromoCode)
}

func TestSubmitRecordsEvent(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	f := validFields()
	f.PromoCode = "welcome20"

	s, err := Submit("sub-1", f, catalog.Default(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1613), s.Total.Amount)
	assert.Equal(t, "WELCOME20", s.PromoCode)
	assert.Equal(t, now, s.CreatedAt)

	evs := s.Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, BookingRequestedName, evs[0].EventName())
	assert.Equal(t, "sub-1", evs[0].AggregateID())
	assert.Zero(t, s.Raised())
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	f := validFields()
	f.Name = ""
	_, err := Submit("sub-1", f, catalog.Default(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidForm)

	_, err = Submit("", validFields(), catalog.Default(), time.Now())
	assert.ErrorIs(t, err, ErrSubmissionIDMissing)
}
