package pricing

import (
	"fmt"
	"math"
	"math/big"

	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/shared/money"
)

const (
	// LongStayDays is the duration from which the long-stay discount applies.
	LongStayDays     = 10
	LongStayDiscount = 200
	// FreeGuests is the number of travellers included in the package price.
	FreeGuests = 2
	// ExtraGuestPercent is added per traveller beyond FreeGuests.
	ExtraGuestPercent = 20
)

// SeasonRule returns the adjustment for a season. Exactly one rule exists per season.
func SeasonRule(s catalog.Season) Rule {
	switch s {
	case catalog.Summer:
		return Rule{Percent: 115}
	case catalog.Winter:
		return Rule{Percent: 95}
	case catalog.Spring:
		return Rule{Percent: 100, Offset: 150}
	case catalog.Autumn:
		return identity
	default:
		panic(fmt.Sprintf("pricing: no rule for %s", s))
	}
}

// BasePrice applies the season rule, then the long-stay discount, and rounds to a whole unit.
func BasePrice(basePrice int64, durationDays int, season catalog.Season) int64 {
	price := SeasonRule(season).Apply(new(big.Rat).SetInt64(basePrice))
	if durationDays >= LongStayDays {
		price.Sub(price, big.NewRat(LongStayDiscount, 1))
	}
	return round(price)
}

// PackagePrice is BasePrice for a catalog entry.
func PackagePrice(p catalog.Package) money.Money {
	return money.Dollars(BasePrice(p.BasePrice, p.DurationDays, p.Season))
}

// QuoteInput is the transient booking quote built for a single computation.
type QuoteInput struct {
	Package catalog.Package
	Nights  int
	Guests  int
	Promo   Promo
}

// Quote computes the final booking price. Inputs are not validated; callers reject
// non-positive nights or guests first.
func Quote(in QuoteInput) int64 {
	price := new(big.Rat).SetInt64(BasePrice(in.Package.BasePrice, in.Package.DurationDays, in.Package.Season))

	// A one-day package has no nominal nights and is never pro-rated.
	nominal := in.Package.NominalNights()
	if in.Nights != nominal && nominal > 0 {
		price.Mul(price, big.NewRat(int64(in.Nights), int64(nominal)))
	}
	if in.Guests > FreeGuests {
		price.Mul(price, GuestFactor(in.Guests))
	}
	price = PromoRule(in.Promo).Apply(price)
	return round(price)
}

// GuestFactor is the price multiplier for the given party size: 1 + 0.20 per extra guest.
// It is exact for any int, so very large parties cannot wrap around.
func GuestFactor(guests int) *big.Rat {
	if guests <= FreeGuests {
		return big.NewRat(1, 1)
	}
	pct := big.NewInt(int64(guests))
	pct.Sub(pct, big.NewInt(FreeGuests))
	pct.Mul(pct, big.NewInt(ExtraGuestPercent))
	pct.Add(pct, big.NewInt(100))
	return new(big.Rat).SetFrac(pct, big.NewInt(100))
}

// QuoteMoney is Quote expressed as Money.
func QuoteMoney(in QuoteInput) money.Money {
	return money.Dollars(Quote(in))
}

// round returns floor(r + 1/2): the nearest integer, halves rounding up (-49.5 becomes -49).
// Results outside the int64 range saturate.
func round(r *big.Rat) int64 {
	den := r.Denom()
	// Euclidean division by a positive divisor is floor division.
	num := new(big.Int).Lsh(r.Num(), 1)
	num.Add(num, den)
	num.Div(num, new(big.Int).Lsh(den, 1))
	if !num.IsInt64() {
		if num.Sign() < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return num.Int64()
}
