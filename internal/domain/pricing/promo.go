package pricing

import (
	"fmt"
	"math/big"
	"strings"
)

// Promo is the closed set of recognised promotion codes.
type Promo uint8

const (
	PromoNone Promo = iota
	PromoEarlyBird
	PromoWelcome20
	PromoGlobetrotter
)

var promoCodes = map[string]Promo{
	"EARLYBIRD":    PromoEarlyBird,
	"WELCOME20":    PromoWelcome20,
	"GLOBETROTTER": PromoGlobetrotter,
}

// ParsePromo maps a user-entered code to a Promo. Matching ignores case and surrounding
// whitespace; anything unrecognised is PromoNone.
func ParsePromo(code string) Promo {
	if p, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return p
	}
	return PromoNone
}

func (p Promo) Code() string {
	switch p {
	case PromoEarlyBird:
		return "EARLYBIRD"
	case PromoWelcome20:
		return "WELCOME20"
	case PromoGlobetrotter:
		return "GLOBETROTTER"
	case PromoNone:
		return ""
	default:
		return fmt.Sprintf("Promo(%d)", uint8(p))
	}
}

func (p Promo) String() string {
	if p == PromoNone {
		return "none"
	}
	return p.Code()
}

// Rule is a price adjustment: price*Percent/100 + Offset. Rules work on exact rationals so
// that 1750*1.15 is 2012.5 and not the nearest binary float below it.
type Rule struct {
	Percent int64
	Offset  int64
}

func (r Rule) Apply(price *big.Rat) *big.Rat {
	out := new(big.Rat).Mul(price, big.NewRat(r.Percent, 100))
	return out.Add(out, new(big.Rat).SetInt64(r.Offset))
}

var identity = Rule{Percent: 100}

// PromoRule returns the adjustment for a promo. Unknown values panic so a new code cannot be
// added without a matching rule.
func PromoRule(p Promo) Rule {
	switch p {
	case PromoNone:
		return identity
	case PromoEarlyBird:
		return Rule{Percent: 90}
	case PromoWelcome20:
		return Rule{Percent: 100, Offset: -200}
	case PromoGlobetrotter:
		return Rule{Percent: 85}
	default:
		panic(fmt.Sprintf("pricing: no rule for %s", p))
	}
}
