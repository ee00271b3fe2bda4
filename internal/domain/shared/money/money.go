package money

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidCurrency = errors.New("money: invalid currency code")

// USD is the only currency the catalog is priced in.
const USD = "USD"

// Money keeps amounts in whole currency units; prices are rounded before they become Money.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New is used when amounts come back from storage: the currency must be a three-letter code,
// and an empty one means the catalog currency.
func New(amount int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Dollars(amount), nil
	}
	if len(currency) != 3 || strings.Trim(currency, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") != "" {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

func Dollars(amount int64) Money {
	return Money{Amount: amount, Currency: USD}
}

// Label renders the amount with a dollar sign and thousands separators, e.g. "$2,999".
func (m Money) Label() string {
	return FormatAmount(m.Amount)
}

// Format renders the display string used by the booking form, e.g. "$1,813 USD".
func (m Money) Format() string {
	currency := m.Currency
	if currency == "" {
		currency = USD
	}
	return FormatAmount(m.Amount) + " " + currency
}

// FormatAmount groups digits in threes after the dollar sign. A negative amount keeps its sign
// after the symbol: "$-50".
func FormatAmount(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 2)
	b.WriteByte('$')
	if digits[0] == '-' {
		b.WriteByte('-')
		digits = digits[1:]
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
