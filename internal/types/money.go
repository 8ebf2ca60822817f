// README: Money value object used by order totals; amounts are kept in minor units.
package types

import (
	"encoding/json"
	"math"
	"strconv"
)

const defaultCurrency = "INR"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// MoneyFromMajor converts a decimal major-unit amount (e.g. 249.50) into Money.
func MoneyFromMajor(v float64, currency string) Money {
	if currency == "" {
		currency = defaultCurrency
	}
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

// Major returns the amount in major units.
func (m Money) Major() float64 {
	return float64(m.Amount) / 100
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Major(), 'f', 2, 64) + " " + m.Currency
}

// UnmarshalJSON accepts either a bare decimal number in major units, which is what the
// order API sends, or the {"amount","currency"} object form written by MarshalJSON.
func (m *Money) UnmarshalJSON(b []byte) error {
	var major float64
	if err := json.Unmarshal(b, &major); err == nil {
		*m = MoneyFromMajor(major, "")
		return nil
	}
	type plain Money
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*m = Money(p)
	if m.Currency == "" {
		m.Currency = defaultCurrency
	}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	type plain Money
	return json.Marshal(plain(m))
}
