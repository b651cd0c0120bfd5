// README: Common money value object used across modules.
package types

// Money is an integer amount in the currency's minor unit (cents).
type Money struct {
	Amount   int64
	Currency string
}

// Mul scales the amount by a factor, rounding toward zero.
func (m Money) Mul(f float64) Money {
	return Money{Amount: int64(float64(m.Amount) * f), Currency: m.Currency}
}
