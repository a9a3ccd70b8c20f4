package shipping

import "github.com/shopspring/decimal"

// Money 通貨付き金額
type Money struct {
	value    decimal.Decimal
	currency string
}

// NewMoney 新しいMoneyを作成
func NewMoney(value decimal.Decimal, currency string) Money {
	return Money{value: value, currency: currency}
}

// Value 金額を返す
func (m Money) Value() decimal.Decimal {
	return m.value
}

// Currency 通貨コードを返す
func (m Money) Currency() string {
	return m.currency
}

// String 小数2桁の金額表記を返す
func (m Money) String() string {
	return m.value.StringFixed(2)
}

// Add 同じ通貨の金額を足す
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value), currency: m.currency}
}
