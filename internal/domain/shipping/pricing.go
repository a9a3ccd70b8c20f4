package shipping

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	OptionStandard = "SHIP_STANDARD"
	OptionExpress  = "SHIP_EXPRESS"

	optionTypeShipping = "SHIPPING"
)

// PricingParams Pricingの作成に使う値
type PricingParams struct {
	MerchantID       string
	ReferenceID      string
	Currency         string
	ItemTotal        decimal.Decimal
	TaxTotal         decimal.Decimal
	StandardShipping decimal.Decimal
	ExpressShipping  decimal.Decimal
	FlatTotal        decimal.Decimal
}

// Pricing 配送見積もり・再計算・チェックアウト既定額の唯一の料金表
// 起動時に作成し、以降は変更しない
type Pricing struct {
	merchantID  string
	referenceID string
	currency    string
	itemTotal   decimal.Decimal
	taxTotal    decimal.Decimal
	standard    decimal.Decimal
	express     decimal.Decimal
	flatTotal   decimal.Decimal
}

// NewPricing 値を検証してPricingを作成
func NewPricing(p PricingParams) (*Pricing, error) {
	if p.Currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidPricing)
	}
	if p.ReferenceID == "" {
		return nil, fmt.Errorf("%w: reference id is required", ErrInvalidPricing)
	}
	for name, v := range map[string]decimal.Decimal{
		"item total":        p.ItemTotal,
		"tax total":         p.TaxTotal,
		"standard shipping": p.StandardShipping,
		"express shipping":  p.ExpressShipping,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidPricing, name)
		}
		if !IsWholePenny(v) {
			return nil, fmt.Errorf("%w: %s must have at most 2 decimal places", ErrInvalidPricing, name)
		}
	}
	if !p.FlatTotal.IsPositive() {
		return nil, fmt.Errorf("%w: flat total must be positive", ErrInvalidPricing)
	}
	if !IsWholePenny(p.FlatTotal) {
		return nil, fmt.Errorf("%w: flat total must have at most 2 decimal places", ErrInvalidPricing)
	}

	return &Pricing{
		merchantID:  p.MerchantID,
		referenceID: p.ReferenceID,
		currency:    p.Currency,
		itemTotal:   p.ItemTotal,
		taxTotal:    p.TaxTotal,
		standard:    p.StandardShipping,
		express:     p.ExpressShipping,
		flatTotal:   p.FlatTotal,
	}, nil
}

// IsWholePenny 小数2桁以内の金額か
// 料金表の金額は小数2桁以内に限る
func IsWholePenny(v decimal.Decimal) bool {
	return v.Equal(v.Round(2))
}

// Currency 通貨コードを返す
func (p *Pricing) Currency() string {
	return p.currency
}

// DefaultCheckoutAmount チェックアウトで金額省略時に使う額
func (p *Pricing) DefaultCheckoutAmount() decimal.Decimal {
	return p.flatTotal
}

// Quote 配送先選択に対する見積もりを作成
// 現在は選択内容にかかわらず標準配送を選択済みとして返す
func (p *Pricing) Quote(_ Selection) *Quote {
	money := func(v decimal.Decimal) Money { return NewMoney(v, p.currency) }

	options := []ShippingOption{
		{ID: OptionStandard, Label: "Standard Shipping", Type: optionTypeShipping, Amount: money(p.standard), Selected: true},
		{ID: OptionExpress, Label: "Express Shipping", Type: optionTypeShipping, Amount: money(p.express), Selected: false},
	}

	breakdown := Breakdown{
		ItemTotal: money(p.itemTotal),
		TaxTotal:  money(p.taxTotal),
		Shipping:  money(p.standard),
	}

	return &Quote{
		MerchantID:  p.merchantID,
		ReferenceID: p.referenceID,
		Total:       breakdown.Total(),
		Breakdown:   breakdown,
		Options:     options,
	}
}

// Reprice 配送変更時の再計算結果（固定額）を返す
func (p *Pricing) Reprice(_ Selection) Money {
	return NewMoney(p.flatTotal, p.currency)
}
