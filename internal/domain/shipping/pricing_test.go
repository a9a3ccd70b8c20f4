package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() PricingParams {
	return PricingParams{
		MerchantID:       "merchant123",
		ReferenceID:      "PUHF",
		Currency:         "GBP",
		ItemTotal:        decimal.RequireFromString("180.00"),
		TaxTotal:         decimal.RequireFromString("20.00"),
		StandardShipping: decimal.RequireFromString("15.00"),
		ExpressShipping:  decimal.RequireFromString("30.00"),
		FlatTotal:        decimal.RequireFromString("100.00"),
	}
}

func TestNewPricing(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *PricingParams)
		wantErr bool
	}{
		{
			name:   "正常系: デフォルトの料金表",
			modify: func(p *PricingParams) {},
		},
		{
			name:    "異常系: 通貨なし",
			modify:  func(p *PricingParams) { p.Currency = "" },
			wantErr: true,
		},
		{
			name:    "異常系: 参照IDなし",
			modify:  func(p *PricingParams) { p.ReferenceID = "" },
			wantErr: true,
		},
		{
			name:    "異常系: 負の税額",
			modify:  func(p *PricingParams) { p.TaxTotal = decimal.RequireFromString("-0.01") },
			wantErr: true,
		},
		{
			name: "異常系: 小数3桁の商品合計と税額",
			modify: func(p *PricingParams) {
				p.ItemTotal = decimal.RequireFromString("180.005")
				p.TaxTotal = decimal.RequireFromString("20.005")
			},
			wantErr: true,
		},
		{
			name:    "異常系: 小数3桁の配送料",
			modify:  func(p *PricingParams) { p.ExpressShipping = decimal.RequireFromString("30.001") },
			wantErr: true,
		},
		{
			name:    "異常系: 小数3桁の固定合計",
			modify:  func(p *PricingParams) { p.FlatTotal = decimal.RequireFromString("99.999") },
			wantErr: true,
		},
		{
			name:   "正常系: 末尾ゼロの桁は許容",
			modify: func(p *PricingParams) { p.ItemTotal = decimal.RequireFromString("180.0000") },
		},
		{
			name:    "異常系: 固定合計がゼロ",
			modify:  func(p *PricingParams) { p.FlatTotal = decimal.Zero },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := defaultParams()
			tt.modify(&params)

			pricing, err := NewPricing(params)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPricing)
				assert.Nil(t, pricing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "GBP", pricing.Currency())
			assert.Equal(t, "100.00", pricing.DefaultCheckoutAmount().StringFixed(2))
		})
	}
}

func TestPricing_Quote(t *testing.T) {
	pricing, err := NewPricing(defaultParams())
	require.NoError(t, err)

	selections := []Selection{
		{},
		{Address: &Address{CountryCode: "GB", PostalCode: "SW1A 1AA"}},
		{SelectedOptionID: OptionExpress},
	}

	for _, sel := range selections {
		quote := pricing.Quote(sel)

		assert.Equal(t, "merchant123", quote.MerchantID)
		assert.Equal(t, "PUHF", quote.ReferenceID)
		assert.Equal(t, "215.00", quote.Total.String())
		assert.Equal(t, "GBP", quote.Total.Currency())
		assert.Equal(t, "180.00", quote.Breakdown.ItemTotal.String())
		assert.Equal(t, "20.00", quote.Breakdown.TaxTotal.String())
		assert.Equal(t, "15.00", quote.Breakdown.Shipping.String())

		// 合計は内訳の和と一致する
		sum := quote.Breakdown.ItemTotal.Value().Add(quote.Breakdown.TaxTotal.Value()).Add(quote.Breakdown.Shipping.Value())
		assert.True(t, sum.Round(2).Equal(quote.Total.Value()))

		// 選択済みはちょうど1件
		selected := 0
		for _, opt := range quote.Options {
			if opt.Selected {
				selected++
			}
			assert.Equal(t, "SHIPPING", opt.Type)
		}
		assert.Equal(t, 1, selected)

		opt, ok := quote.SelectedOption()
		require.True(t, ok)
		assert.Equal(t, OptionStandard, opt.ID)
		assert.True(t, opt.Amount.Value().Equal(quote.Breakdown.Shipping.Value()))

		require.Len(t, quote.Options, 2)
		assert.Equal(t, OptionExpress, quote.Options[1].ID)
		assert.Equal(t, "Express Shipping", quote.Options[1].Label)
		assert.Equal(t, "30.00", quote.Options[1].Amount.String())
	}
}

func TestPricing_Quote_PartsAddUpToTotal(t *testing.T) {
	params := defaultParams()
	params.ItemTotal = decimal.RequireFromString("0.1")
	params.TaxTotal = decimal.RequireFromString("0.2")
	params.StandardShipping = decimal.RequireFromString("0.07")

	pricing, err := NewPricing(params)
	require.NoError(t, err)

	quote := pricing.Quote(Selection{})
	parts := decimal.RequireFromString(quote.Breakdown.ItemTotal.String()).
		Add(decimal.RequireFromString(quote.Breakdown.TaxTotal.String())).
		Add(decimal.RequireFromString(quote.Breakdown.Shipping.String()))
	assert.Equal(t, parts.StringFixed(2), quote.Total.String())
	assert.Equal(t, "0.37", quote.Total.String())
}

func TestPricing_Reprice(t *testing.T) {
	pricing, err := NewPricing(defaultParams())
	require.NoError(t, err)

	money := pricing.Reprice(Selection{SelectedOptionID: OptionExpress})
	assert.Equal(t, "100.00", money.String())
	assert.Equal(t, "GBP", money.Currency())
	assert.True(t, money.Value().Equal(pricing.DefaultCheckoutAmount()))
}

func TestIsWholePenny(t *testing.T) {
	assert.True(t, IsWholePenny(decimal.RequireFromString("15")))
	assert.True(t, IsWholePenny(decimal.RequireFromString("15.10")))
	assert.True(t, IsWholePenny(decimal.RequireFromString("15.1000")))
	assert.False(t, IsWholePenny(decimal.RequireFromString("15.005")))
}

func TestSelection_IsEmpty(t *testing.T) {
	assert.True(t, Selection{}.IsEmpty())
	assert.False(t, Selection{SelectedOptionID: OptionStandard}.IsEmpty())
	assert.False(t, Selection{Address: &Address{}}.IsEmpty())
}
