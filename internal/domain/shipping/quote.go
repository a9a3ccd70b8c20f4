package shipping

// Quote 配送見積もり
type Quote struct {
	MerchantID  string
	ReferenceID string
	Total       Money
	Breakdown   Breakdown
	Options     []ShippingOption
}

// Breakdown 合計金額の内訳
type Breakdown struct {
	ItemTotal Money
	TaxTotal  Money
	Shipping  Money
}

// Total 内訳の合計を返す
// 各項目は小数2桁以内なので、表示値の和と一致する
func (b Breakdown) Total() Money {
	return b.ItemTotal.Add(b.TaxTotal).Add(b.Shipping)
}

// ShippingOption 配送方法の選択肢
type ShippingOption struct {
	ID       string
	Label    string
	Type     string
	Amount   Money
	Selected bool
}

// SelectedOption 選択済みの配送方法を返す
func (q *Quote) SelectedOption() (ShippingOption, bool) {
	for _, opt := range q.Options {
		if opt.Selected {
			return opt, true
		}
	}
	return ShippingOption{}, false
}
