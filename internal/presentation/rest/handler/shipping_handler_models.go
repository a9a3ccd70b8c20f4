package handler

// ShippingCallbackRequest ウォレットからの配送変更通知
// @Description ウォレットからの配送変更通知（必要な項目のみ）
type ShippingCallbackRequest struct {
	ID              string            `json:"id,omitempty"`
	ShippingAddress *ShippingAddress  `json:"shipping_address,omitempty"`
	ShippingOption  *SelectedShipping `json:"shipping_option,omitempty"`
}

// ShippingAddress 配送先
type ShippingAddress struct {
	CountryCode string `json:"country_code" example:"GB"`
	AdminArea1  string `json:"admin_area_1,omitempty"`
	AdminArea2  string `json:"admin_area_2,omitempty" example:"London"`
	PostalCode  string `json:"postal_code,omitempty" example:"SW1A 1AA"`
}

// SelectedShipping 選択された配送方法
type SelectedShipping struct {
	ID string `json:"id" example:"SHIP_EXPRESS"`
}

// ShippingCallbackResponse 配送見積もりレスポンス
// @Description 配送見積もりレスポンス
type ShippingCallbackResponse struct {
	MerchantID    string         `json:"merchant_id" example:"merchant123"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

// PurchaseUnit 購入単位
type PurchaseUnit struct {
	ReferenceID string          `json:"reference_id" example:"PUHF"`
	Amount      UnitAmount      `json:"amount"`
	Shipping    ShippingOptions `json:"shipping"`
}

// UnitAmount 合計金額と内訳
type UnitAmount struct {
	CurrencyCode string          `json:"currency_code" example:"GBP"`
	Value        string          `json:"value" example:"215.00"`
	Breakdown    AmountBreakdown `json:"breakdown"`
}

// AmountBreakdown 金額内訳
type AmountBreakdown struct {
	ItemTotal Money `json:"item_total"`
	TaxTotal  Money `json:"tax_total"`
	Shipping  Money `json:"shipping"`
}

// Money 通貨付き金額
type Money struct {
	Value        string `json:"value" example:"15.00"`
	CurrencyCode string `json:"currency_code" example:"GBP"`
}

// ShippingOptions 配送方法一覧
type ShippingOptions struct {
	Options []ShippingOption `json:"options"`
}

// ShippingOption 配送方法
type ShippingOption struct {
	ID       string `json:"id" example:"SHIP_STANDARD"`
	Label    string `json:"label" example:"Standard Shipping"`
	Type     string `json:"type" example:"SHIPPING"`
	Selected bool   `json:"selected"`
	Amount   Money  `json:"amount"`
}

// RepriceResponse 再計算レスポンス
// @Description 再計算レスポンス
type RepriceResponse struct {
	Amount   string `json:"amount" example:"100.00"`
	Currency string `json:"currency" example:"GBP"`
}
