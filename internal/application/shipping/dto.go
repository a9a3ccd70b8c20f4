package shipping

// SelectionInput ウォレットから届いた配送先・配送方法
type SelectionInput struct {
	CountryCode      string
	AdminArea1       string
	AdminArea2       string
	PostalCode       string
	HasAddress       bool
	SelectedOptionID string
}

// QuoteResponse 配送見積もり
type QuoteResponse struct {
	MerchantID    string
	ReferenceID   string
	Currency      string
	Total         string
	ItemTotal     string
	TaxTotal      string
	ShippingTotal string
	Options       []OptionResponse
}

// OptionResponse 配送方法
type OptionResponse struct {
	ID       string
	Label    string
	Type     string
	Amount   string
	Selected bool
}

// RepriceResponse 再計算結果
type RepriceResponse struct {
	Amount   string
	Currency string
}
