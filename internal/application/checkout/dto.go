package checkout

// CheckoutRequest チェックアウトリクエスト
type CheckoutRequest struct {
	PaymentMethodNonce string
	// Amount 省略時は料金表の既定額
	Amount string
}

// CheckoutResponse チェックアウト結果
// Outcomeが"settled"ならTransactionID、"declined"ならMessageとErrors、
// "gateway_error"ならMessageが有効
type CheckoutResponse struct {
	Outcome       string
	TransactionID string
	Message       string
	Errors        []ErrorDetail
}

// ErrorDetail ゲートウェイの検証エラー1件
type ErrorDetail struct {
	Attribute string
	Code      string
	Message   string
}
