package handler

import (
	"encoding/json"
	"strings"
)

// CheckoutRequest チェックアウトリクエスト
// @Description チェックアウトリクエスト
type CheckoutRequest struct {
	PaymentMethodNonce string `json:"payment_method_nonce" example:"fake-valid-nonce"`
	Amount             Amount `json:"amount,omitempty" swaggertype:"string" example:"50.00"`
}

// Amount JSONの文字列・数値どちらでも受け付ける金額
type Amount string

// UnmarshalJSON 文字列・数値・nullを受け付ける
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(string(b), `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// CheckoutSuccessResponse 決済成功レスポンス
// @Description 決済成功レスポンス
type CheckoutSuccessResponse struct {
	OK            bool   `json:"ok" example:"true"`
	TransactionID string `json:"transactionId" example:"abc123"`
}

// CheckoutErrorResponse 入力エラー・ゲートウェイエラーのレスポンス
// @Description 入力エラー・ゲートウェイエラーのレスポンス
type CheckoutErrorResponse struct {
	OK    bool   `json:"ok" example:"false"`
	Error string `json:"error" example:"Missing payment_method_nonce"`
}

// CheckoutDeclinedResponse ゲートウェイが拒否した場合のレスポンス
// @Description ゲートウェイが拒否した場合のレスポンス
type CheckoutDeclinedResponse struct {
	OK      bool               `json:"ok" example:"false"`
	Error   string             `json:"error" example:"Amount is an invalid format."`
	Details []ValidationDetail `json:"details"`
}

// ValidationDetail ゲートウェイの検証エラー1件
type ValidationDetail struct {
	Attribute string `json:"attribute" example:"amount"`
	Code      string `json:"code" example:"81503"`
	Message   string `json:"message" example:"Amount is an invalid format."`
}
