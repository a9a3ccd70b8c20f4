package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// 整数部と小数2桁までの金額表記のみ受け付ける
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

// CheckoutRequest チェックアウト要求
type CheckoutRequest struct {
	paymentNonce string
	amount       decimal.Decimal
	defaulted    bool
}

// NewCheckoutRequest 入力を検証してCheckoutRequestを作成
// amountが空の場合はdefaultAmountを使う
func NewCheckoutRequest(paymentNonce, amount string, defaultAmount decimal.Decimal) (*CheckoutRequest, error) {
	nonce := strings.TrimSpace(paymentNonce)
	if nonce == "" {
		return nil, ErrMissingNonce
	}

	req := &CheckoutRequest{paymentNonce: nonce}

	amount = strings.TrimSpace(amount)
	if amount == "" {
		req.amount = defaultAmount
		req.defaulted = true
		return req, nil
	}

	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	req.amount = value
	return req, nil
}

// ParseAmount 金額文字列を検証して数値にする
func ParseAmount(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return value, nil
}

// PaymentNonce 決済手段のnonceを返す
func (r *CheckoutRequest) PaymentNonce() string {
	return r.paymentNonce
}

// Amount 金額を返す
func (r *CheckoutRequest) Amount() decimal.Decimal {
	return r.amount
}

// AmountString ゲートウェイに送る小数2桁の金額表記
func (r *CheckoutRequest) AmountString() string {
	return r.amount.StringFixed(2)
}

// AmountDefaulted 金額が省略されデフォルト値を使ったか
func (r *CheckoutRequest) AmountDefaulted() bool {
	return r.defaulted
}
