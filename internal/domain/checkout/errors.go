package checkout

import "errors"

var (
	// ErrMissingNonce 決済手段のnonceが未指定
	ErrMissingNonce = errors.New("Missing payment_method_nonce")
	// ErrInvalidAmount 金額が不正
	ErrInvalidAmount = errors.New("Invalid amount")
)

// IsValidationError errが入力検証エラーか
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingNonce) || errors.Is(err, ErrInvalidAmount)
}

// ValidationMessage 入力検証エラーの応答用メッセージ（入力値を含めない）
func ValidationMessage(err error) string {
	for _, sentinel := range []error{ErrMissingNonce, ErrInvalidAmount} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
