package checkout

import "checkout-server/internal/domain/processor"

// Outcome チェックアウト結果の種別
type Outcome string

const (
	OutcomeSettled      Outcome = "settled"       // 決済成功
	OutcomeDeclined     Outcome = "declined"      // ゲートウェイが拒否
	OutcomeGatewayError Outcome = "gateway_error" // 通信・認証失敗
)

// String 文字列表現を返す
func (o Outcome) String() string {
	return string(o)
}

// TransactionResult 1回のチェックアウトの結果
// Outcomeに応じて有効なフィールドが異なる
type TransactionResult struct {
	outcome       Outcome
	transactionID string
	message       string
	errors        []processor.FieldError
}

// Settled 決済成功の結果を作成
func Settled(transactionID string) *TransactionResult {
	return &TransactionResult{outcome: OutcomeSettled, transactionID: transactionID}
}

// Declined 拒否の結果を作成
func Declined(message string, errors []processor.FieldError) *TransactionResult {
	if errors == nil {
		errors = []processor.FieldError{}
	}
	return &TransactionResult{outcome: OutcomeDeclined, message: message, errors: errors}
}

// GatewayFailure 通信・認証失敗の結果を作成
func GatewayFailure(message string) *TransactionResult {
	return &TransactionResult{outcome: OutcomeGatewayError, message: message}
}

// Outcome 結果の種別を返す
func (r *TransactionResult) Outcome() Outcome {
	return r.outcome
}

// TransactionID ゲートウェイのトランザクションIDを返す（Settledのみ）
func (r *TransactionResult) TransactionID() string {
	return r.transactionID
}

// Message エラーメッセージを返す（Declined・GatewayErrorのみ）
func (r *TransactionResult) Message() string {
	return r.message
}

// Errors 平坦化された検証エラーを返す（Declinedのみ）
func (r *TransactionResult) Errors() []processor.FieldError {
	return r.errors
}
