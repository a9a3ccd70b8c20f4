package processor

import (
	"context"

	"github.com/shopspring/decimal"
)

// Processor 決済ゲートウェイが提供する機能
// 実装は1回の呼び出しにつき1回だけ通信し、リトライしない
type Processor interface {
	// GenerateClientToken クライアント用の認可トークンを発行する
	GenerateClientToken(ctx context.Context) (string, error)
	// Sale 売上トランザクションを登録する
	// 業務エラー（カード拒否・入力不備）はerrorではなくSuccess=falseのSaleResultで返す
	Sale(ctx context.Context, req *SaleRequest) (*SaleResult, error)
}

// SaleRequest 売上トランザクション登録リクエスト
type SaleRequest struct {
	Amount              decimal.Decimal
	PaymentMethodNonce  string
	MerchantAccountID   string
	SubmitForSettlement bool
}

// SaleResult 売上トランザクション登録結果
type SaleResult struct {
	Success       bool
	TransactionID string
	// Status ゲートウェイ上のトランザクション状態（例: submitted_for_settlement, processor_declined）
	Status string
	// Message 失敗時のゲートウェイメッセージ
	Message string
	// Errors 失敗時の入れ子になった検証エラー
	Errors *ErrorNode
}
