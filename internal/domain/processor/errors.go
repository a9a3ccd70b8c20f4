package processor

import "errors"

var (
	// ErrAuthentication 認証情報が拒否された
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization 操作が許可されていない
	ErrAuthorization = errors.New("authorization failed")
	// ErrNotFound リソースが存在しない
	ErrNotFound = errors.New("resource not found")
	// ErrUpgradeRequired APIバージョンが古い
	ErrUpgradeRequired = errors.New("api version upgrade required")
	// ErrTooManyRequests レート制限
	ErrTooManyRequests = errors.New("too many requests")
	// ErrServer ゲートウェイ内部エラー
	ErrServer = errors.New("gateway server error")
	// ErrUnavailable メンテナンス中または一時的に利用不可
	ErrUnavailable = errors.New("gateway unavailable")
	// ErrUnexpectedResponse 想定外のレスポンス形式
	ErrUnexpectedResponse = errors.New("unexpected gateway response")
	// ErrNoClientToken トークンが返却されなかった
	ErrNoClientToken = errors.New("No clientToken returned")
)

// GatewayError 決済ゲートウェイとの通信・認証・応答形式の失敗
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

// NewGatewayError errからGatewayErrorを作成する
// errのメッセージが空の場合はfallbackをメッセージにする
func NewGatewayError(op string, err error, fallback string) *GatewayError {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge
	}
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &GatewayError{Op: op, Message: msg, Err: err}
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
