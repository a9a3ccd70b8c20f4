package checkout

import "checkout-server/internal/domain/processor"

// ClientToken クライアント側SDKの初期化に使う認可トークン
// リクエストごとに発行し、サーバー側では保持しない
type ClientToken struct {
	value string
}

// NewClientToken 空でないトークンからClientTokenを作成
func NewClientToken(value string) (ClientToken, error) {
	if value == "" {
		return ClientToken{}, processor.ErrNoClientToken
	}
	return ClientToken{value: value}, nil
}

// String トークン文字列を返す
func (t ClientToken) String() string {
	return t.value
}
