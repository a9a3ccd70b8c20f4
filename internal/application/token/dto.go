package token

// IssueClientTokenResponse クライアントトークン発行レスポンス
type IssueClientTokenResponse struct {
	ClientToken string
}
