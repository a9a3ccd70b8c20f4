package handler

import (
	"net/http"

	tokenapp "checkout-server/internal/application/token"

	"github.com/labstack/echo/v4"
)

// TokenHandler クライアントトークン関連ハンドラー
type TokenHandler struct {
	tokenService *tokenapp.TokenApplicationService
}

// NewTokenHandler 新しいTokenHandlerを作成
func NewTokenHandler(tokenService *tokenapp.TokenApplicationService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

// GetClientToken クライアントトークン発行ハンドラー
// @Summary クライアントトークンを発行
// @Description 決済ゲートウェイのクライアントSDK初期化用トークンをプレーンテキストで返します
// @Tags checkout
// @Produce plain
// @Success 200 {string} string "クライアントトークン"
// @Failure 500 {string} string "ゲートウェイエラーのメッセージ"
// @Router /client_token [get]
func (h *TokenHandler) GetClientToken(c echo.Context) error {
	resp, err := h.tokenService.IssueClientToken(c.Request().Context())
	if err != nil {
		// 本文はエラーメッセージのみ（JSONにしない）
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.String(http.StatusOK, resp.ClientToken)
}
