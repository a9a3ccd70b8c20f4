package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	shippingapp "checkout-server/internal/application/shipping"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

const maxCallbackBodyBytes = 64 << 10

// ShippingHandler 配送料金関連ハンドラー
type ShippingHandler struct {
	shippingService *shippingapp.ShippingApplicationService
	logger          *otelinfra.Logger
}

// NewShippingHandler 新しいShippingHandlerを作成
func NewShippingHandler(shippingService *shippingapp.ShippingApplicationService, logger *otelinfra.Logger) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
		logger:          logger,
	}
}

// Callback 配送変更コールバックハンドラー
// @Summary 配送見積もりを返す
// @Description ウォレットのサーバーから呼ばれ、配送方法と合計金額の内訳を返します。本文が解釈できなくても200を返します
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body ShippingCallbackRequest false "配送変更通知"
// @Success 200 {object} ShippingCallbackResponse "配送見積もり"
// @Router /shipping/callback [post]
func (h *ShippingHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	quote := h.shippingService.Quote(ctx, h.readSelection(c))

	options := make([]ShippingOption, len(quote.Options))
	for i, opt := range quote.Options {
		options[i] = ShippingOption{
			ID:       opt.ID,
			Label:    opt.Label,
			Type:     opt.Type,
			Selected: opt.Selected,
			Amount:   Money{Value: opt.Amount, CurrencyCode: quote.Currency},
		}
	}

	return c.JSON(http.StatusOK, ShippingCallbackResponse{
		MerchantID: quote.MerchantID,
		PurchaseUnits: []PurchaseUnit{
			{
				ReferenceID: quote.ReferenceID,
				Amount: UnitAmount{
					CurrencyCode: quote.Currency,
					Value:        quote.Total,
					Breakdown: AmountBreakdown{
						ItemTotal: Money{Value: quote.ItemTotal, CurrencyCode: quote.Currency},
						TaxTotal:  Money{Value: quote.TaxTotal, CurrencyCode: quote.Currency},
						Shipping:  Money{Value: quote.ShippingTotal, CurrencyCode: quote.Currency},
					},
				},
				Shipping: ShippingOptions{Options: options},
			},
		},
	})
}

// Reprice 配送変更時の再計算ハンドラー
// @Summary 合計金額を再計算
// @Description クライアント側の配送変更時に使う合計金額を返します
// @Tags shipping
// @Accept json
// @Produce json
// @Success 200 {object} RepriceResponse "再計算結果"
// @Router /shipping/reprice [post]
func (h *ShippingHandler) Reprice(c echo.Context) error {
	resp := h.shippingService.Reprice(c.Request().Context(), h.readSelection(c))
	return c.JSON(http.StatusOK, RepriceResponse{
		Amount:   resp.Amount,
		Currency: resp.Currency,
	})
}

// readSelection 本文を配送選択として読む
// 読めない場合はログに残して空の選択として扱う
func (h *ShippingHandler) readSelection(c echo.Context) *shippingapp.SelectionInput {
	ctx := c.Request().Context()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxCallbackBodyBytes))
	if err != nil {
		h.logger.Warn(ctx, "Failed to read shipping callback body", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var req ShippingCallbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn(ctx, "Ignoring undecodable shipping callback body", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	in := &shippingapp.SelectionInput{}
	if req.ShippingAddress != nil {
		in.HasAddress = true
		in.CountryCode = req.ShippingAddress.CountryCode
		in.AdminArea1 = req.ShippingAddress.AdminArea1
		in.AdminArea2 = req.ShippingAddress.AdminArea2
		in.PostalCode = req.ShippingAddress.PostalCode
	}
	if req.ShippingOption != nil {
		in.SelectedOptionID = req.ShippingOption.ID
	}
	return in
}
