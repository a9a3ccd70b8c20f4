package checkout

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/checkout"
	"checkout-server/internal/domain/processor"
	"checkout-server/internal/domain/shipping"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

const fallbackMessage = "sale error"

// CheckoutApplicationService チェックアウトサービス
type CheckoutApplicationService struct {
	processor         processor.Processor
	pricing           *shipping.Pricing
	merchantAccountID string
	logger            *otelinfra.Logger
	metrics           *otelinfra.Metrics
	tracer            trace.Tracer
}

// NewCheckoutApplicationService 新しいCheckoutApplicationServiceを作成
// merchantAccountIDは売上を計上するサブアカウント（空ならデフォルト）
func NewCheckoutApplicationService(
	p processor.Processor,
	pricing *shipping.Pricing,
	merchantAccountID string,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		processor:         p,
		pricing:           pricing,
		merchantAccountID: merchantAccountID,
		logger:            logger,
		metrics:           metrics,
		tracer:            otel.Tracer("checkout-service"),
	}
}

// Checkout 入力を検証し、売上トランザクションを1回だけ登録する
// errorを返すのは入力検証エラー（ゲートウェイ呼び出し前）のみ
func (s *CheckoutApplicationService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.Checkout")
	defer span.End()

	order, err := checkout.NewCheckoutRequest(req.PaymentMethodNonce, req.Amount, s.pricing.DefaultCheckoutAmount())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordCheckout(ctx, "invalid")
		s.logger.Warn(ctx, "Checkout rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	span.SetAttributes(
		attribute.String("checkout.amount", order.AmountString()),
		attribute.Bool("checkout.amount_defaulted", order.AmountDefaulted()),
		attribute.String("checkout.currency", s.pricing.Currency()),
	)

	s.logger.Info(ctx, "Submitting sale", map[string]interface{}{
		"amount":           order.AmountString(),
		"amount_defaulted": order.AmountDefaulted(),
	})

	result := s.submit(ctx, order)

	span.SetAttributes(attribute.String("checkout.outcome", result.Outcome().String()))
	s.metrics.RecordCheckout(ctx, result.Outcome().String())

	switch result.Outcome() {
	case checkout.OutcomeSettled:
		span.SetAttributes(attribute.String("checkout.transaction_id", result.TransactionID()))
		s.logger.Info(ctx, "Sale settled", map[string]interface{}{
			"transaction_id": result.TransactionID(),
		})
	case checkout.OutcomeDeclined:
		span.SetStatus(otelcodes.Error, result.Message())
		s.logger.Warn(ctx, "Sale declined", map[string]interface{}{
			"message":     result.Message(),
			"error_count": len(result.Errors()),
		})
	case checkout.OutcomeGatewayError:
		span.SetStatus(otelcodes.Error, result.Message())
	}

	return toResponse(result), nil
}

// submit ゲートウェイを呼び出して結果を分類する
func (s *CheckoutApplicationService) submit(ctx context.Context, order *checkout.CheckoutRequest) *checkout.TransactionResult {
	start := time.Now()
	// 呼び出し元の切断でゲートウェイ呼び出しを中断しない
	res, err := s.processor.Sale(context.WithoutCancel(ctx), &processor.SaleRequest{
		Amount:              order.Amount(),
		PaymentMethodNonce:  order.PaymentNonce(),
		MerchantAccountID:   s.merchantAccountID,
		SubmitForSettlement: true,
	})
	s.metrics.RecordProcessorCall(ctx, "sale", time.Since(start), err != nil)

	if err == nil && res == nil {
		err = processor.ErrUnexpectedResponse
	}
	if err != nil {
		ge := processor.NewGatewayError("sale", err, fallbackMessage)
		trace.SpanFromContext(ctx).RecordError(ge)
		s.logger.Error(ctx, "sale error", ge, nil)
		return checkout.GatewayFailure(ge.Error())
	}

	if !res.Success {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("checkout.error_count", res.Errors.Size()))
		return checkout.Declined(res.Message, res.Errors.DeepErrors())
	}
	return checkout.Settled(res.TransactionID)
}

func toResponse(result *checkout.TransactionResult) *CheckoutResponse {
	resp := &CheckoutResponse{
		Outcome:       result.Outcome().String(),
		TransactionID: result.TransactionID(),
		Message:       result.Message(),
	}
	if result.Outcome() == checkout.OutcomeDeclined {
		resp.Errors = make([]ErrorDetail, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			resp.Errors = append(resp.Errors, ErrorDetail{
				Attribute: e.Attribute,
				Code:      e.Code,
				Message:   e.Message,
			})
		}
	}
	return resp
}
