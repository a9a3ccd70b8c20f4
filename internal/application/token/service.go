package token

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/checkout"
	"checkout-server/internal/domain/processor"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

const fallbackMessage = "client token error"

// TokenApplicationService クライアントトークン発行サービス
type TokenApplicationService struct {
	processor processor.Processor
	logger    *otelinfra.Logger
	metrics   *otelinfra.Metrics
	tracer    trace.Tracer
}

// NewTokenApplicationService 新しいTokenApplicationServiceを作成
func NewTokenApplicationService(
	p processor.Processor,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *TokenApplicationService {
	return &TokenApplicationService{
		processor: p,
		logger:    logger,
		metrics:   metrics,
		tracer:    otel.Tracer("token-service"),
	}
}

// IssueClientToken ゲートウェイからクライアントトークンを取得する
// 失敗時は常に*processor.GatewayErrorを返す
func (s *TokenApplicationService) IssueClientToken(ctx context.Context) (*IssueClientTokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "TokenApplicationService.IssueClientToken")
	defer span.End()

	// 呼び出し元の切断でゲートウェイ呼び出しを中断しない
	start := time.Now()
	value, err := s.processor.GenerateClientToken(context.WithoutCancel(ctx))
	s.metrics.RecordProcessorCall(ctx, "client_token", time.Since(start), err != nil)
	if err != nil {
		return nil, s.fail(ctx, span, processor.NewGatewayError("client_token", err, fallbackMessage))
	}

	token, err := checkout.NewClientToken(value)
	if err != nil {
		return nil, s.fail(ctx, span, processor.NewGatewayError("client_token", err, fallbackMessage))
	}

	span.SetAttributes(attribute.Int("client_token.length", len(token.String())))
	s.metrics.RecordClientToken(ctx, "issued")
	s.logger.Info(ctx, "Client token issued", nil)

	return &IssueClientTokenResponse{ClientToken: token.String()}, nil
}

func (s *TokenApplicationService) fail(ctx context.Context, span trace.Span, ge *processor.GatewayError) error {
	span.RecordError(ge)
	span.SetStatus(otelcodes.Error, ge.Error())
	s.metrics.RecordClientToken(ctx, "failed")
	s.logger.Error(ctx, "client_token error", ge, map[string]interface{}{
		"op": ge.Op,
	})
	return ge
}
