package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 決済結果ごとのチェックアウト数
	CheckoutCount metric.Int64Counter

	// クライアントトークン発行数
	ClientTokenCount metric.Int64Counter

	// 配送見積もり数
	ShippingQuoteCount metric.Int64Counter

	// 決済ゲートウェイ呼び出し時間
	ProcessorLatency metric.Float64Histogram

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー数
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	checkoutCount, err := meter.Int64Counter(
		"checkouts_total",
		metric.WithDescription("Total number of checkout attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	clientTokenCount, err := meter.Int64Counter(
		"client_tokens_total",
		metric.WithDescription("Total number of client token requests by result"),
	)
	if err != nil {
		return nil, err
	}

	shippingQuoteCount, err := meter.Int64Counter(
		"shipping_quotes_total",
		metric.WithDescription("Total number of shipping quotes by kind"),
	)
	if err != nil {
		return nil, err
	}

	processorLatency, err := meter.Float64Histogram(
		"processor_call_seconds",
		metric.WithDescription("Payment processor call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		CheckoutCount:      checkoutCount,
		ClientTokenCount:   clientTokenCount,
		ShippingQuoteCount: shippingQuoteCount,
		ProcessorLatency:   processorLatency,
		RequestCount:       requestCount,
		ResponseTime:       responseTime,
		ErrorCount:         errorCount,
	}, nil
}

// RecordCheckout チェックアウト結果を記録
func (m *Metrics) RecordCheckout(ctx context.Context, outcome string) {
	m.CheckoutCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

// RecordClientToken トークン発行結果を記録
func (m *Metrics) RecordClientToken(ctx context.Context, result string) {
	m.ClientTokenCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("result", result)),
	)
}

// RecordShippingQuote 配送見積もりを記録
func (m *Metrics) RecordShippingQuote(ctx context.Context, kind string) {
	m.ShippingQuoteCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}

// RecordProcessorCall 決済ゲートウェイ呼び出し時間を記録
func (m *Metrics) RecordProcessorCall(ctx context.Context, operation string, elapsed time.Duration, failed bool) {
	m.ProcessorLatency.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.Bool("failed", failed),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
