package handler

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"checkout-server/internal/domain/processor"
	"checkout-server/internal/domain/shipping"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// MockProcessor モック決済ゲートウェイ
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) GenerateClientToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) Sale(ctx context.Context, req *processor.SaleRequest) (*processor.SaleResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processor.SaleResult), args.Error(1)
}

func newTestLogger() *otelinfra.Logger {
	return otelinfra.NewLoggerWithWriter(noop.NewTracerProvider().Tracer("test"), io.Discard)
}

func newTestMetrics(t *testing.T) *otelinfra.Metrics {
	t.Helper()
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return metrics
}

func newTestPricing(t *testing.T) *shipping.Pricing {
	t.Helper()
	pricing, err := shipping.NewPricing(shipping.PricingParams{
		MerchantID:       "merchant123",
		ReferenceID:      "PUHF",
		Currency:         "GBP",
		ItemTotal:        decimal.RequireFromString("180.00"),
		TaxTotal:         decimal.RequireFromString("20.00"),
		StandardShipping: decimal.RequireFromString("15.00"),
		ExpressShipping:  decimal.RequireFromString("30.00"),
		FlatTotal:        decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	return pricing
}
