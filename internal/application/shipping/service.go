package shipping

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"checkout-server/internal/domain/shipping"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
)

// ShippingApplicationService 配送料金サービス
type ShippingApplicationService struct {
	pricing *shipping.Pricing
	logger  *otelinfra.Logger
	metrics *otelinfra.Metrics
	tracer  trace.Tracer
}

// NewShippingApplicationService 新しいShippingApplicationServiceを作成
func NewShippingApplicationService(
	pricing *shipping.Pricing,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *ShippingApplicationService {
	return &ShippingApplicationService{
		pricing: pricing,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("shipping-service"),
	}
}

// Quote 配送見積もりを作成する（常に成功する）
func (s *ShippingApplicationService) Quote(ctx context.Context, in *SelectionInput) *QuoteResponse {
	ctx, span := s.tracer.Start(ctx, "ShippingApplicationService.Quote")
	defer span.End()

	sel := toSelection(in)
	quote := s.pricing.Quote(sel)

	span.SetAttributes(
		attribute.String("shipping.total", quote.Total.String()),
		attribute.String("shipping.currency", quote.Total.Currency()),
	)
	if sel.Address != nil {
		span.SetAttributes(attribute.String("shipping.country_code", sel.Address.CountryCode))
	}
	if opt, ok := quote.SelectedOption(); ok {
		span.SetAttributes(attribute.String("shipping.selected_option", opt.ID))
	}
	s.metrics.RecordShippingQuote(ctx, "callback")
	s.logger.Info(ctx, "Shipping quote issued", map[string]interface{}{
		"total":              quote.Total.String(),
		"requested_option":   sel.SelectedOptionID,
		"selection_provided": !sel.IsEmpty(),
	})

	resp := &QuoteResponse{
		MerchantID:    quote.MerchantID,
		ReferenceID:   quote.ReferenceID,
		Currency:      quote.Total.Currency(),
		Total:         quote.Total.String(),
		ItemTotal:     quote.Breakdown.ItemTotal.String(),
		TaxTotal:      quote.Breakdown.TaxTotal.String(),
		ShippingTotal: quote.Breakdown.Shipping.String(),
		Options:       make([]OptionResponse, 0, len(quote.Options)),
	}
	for _, opt := range quote.Options {
		resp.Options = append(resp.Options, OptionResponse{
			ID:       opt.ID,
			Label:    opt.Label,
			Type:     opt.Type,
			Amount:   opt.Amount.String(),
			Selected: opt.Selected,
		})
	}
	return resp
}

// Reprice 配送変更時の合計を返す（常に成功する）
func (s *ShippingApplicationService) Reprice(ctx context.Context, in *SelectionInput) *RepriceResponse {
	ctx, span := s.tracer.Start(ctx, "ShippingApplicationService.Reprice")
	defer span.End()

	money := s.pricing.Reprice(toSelection(in))

	span.SetAttributes(attribute.String("shipping.total", money.String()))
	s.metrics.RecordShippingQuote(ctx, "reprice")

	return &RepriceResponse{
		Amount:   money.String(),
		Currency: money.Currency(),
	}
}

func toSelection(in *SelectionInput) shipping.Selection {
	if in == nil {
		return shipping.Selection{}
	}
	sel := shipping.Selection{SelectedOptionID: in.SelectedOptionID}
	if in.HasAddress {
		sel.Address = &shipping.Address{
			CountryCode: in.CountryCode,
			AdminArea1:  in.AdminArea1,
			AdminArea2:  in.AdminArea2,
			PostalCode:  in.PostalCode,
		}
	}
	return sel
}
