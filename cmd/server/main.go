package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	checkoutapp "checkout-server/internal/application/checkout"
	shippingapp "checkout-server/internal/application/shipping"
	tokenapp "checkout-server/internal/application/token"
	"checkout-server/internal/domain/shipping"
	"checkout-server/internal/infrastructure/config"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
	"checkout-server/internal/infrastructure/processor/braintree"
	grpcserver "checkout-server/internal/presentation/grpc"
	"checkout-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み（認証情報が欠けていれば起動しない）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer(cfg.OpenTelemetry.ServiceName)
	logger := otelinfra.NewLogger(tracer).With(map[string]interface{}{
		"service":     cfg.OpenTelemetry.ServiceName,
		"environment": cfg.Environment,
	})
	metrics, err := otelinfra.NewMetrics(cfg.OpenTelemetry.ServiceName)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	ctx := context.Background()

	// 認証情報は値を出さず、設定有無のみ記録する
	logger.Info(ctx, "Braintree configuration", map[string]interface{}{
		"bt_environment":         string(cfg.Braintree.Environment),
		"bt_merchant_id_set":     cfg.Braintree.MerchantID != "",
		"bt_public_key_set":      cfg.Braintree.PublicKey != "",
		"bt_private_key_set":     cfg.Braintree.PrivateKey != "",
		"bt_merchant_account_id": cfg.Braintree.MerchantAccountID,
		"auth_enabled":           cfg.Auth.Enabled,
	})

	// 決済ゲートウェイクライアントの初期化
	gateway := braintree.NewClient(&cfg.Braintree)

	// 料金表の初期化（見積もり・再計算・チェックアウト既定額で共有）
	pricing, err := shipping.NewPricing(shipping.PricingParams{
		MerchantID:       cfg.Braintree.MerchantID,
		ReferenceID:      cfg.Shipping.ReferenceID,
		Currency:         cfg.Shipping.Currency,
		ItemTotal:        cfg.Shipping.ItemTotal,
		TaxTotal:         cfg.Shipping.TaxTotal,
		StandardShipping: cfg.Shipping.StandardShipping,
		ExpressShipping:  cfg.Shipping.ExpressShipping,
		FlatTotal:        cfg.Shipping.FlatTotal,
	})
	if err != nil {
		log.Fatalf("Failed to create pricing: %v", err)
	}

	// アプリケーションサービスの初期化
	tokenAppService := tokenapp.NewTokenApplicationService(gateway, logger, metrics)
	checkoutAppService := checkoutapp.NewCheckoutApplicationService(
		gateway,
		pricing,
		cfg.Braintree.MerchantAccountID,
		logger,
		metrics,
	)
	shippingAppService := shippingapp.NewShippingApplicationService(pricing, logger, metrics)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		tokenAppService,
		checkoutAppService,
		shippingAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// gRPCサーバーの初期化
	grpcSrv, err := grpcserver.NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create gRPC server: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		logger.Info(ctx, "REST API server starting", map[string]interface{}{
			"address": address,
		})
		if err := router.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "REST API server error", err, nil)
		}
	}()

	// gRPCサーバーを別ゴルーチンで起動
	go func() {
		if err := grpcSrv.Start(); err != nil {
			logger.Error(ctx, "gRPC server error", err, nil)
		}
	}()

	// シグナルを待機
	<-quit
	logger.Info(ctx, "Shutting down servers", nil)

	// グレースフルシャットダウン
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// REST APIサーバーのシャットダウン
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Error shutting down REST API server", err, nil)
	}

	// gRPCサーバーのシャットダウン
	if err := grpcSrv.Stop(shutdownCtx); err != nil {
		logger.Error(ctx, "Error shutting down gRPC server", err, nil)
	}

	logger.Info(ctx, "Servers stopped", nil)
}
