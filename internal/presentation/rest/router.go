package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	checkoutapp "checkout-server/internal/application/checkout"
	shippingapp "checkout-server/internal/application/shipping"
	tokenapp "checkout-server/internal/application/token"
	"checkout-server/internal/infrastructure/config"
	otelinfra "checkout-server/internal/infrastructure/observability/otel"
	"checkout-server/internal/presentation/rest/handler"
	restmiddleware "checkout-server/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo            *echo.Echo
	server          *config.ServerConfig
	tokenHandler    *handler.TokenHandler
	checkoutHandler *handler.CheckoutHandler
	shippingHandler *handler.ShippingHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	tokenService *tokenapp.TokenApplicationService,
	checkoutService *checkoutapp.CheckoutApplicationService,
	shippingService *shippingapp.ShippingApplicationService,
) (*Router, error) {
	if cfg == nil || logger == nil || metrics == nil {
		return nil, fmt.Errorf("router: config, logger and metrics are required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	tokenHandler := handler.NewTokenHandler(tokenService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	shippingHandler := handler.NewShippingHandler(shippingService, logger)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, tokenHandler, checkoutHandler, shippingHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:            e,
		server:          &cfg.Server,
		tokenHandler:    tokenHandler,
		checkoutHandler: checkoutHandler,
		shippingHandler: shippingHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定（ブラウザのドロップインUIから呼ばれる）
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware(cfg.OpenTelemetry.ServiceName))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	tokenHandler *handler.TokenHandler,
	checkoutHandler *handler.CheckoutHandler,
	shippingHandler *handler.ShippingHandler,
) {
	// 決済エンドポイント（AUTH_ENABLED時のみ認証が必要）
	auth := restmiddleware.AuthMiddleware(&cfg.Auth, logger)
	e.GET("/client_token", tokenHandler.GetClientToken, auth)
	e.POST("/checkout", checkoutHandler.Checkout, auth)

	// ウォレットからのサーバー間コールバック（認証不要）
	e.POST("/shipping/callback", shippingHandler.Callback)
	e.POST("/shipping/reprice", shippingHandler.Reprice)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	// Shutdownが止めるのはEcho内部のServer
	r.echo.Server.ReadTimeout = r.server.ReadTimeout
	r.echo.Server.WriteTimeout = r.server.WriteTimeout
	r.echo.Server.IdleTimeout = r.server.IdleTimeout
	return r.echo.Start(address)
}

// Shutdown 処理中のリクエストを待ってサーバーを停止
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}

// ServeHTTP http.Handlerを実装
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.echo.ServeHTTP(w, req)
}
