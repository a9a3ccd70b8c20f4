package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	Braintree     BraintreeConfig
	Shipping      ShippingConfig
	Auth          AuthConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GRPCPort gRPCサーバーのポート（RESTポート+1）
func (c *ServerConfig) GRPCPort() int {
	return c.Port + 1
}

// BraintreeEnvironment 決済ゲートウェイの接続先環境
type BraintreeEnvironment string

const (
	BraintreeSandbox    BraintreeEnvironment = "sandbox"
	BraintreeProduction BraintreeEnvironment = "production"
)

// BraintreeConfig 決済ゲートウェイ設定
type BraintreeConfig struct {
	Environment BraintreeEnvironment
	MerchantID  string
	PublicKey   string
	PrivateKey  string
	// MerchantAccountID GBP建てサブアカウント。空の場合はデフォルトアカウントで決済される
	MerchantAccountID string
	// BaseURL 接続先の上書き（テスト・プロキシ用）
	BaseURL string
}

// ShippingConfig 配送料金設定
type ShippingConfig struct {
	Currency         string
	ItemTotal        decimal.Decimal
	TaxTotal         decimal.Decimal
	StandardShipping decimal.Decimal
	ExpressShipping  decimal.Decimal
	FlatTotal        decimal.Decimal
	ReferenceID      string
}

// AuthConfig Bearer認証設定
type AuthConfig struct {
	Enabled   bool
	JWTSecret string
	Issuer    string
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "none"
	MetricsExporter string // "otlp", "none"
	SampleRatio     float64
}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	var parseErrs []error

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvAsInt("PORT", 3000, &parseErrs),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 75*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Braintree: BraintreeConfig{
			Environment:       BraintreeEnvironment(strings.ToLower(getEnv("BT_ENVIRONMENT", "Sandbox"))),
			MerchantID:        getEnv("BT_MERCHANT_ID", ""),
			PublicKey:         getEnv("BT_PUBLIC_KEY", ""),
			PrivateKey:        getEnv("BT_PRIVATE_KEY", ""),
			MerchantAccountID: getEnv("BT_MERCHANT_ACCOUNT_ID_GBP", ""),
			BaseURL:           strings.TrimRight(getEnv("BT_BASE_URL", ""), "/"),
		},
		Shipping: ShippingConfig{
			Currency:         getEnv("SHIPPING_CURRENCY", "GBP"),
			ItemTotal:        getEnvAsDecimal("SHIPPING_ITEM_TOTAL", "180.00", &parseErrs),
			TaxTotal:         getEnvAsDecimal("SHIPPING_TAX_TOTAL", "20.00", &parseErrs),
			StandardShipping: getEnvAsDecimal("SHIPPING_STANDARD_AMOUNT", "15.00", &parseErrs),
			ExpressShipping:  getEnvAsDecimal("SHIPPING_EXPRESS_AMOUNT", "30.00", &parseErrs),
			FlatTotal:        getEnvAsDecimal("SHIPPING_FLAT_TOTAL", "100.00", &parseErrs),
			ReferenceID:      getEnv("SHIPPING_REFERENCE_ID", "PUHF"),
		},
		Auth: AuthConfig{
			Enabled:   getEnvAsBool("AUTH_ENABLED", false),
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_JWT_ISSUER", ""),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", true),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "checkout-server"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
			SampleRatio:     getEnvAsFloat("OTEL_TRACES_SAMPLER_RATIO", 1.0),
		},
	}

	if err := errors.Join(parseErrs...); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証
func (c *Config) validate() error {
	var errs []error

	switch c.Braintree.Environment {
	case BraintreeSandbox, BraintreeProduction:
	default:
		errs = append(errs, fmt.Errorf("BT_ENVIRONMENT must be Sandbox or Production, got %q", c.Braintree.Environment))
	}
	if c.Braintree.MerchantID == "" {
		errs = append(errs, errors.New("BT_MERCHANT_ID is required"))
	}
	if c.Braintree.PublicKey == "" {
		errs = append(errs, errors.New("BT_PUBLIC_KEY is required"))
	}
	if c.Braintree.PrivateKey == "" {
		errs = append(errs, errors.New("BT_PRIVATE_KEY is required"))
	}

	if c.Server.Port <= 0 || c.Server.Port >= 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Server.Port))
	}

	if c.Shipping.Currency == "" {
		errs = append(errs, errors.New("SHIPPING_CURRENCY is required"))
	}
	for name, v := range map[string]decimal.Decimal{
		"SHIPPING_ITEM_TOTAL":      c.Shipping.ItemTotal,
		"SHIPPING_TAX_TOTAL":       c.Shipping.TaxTotal,
		"SHIPPING_STANDARD_AMOUNT": c.Shipping.StandardShipping,
		"SHIPPING_EXPRESS_AMOUNT":  c.Shipping.ExpressShipping,
		"SHIPPING_FLAT_TOTAL":      c.Shipping.FlatTotal,
	} {
		if v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
		if !v.Equal(v.Round(2)) {
			errs = append(errs, fmt.Errorf("%s must have at most 2 decimal places", name))
		}
	}
	if !c.Shipping.FlatTotal.IsPositive() {
		errs = append(errs, errors.New("SHIPPING_FLAT_TOTAL must be positive"))
	}

	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required when AUTH_ENABLED is true"))
	}

	return errors.Join(errs...)
}

// IsDevelopment 開発環境かどうか
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
// 不正値はデフォルトに戻さずエラーとして集める
func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s is not an integer: %q", key, valueStr))
		return 0
	}
	return value
}

// getEnvAsFloat 環境変数を浮動小数点数として取得
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDecimal 環境変数を金額として取得
// 不正値はデフォルトに戻さずエラーとして集める
func getEnvAsDecimal(key, defaultValue string, errs *[]error) decimal.Decimal {
	valueStr := getEnv(key, defaultValue)
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s is not a decimal: %q", key, valueStr))
		return decimal.Zero
	}
	return value
}
