package braintree

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"checkout-server/internal/domain/processor"
	"checkout-server/internal/infrastructure/config"
)

const (
	sandboxURL    = "https://api.sandbox.braintreegateway.com:443"
	productionURL = "https://api.braintreegateway.com:443"

	apiVersion = "6"
	userAgent  = "checkout-server/1.0 (Go)"

	// DefaultTimeout ゲートウェイSDKと同じ1回あたりの上限時間
	DefaultTimeout = 60 * time.Second

	maxResponseBytes = 1 << 20
)

// Client BraintreeのXMLゲートウェイAPIクライアント
type Client struct {
	baseURL    string
	merchantID string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

var _ processor.Processor = (*Client)(nil)

// Option Clientの設定オプション
type Option func(*Client)

// WithHTTPClient HTTPクライアントを差し替える
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.BraintreeConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    BaseURL(cfg.Environment),
		merchantID: cfg.MerchantID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	if cfg.BaseURL != "" {
		c.baseURL = cfg.BaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL 環境ごとのゲートウェイURLを返す
func BaseURL(env config.BraintreeEnvironment) string {
	if env == config.BraintreeProduction {
		return productionURL
	}
	return sandboxURL
}

// GenerateClientToken クライアントトークンを発行する
// トークンが空の場合もエラーにせず空文字を返す
func (c *Client) GenerateClientToken(ctx context.Context) (string, error) {
	body := clientTokenRequest{
		Version: typedValue{Type: "integer", Value: "2"},
	}

	status, data, err := c.post(ctx, "client_token", body)
	if err != nil {
		return "", err
	}
	if err := statusError("client_token", status); err != nil {
		return "", err
	}

	var resp clientTokenResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("braintree client_token: %w: %v", processor.ErrUnexpectedResponse, err)
	}
	return resp.Value, nil
}

// Sale 売上トランザクションを登録する
func (c *Client) Sale(ctx context.Context, req *processor.SaleRequest) (*processor.SaleResult, error) {
	body := transactionRequest{
		Type:               "sale",
		Amount:             req.Amount.StringFixed(2),
		PaymentMethodNonce: req.PaymentMethodNonce,
		MerchantAccountID:  req.MerchantAccountID,
	}
	if req.SubmitForSettlement {
		body.Options = &transactionOptions{
			SubmitForSettlement: &typedValue{Type: "boolean", Value: "true"},
		}
	}

	status, data, err := c.post(ctx, "transactions", body)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnprocessableEntity {
		var resp apiErrorResponse
		if err := xml.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("braintree sale: %w: %v", processor.ErrUnexpectedResponse, err)
		}
		return resp.toSaleResult(), nil
	}
	if err := statusError("sale", status); err != nil {
		return nil, err
	}

	var txn transactionResponse
	if err := xml.Unmarshal(data, &txn); err != nil {
		return nil, fmt.Errorf("braintree sale: %w: %v", processor.ErrUnexpectedResponse, err)
	}
	if txn.ID == "" {
		return nil, fmt.Errorf("braintree sale: %w: transaction has no id", processor.ErrUnexpectedResponse)
	}
	return &processor.SaleResult{
		Success:       true,
		TransactionID: txn.ID,
		Status:        txn.Status,
	}, nil
}

// post XML本文を送信し、ステータスと本文を返す
func (c *Client) post(ctx context.Context, resource string, payload interface{}) (int, []byte, error) {
	buf := bytes.NewBufferString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(payload); err != nil {
		return 0, nil, fmt.Errorf("braintree %s: encode request: %w", resource, err)
	}

	url := fmt.Sprintf("%s/merchants/%s/%s", c.baseURL, c.merchantID, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return 0, nil, fmt.Errorf("braintree %s: build request: %w", resource, err)
	}
	req.SetBasicAuth(c.publicKey, c.privateKey)
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("X-ApiVersion", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("braintree %s: %w", resource, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("braintree %s: read response: %w", resource, err)
	}
	return resp.StatusCode, data, nil
}

// statusError 成功以外のHTTPステータスをエラーにする
func statusError(op string, status int) error {
	var cause error
	switch status {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusUnauthorized:
		cause = processor.ErrAuthentication
	case http.StatusForbidden:
		cause = processor.ErrAuthorization
	case http.StatusNotFound:
		cause = processor.ErrNotFound
	case http.StatusUpgradeRequired:
		cause = processor.ErrUpgradeRequired
	case http.StatusTooManyRequests:
		cause = processor.ErrTooManyRequests
	case http.StatusInternalServerError:
		cause = processor.ErrServer
	case http.StatusServiceUnavailable:
		cause = processor.ErrUnavailable
	default:
		cause = processor.ErrUnexpectedResponse
	}
	return fmt.Errorf("braintree %s: status %d: %w", op, status, cause)
}
