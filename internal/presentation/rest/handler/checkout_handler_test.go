package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	checkoutapp "checkout-server/internal/application/checkout"
	"checkout-server/internal/domain/processor"
	restmiddleware "checkout-server/internal/presentation/rest/middleware"
)

func saleFor(amount, nonce string) interface{} {
	return mock.MatchedBy(func(req *processor.SaleRequest) bool {
		return req.Amount.StringFixed(2) == amount &&
			req.PaymentMethodNonce == nonce &&
			req.MerchantAccountID == "shop_gbp" &&
			req.SubmitForSettlement
	})
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockProcessor)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: 金額指定で決済成功",
			body: `{"payment_method_nonce":"fake-valid-nonce","amount":"10.00"}`,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, saleFor("10.00", "fake-valid-nonce")).
					Return(&processor.SaleResult{Success: true, TransactionID: "txn123"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"transactionId":"txn123"}`,
		},
		{
			name: "正常系: 数値の金額も受け付ける",
			body: `{"payment_method_nonce":"fake-valid-nonce","amount":10.5}`,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, saleFor("10.50", "fake-valid-nonce")).
					Return(&processor.SaleResult{Success: true, TransactionID: "txn124"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"transactionId":"txn124"}`,
		},
		{
			name: "正常系: 金額省略時は100.00",
			body: `{"payment_method_nonce":"fake-valid-nonce"}`,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, saleFor("100.00", "fake-valid-nonce")).
					Return(&processor.SaleResult{Success: true, TransactionID: "txn125"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"transactionId":"txn125"}`,
		},
		{
			name:           "異常系: nonceなし",
			body:           `{"amount":"10.00"}`,
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Missing payment_method_nonce"}`,
		},
		{
			name:           "異常系: 本文が空",
			body:           ``,
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Missing payment_method_nonce"}`,
		},
		{
			name:           "異常系: 金額が不正",
			body:           `{"payment_method_nonce":"fake-valid-nonce","amount":"ten"}`,
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Invalid amount"}`,
		},
		{
			name:           "異常系: JSONが壊れている",
			body:           `{"payment_method_nonce":`,
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Invalid request body"}`,
		},
		{
			name:           "異常系: Content-Typeなしの本文は空として扱う",
			body:           `{"payment_method_nonce":"fake-valid-nonce","amount":"5.00"}`,
			contentType:    "none",
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Missing payment_method_nonce"}`,
		},
		{
			name:           "異常系: text/plainの本文は空として扱う",
			body:           `{"amount":"5.00"}`,
			contentType:    echo.MIMETextPlain,
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Missing payment_method_nonce"}`,
		},
		{
			name:           "異常系: フォームの本文は空として扱う",
			body:           `payment_method_nonce=fake-valid-nonce`,
			contentType:    echo.MIMEApplicationForm,
			setupMock:      func(mp *MockProcessor) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"ok":false,"error":"Missing payment_method_nonce"}`,
		},
		{
			name:        "正常系: charset付きのJSON",
			body:        `{"payment_method_nonce":"fake-valid-nonce","amount":"5.00"}`,
			contentType: echo.MIMEApplicationJSONCharsetUTF8,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, saleFor("5.00", "fake-valid-nonce")).
					Return(&processor.SaleResult{Success: true, TransactionID: "txn126"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true,"transactionId":"txn126"}`,
		},
		{
			name: "異常系: ゲートウェイが拒否",
			body: `{"payment_method_nonce":"fake-valid-nonce","amount":"2000.00"}`,
			setupMock: func(mp *MockProcessor) {
				tree := processor.NewErrorNode("").AddChild(
					processor.NewErrorNode("transaction",
						processor.FieldError{Attribute: "amount", Code: "81503", Message: "Amount is an invalid format."},
					).AddChild(processor.NewErrorNode("credit-card",
						processor.FieldError{Attribute: "number", Code: "81714", Message: "Credit card number must be 12-19 digits."},
					)),
				)
				mp.On("Sale", mock.Anything, saleFor("2000.00", "fake-valid-nonce")).
					Return(&processor.SaleResult{Success: false, Message: "Amount is an invalid format.", Errors: tree}, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: `{"ok":false,"error":"Amount is an invalid format.","details":[` +
				`{"attribute":"amount","code":"81503","message":"Amount is an invalid format."},` +
				`{"attribute":"number","code":"81714","message":"Credit card number must be 12-19 digits."}]}`,
		},
		{
			name: "異常系: 検証エラーなしの拒否でもdetailsは配列",
			body: `{"payment_method_nonce":"fake-processor-declined-visa-nonce"}`,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, saleFor("100.00", "fake-processor-declined-visa-nonce")).
					Return(&processor.SaleResult{Success: false, Message: "Do Not Honor"}, nil)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"ok":false,"error":"Do Not Honor","details":[]}`,
		},
		{
			name: "異常系: ゲートウェイ通信エラー",
			body: `{"payment_method_nonce":"fake-valid-nonce"}`,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"ok":false,"error":"connection refused"}`,
		},
		{
			name: "異常系: メッセージなしのゲートウェイエラー",
			body: `{"payment_method_nonce":"fake-valid-nonce"}`,
			setupMock: func(mp *MockProcessor) {
				mp.On("Sale", mock.Anything, mock.Anything).Return(nil, errors.New(""))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"ok":false,"error":"sale error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			logger := newTestLogger()
			mockProcessor := new(MockProcessor)
			tt.setupMock(mockProcessor)

			appService := checkoutapp.NewCheckoutApplicationService(
				mockProcessor,
				newTestPricing(t),
				"shop_gbp",
				logger,
				newTestMetrics(t),
			)
			handler := NewCheckoutHandler(appService)

			req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(tt.body))
			switch tt.contentType {
			case "":
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			case "none":
			default:
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// ミドルウェアを手動で実行
			handlerFunc := restmiddleware.ErrorHandlerMiddleware(logger)(handler.Checkout)
			err := handlerFunc(c)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			mockProcessor.AssertExpectations(t)
		})
	}
}

func TestCheckoutHandler_Checkout_CustomerID(t *testing.T) {
	e := echo.New()
	mockProcessor := new(MockProcessor)
	mockProcessor.On("Sale", mock.Anything, mock.Anything).
		Return(&processor.SaleResult{Success: true, TransactionID: "txn200"}, nil)

	appService := checkoutapp.NewCheckoutApplicationService(mockProcessor, newTestPricing(t), "shop_gbp", newTestLogger(), newTestMetrics(t))
	handler := NewCheckoutHandler(appService)

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"payment_method_nonce":"fake-valid-nonce"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(restmiddleware.CustomerIDKey, "customer123")

	require.NoError(t, handler.Checkout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckoutHandler_Checkout_ClientDisconnect(t *testing.T) {
	e := echo.New()
	mockProcessor := new(MockProcessor)
	mockProcessor.On("Sale", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(&processor.SaleResult{Success: true, TransactionID: "txn300"}, nil)

	appService := checkoutapp.NewCheckoutApplicationService(mockProcessor, newTestPricing(t), "shop_gbp", newTestLogger(), newTestMetrics(t))
	handler := NewCheckoutHandler(appService)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{"payment_method_nonce":"fake-valid-nonce"}`)).WithContext(ctx)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Checkout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockProcessor.AssertExpectations(t)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "正常系: 文字列", input: `"12.34"`, want: "12.34"},
		{name: "正常系: 数値", input: `12.5`, want: "12.5"},
		{name: "正常系: null", input: `null`, want: ""},
		{name: "異常系: 真偽値", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Amount
			err := got.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
