package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// درگاه پرداخت سبک زرین‌پال: درخواست → هدایت کاربر → تایید.
type ZarinpalClient struct {
	merchantID  string
	baseURL     string
	callbackURL string
	httpClient  *http.Client

	//حالت آزمایشی بدون تماس شبکه
	mockMode bool
}

type Option func(*ZarinpalClient)

func WithHTTPClient(c *http.Client) Option {
	return func(z *ZarinpalClient) { z.httpClient = c }
}

func WithBaseURL(u string) Option {
	return func(z *ZarinpalClient) { z.baseURL = u }
}

func WithMockMode() Option {
	return func(z *ZarinpalClient) { z.mockMode = true }
}

func NewZarinpalClient(merchantID string, callbackURL string, opts ...Option) *ZarinpalClient {
	z := &ZarinpalClient{
		merchantID:  merchantID,
		baseURL:     "https://payment.zarinpal.com/pg/v4/payment",
		callbackURL: callbackURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

type requestPayload struct {
	MerchantID  string          `json:"merchant_id"`
	Amount      int64           `json:"amount"`
	CallbackURL string          `json:"callback_url"`
	Description string          `json:"description"`
	Metadata    requestMetadata `json:"metadata"`
}

type requestMetadata struct {
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

type gatewayData struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Authority string `json:"authority"`
	RefID     int64  `json:"ref_id"`
}

type gatewayResponse struct {
	Data   gatewayData     `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Request مبلغ را به درگاه اعلام و کد پیگیری (authority) می‌گیرد.
func (z *ZarinpalClient) Request(ctx context.Context, amount int64, description string, email string, mobile string) (string, string, error) {
	if amount <= 0 {
		return "", "", fmt.Errorf("payment: amount must be positive")
	}

	if z.mockMode {
		authority := fmt.Sprintf("A%036d", time.Now().UnixNano())
		return authority, z.startPayURL(authority), nil
	}

	body := requestPayload{
		MerchantID:  z.merchantID,
		Amount:      amount,
		CallbackURL: z.callbackURL,
		Description: description,
		Metadata:    requestMetadata{Email: email, Mobile: mobile},
	}

	data, err := z.post(ctx, z.baseURL+"/request.json", body)
	if err != nil {
		return "", "", err
	}

	//کد 100 یعنی درخواست پذیرفته شد
	if data.Code != 100 || data.Authority == "" {
		return "", "", fmt.Errorf("payment: request rejected: code=%d message=%s", data.Code, data.Message)
	}
	return data.Authority, z.startPayURL(data.Authority), nil
}

// Verify بعد از برگشت کاربر از درگاه صدا می‌شود و شماره مرجع برمی‌گرداند.
func (z *ZarinpalClient) Verify(ctx context.Context, amount int64, authority string) (string, error) {
	if authority == "" {
		return "", fmt.Errorf("payment: empty authority")
	}

	if z.mockMode {
		return fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000), nil
	}

	body := struct {
		MerchantID string `json:"merchant_id"`
		Amount     int64  `json:"amount"`
		Authority  string `json:"authority"`
	}{z.merchantID, amount, authority}

	data, err := z.post(ctx, z.baseURL+"/verify.json", body)
	if err != nil {
		return "", err
	}

	//کد 100 پرداخت تازه، کد 101 پرداختی که قبلا تایید شده
	if data.Code != 100 && data.Code != 101 {
		return "", fmt.Errorf("payment: verify failed: code=%d message=%s", data.Code, data.Message)
	}
	return fmt.Sprintf("%d", data.RefID), nil
}

func (z *ZarinpalClient) post(ctx context.Context, url string, payload any) (gatewayData, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return gatewayData{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return gatewayData{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return gatewayData{}, fmt.Errorf("payment: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return gatewayData{}, err
	}

	var parsed gatewayResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return gatewayData{}, fmt.Errorf("payment: invalid gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gatewayData{}, fmt.Errorf("payment: gateway status %d: %s", resp.StatusCode, parsed.Data.Message)
	}
	return parsed.Data, nil
}

func (z *ZarinpalClient) startPayURL(authority string) string {
	return "https://payment.zarinpal.com/pg/StartPay/" + authority
}
