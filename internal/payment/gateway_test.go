package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayStub(t *testing.T, handler func(path string, body map[string]any) (int, gatewayResponse)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		status, resp := handler(r.URL.Path, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRequest_Accepted(t *testing.T) {
	var seen map[string]any
	srv := gatewayStub(t, func(path string, body map[string]any) (int, gatewayResponse) {
		assert.Equal(t, "/request.json", path)
		seen = body
		return http.StatusOK, gatewayResponse{Data: gatewayData{Code: 100, Authority: "A-TEST-1"}}
	})

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	authority, redirect, err := z.Request(context.Background(), 645_000, "سفارش 12", "ali@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, "A-TEST-1", authority)
	assert.Equal(t, "https://payment.zarinpal.com/pg/StartPay/A-TEST-1", redirect)

	assert.Equal(t, "merchant-1", seen["merchant_id"])
	assert.Equal(t, float64(645_000), seen["amount"])
	assert.Equal(t, "https://shop.example/callback", seen["callback_url"])
	assert.Equal(t, "سفارش 12", seen["description"])
}

func TestRequest_Rejected(t *testing.T) {
	srv := gatewayStub(t, func(path string, body map[string]any) (int, gatewayResponse) {
		return http.StatusOK, gatewayResponse{Data: gatewayData{Code: -9, Message: "validation error"}}
	})

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	_, _, err := z.Request(context.Background(), 1000, "x", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=-9")
}

func TestRequest_NonPositiveAmount(t *testing.T) {
	z := NewZarinpalClient("merchant-1", "https://shop.example/callback")

	_, _, err := z.Request(context.Background(), 0, "x", "", "")
	require.Error(t, err)

	_, _, err = z.Request(context.Background(), -500, "x", "", "")
	require.Error(t, err)
}

func TestRequest_GatewayErrorStatus(t *testing.T) {
	srv := gatewayStub(t, func(path string, body map[string]any) (int, gatewayResponse) {
		return http.StatusBadRequest, gatewayResponse{Data: gatewayData{Message: "bad merchant"}}
	})

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	_, _, err := z.Request(context.Background(), 1000, "x", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestVerify_FreshPayment(t *testing.T) {
	srv := gatewayStub(t, func(path string, body map[string]any) (int, gatewayResponse) {
		assert.Equal(t, "/verify.json", path)
		assert.Equal(t, "A-TEST-1", body["authority"])
		return http.StatusOK, gatewayResponse{Data: gatewayData{Code: 100, RefID: 987654321}}
	})

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	refID, err := z.Verify(context.Background(), 645_000, "A-TEST-1")
	require.NoError(t, err)
	assert.Equal(t, "987654321", refID)
}

func TestVerify_AlreadyVerifiedIsOK(t *testing.T) {
	//کد 101: پرداختی که قبلا تایید شده؛ دوباره‌خوانی callback نباید خطا بدهد
	srv := gatewayStub(t, func(path string, body map[string]any) (int, gatewayResponse) {
		return http.StatusOK, gatewayResponse{Data: gatewayData{Code: 101, RefID: 987654321}}
	})

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	refID, err := z.Verify(context.Background(), 645_000, "A-TEST-1")
	require.NoError(t, err)
	assert.Equal(t, "987654321", refID)
}

func TestVerify_Failed(t *testing.T) {
	srv := gatewayStub(t, func(path string, body map[string]any) (int, gatewayResponse) {
		return http.StatusOK, gatewayResponse{Data: gatewayData{Code: -51, Message: "payment failed"}}
	})

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	_, err := z.Verify(context.Background(), 645_000, "A-TEST-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=-51")
}

func TestVerify_EmptyAuthority(t *testing.T) {
	z := NewZarinpalClient("merchant-1", "https://shop.example/callback")

	_, err := z.Verify(context.Background(), 645_000, "")
	require.Error(t, err)
}

func TestMockMode(t *testing.T) {
	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithMockMode())

	authority, redirect, err := z.Request(context.Background(), 1000, "x", "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(authority, "A"))
	assert.Len(t, authority, 37)
	assert.Equal(t, "https://payment.zarinpal.com/pg/StartPay/"+authority, redirect)

	refID, err := z.Verify(context.Background(), 1000, authority)
	require.NoError(t, err)
	assert.NotEmpty(t, refID)
}

func TestRequest_InvalidJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway down</html>"))
	}))
	t.Cleanup(srv.Close)

	z := NewZarinpalClient("merchant-1", "https://shop.example/callback", WithBaseURL(srv.URL))

	_, _, err := z.Request(context.Background(), 1000, "x", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gateway response")
}
