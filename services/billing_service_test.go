package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func signPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	b := &BillingService{webhookSecret: "whsec_test"}
	payload := []byte(`{"id":"evt_1","type":"checkout.completed"}`)

	t.Run("ValidSignature", func(t *testing.T) {
		if err := b.VerifySignature(payload, signPayload("whsec_test", payload)); err != nil {
			t.Fatalf("valid signature rejected: %v", err)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		err := b.VerifySignature(payload, signPayload("whsec_other", payload))
		if !errors.Is(err, ErrBadSignature) {
			t.Fatalf("err = %v, want ErrBadSignature", err)
		}
	})

	t.Run("TamperedPayload", func(t *testing.T) {
		sig := signPayload("whsec_test", payload)
		tampered := []byte(`{"id":"evt_1","type":"checkout.completed","data":{"quantity":99}}`)
		if !errors.Is(b.VerifySignature(tampered, sig), ErrBadSignature) {
			t.Fatal("tampered payload passed verification")
		}
	})

	t.Run("MissingSecretFailsClosed", func(t *testing.T) {
		unconfigured := &BillingService{}
		if err := unconfigured.VerifySignature(payload, signPayload("", payload)); err == nil {
			t.Fatal("verification succeeded without a configured secret")
		}
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("SessionReturned", func(t *testing.T) {
		var gotForm map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/checkout/sessions" {
				t.Errorf("path = %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
				t.Errorf("authorization = %q", got)
			}
			r.ParseForm()
			gotForm = map[string]string{
				"quantity":            r.PostForm.Get("quantity"),
				"client_reference_id": r.PostForm.Get("client_reference_id"),
				"idempotency_key":     r.PostForm.Get("idempotency_key"),
			}
			json.NewEncoder(w).Encode(CheckoutSession{ID: "cs_123", URL: "https://pay.example/cs_123"})
		}))
		defer srv.Close()

		b := &BillingService{
			client:  srv.Client(),
			apiKey:  "sk_test",
			baseURL: srv.URL,
		}
		session, err := b.CreateCheckoutSession(42, 3)
		if err != nil {
			t.Fatal(err)
		}
		if session.ID != "cs_123" || session.URL == "" {
			t.Fatalf("session = %+v", session)
		}
		if gotForm["quantity"] != "3" || gotForm["client_reference_id"] != "42" {
			t.Fatalf("form = %+v", gotForm)
		}
		if gotForm["idempotency_key"] == "" {
			t.Fatal("missing idempotency key")
		}
	})

	t.Run("GatewayErrorSurfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"card_declined"}`, http.StatusPaymentRequired)
		}))
		defer srv.Close()

		b := &BillingService{client: srv.Client(), apiKey: "sk_test", baseURL: srv.URL}
		if _, err := b.CreateCheckoutSession(42, 1); err == nil {
			t.Fatal("gateway failure swallowed")
		}
	})

	t.Run("InvalidSlotCount", func(t *testing.T) {
		b := &BillingService{client: &http.Client{Timeout: time.Second}, apiKey: "sk_test", baseURL: "http://unused"}
		if _, err := b.CreateCheckoutSession(42, 0); err == nil {
			t.Fatal("zero slots accepted")
		}
	})

	t.Run("UnconfiguredGateway", func(t *testing.T) {
		b := &BillingService{client: &http.Client{Timeout: time.Second}}
		if _, err := b.CreateCheckoutSession(42, 1); err == nil {
			t.Fatal("checkout succeeded without gateway config")
		}
	})
}
