package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingService talks to the payment gateway's REST API for client-slot
// purchases. Slot counts only ever change from verified webhook events,
// never from the redirect back to the app.
type BillingService struct {
	client        *http.Client
	apiKey        string
	webhookSecret string
	baseURL       string
}

func NewBillingService() *BillingService {
	return &BillingService{
		client:        &http.Client{Timeout: 15 * time.Second},
		apiKey:        os.Getenv("PAYMENT_API_KEY"),
		webhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		baseURL:       os.Getenv("PAYMENT_API_URL"),
	}
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession opens a gateway checkout for slots additional
// client slots. The professional's ID rides along as the client
// reference so the webhook can attribute the purchase.
func (b *BillingService) CreateCheckoutSession(professionalID uint, slots int) (*CheckoutSession, error) {
	if b.apiKey == "" || b.baseURL == "" {
		return nil, fmt.Errorf("payment gateway not configured")
	}
	if slots <= 0 {
		return nil, fmt.Errorf("slots must be positive")
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("quantity", fmt.Sprintf("%d", slots))
	form.Set("client_reference_id", fmt.Sprintf("%d", professionalID))
	form.Set("idempotency_key", uuid.NewString())
	form.Set("success_url", os.Getenv("PAYMENT_SUCCESS_URL"))
	form.Set("cancel_url", os.Getenv("PAYMENT_CANCEL_URL"))

	req, err := http.NewRequest("POST", b.baseURL+"/v1/checkout/sessions",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read checkout response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("gateway returned incomplete checkout session")
	}
	return &session, nil
}

// ErrBadSignature marks webhook payloads whose HMAC does not match.
var ErrBadSignature = errors.New("webhook signature mismatch")

// VerifySignature checks the gateway's hex HMAC-SHA256 of the raw
// payload.
func (b *BillingService) VerifySignature(payload []byte, signature string) error {
	if b.webhookSecret == "" {
		return fmt.Errorf("PAYMENT_WEBHOOK_SECRET not set")
	}
	mac := hmac.New(sha256.New, []byte(b.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

type gatewayEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ClientReferenceID string `json:"client_reference_id"`
		SubscriptionID    string `json:"subscription_id"`
		Quantity          int    `json:"quantity"`
	} `json:"data"`
}

// HandleWebhook verifies, deduplicates, and applies one gateway event.
// Redelivered events (same event ID) are acknowledged without effect.
func (b *BillingService) HandleWebhook(payload []byte, signature string) error {
	if err := b.VerifySignature(payload, signature); err != nil {
		return err
	}

	var event gatewayEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode webhook event: %w", err)
	}
	if event.ID == "" {
		return fmt.Errorf("webhook event missing id")
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		seen := models.WebhookEvent{EventID: event.ID, Type: event.Type, ReceivedAt: time.Now()}
		if err := tx.Create(&seen).Error; err != nil {
			// Unique index on event_id: a second delivery is a no-op.
			utils.Log.WithField("event_id", event.ID).Info("duplicate webhook event ignored")
			return nil
		}
		return applyGatewayEvent(tx, event)
	})
}

func applyGatewayEvent(tx *gorm.DB, event gatewayEvent) error {
	var professionalID uint
	if _, err := fmt.Sscanf(event.Data.ClientReferenceID, "%d", &professionalID); err != nil {
		return fmt.Errorf("webhook event has bad client reference %q", event.Data.ClientReferenceID)
	}

	sub := models.Subscription{ProfessionalID: professionalID}
	if err := tx.Where("professional_id = ?", professionalID).
		FirstOrCreate(&sub).Error; err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	switch event.Type {
	case "checkout.completed":
		sub.Slots += event.Data.Quantity
		sub.Status = models.SubscriptionActive
		sub.GatewayID = event.Data.SubscriptionID
		Notify(professionalID, "info",
			fmt.Sprintf("Payment confirmed: %d client slot(s) added.", event.Data.Quantity))
	case "subscription.canceled":
		sub.Status = models.SubscriptionCanceled
		Notify(professionalID, "info", "Your client-slot subscription was canceled.")
	default:
		utils.Log.WithField("type", event.Type).Debug("unhandled gateway event type")
		return nil
	}

	return tx.Save(&sub).Error
}

// SlotCapacity returns how many clients the professional may hold.
// Every professional account starts with one free slot.
func SlotCapacity(professionalID uint) (int, error) {
	var sub models.Subscription
	err := config.DB.Where("professional_id = ?", professionalID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, err
	}
	if sub.Status != models.SubscriptionActive {
		return 1, nil
	}
	return 1 + sub.Slots, nil
}
