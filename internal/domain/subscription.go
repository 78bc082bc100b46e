package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus status of a recurring donation
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
)

// Subscription is a recurring donation agreement. The provider id is the key
// the payment provider knows the agreement by; rows are created by the
// out-of-band confirmation path and only ever transition active -> cancelled.
type Subscription struct {
	ID              uuid.UUID          `json:"id" db:"id"`
	UserID          string             `json:"user_id" db:"user_id"`
	ProviderID      string             `json:"provider_subscription_id" db:"provider_subscription_id"`
	Status          SubscriptionStatus `json:"status" db:"status"`
	Amount          float64            `json:"amount" db:"amount"`
	PayerEmail      string             `json:"payer_email" db:"payer_email"`
	NextPaymentDate *time.Time         `json:"next_payment_date,omitempty" db:"next_payment_date"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty" db:"cancelled_at"`
}

// CancelSubscriptionRequest body of POST /subscriptions/cancel
type CancelSubscriptionRequest struct {
	SubscriptionID string `json:"subscriptionId" validate:"required"`
}

// CancelSubscriptionResponse body returned after a successful cancellation
type CancelSubscriptionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
