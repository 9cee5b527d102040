package dto

// ApplicationStatusResponse is the check-applied read model.
type ApplicationStatusResponse struct {
	HasApplied        bool   `json:"has_applied"`
	ApplicationStatus string `json:"application_status,omitempty"`
	ApplicationID     string `json:"application_id,omitempty"`
}

// MarkAllReadResponse reports the bulk-read outcome.
type MarkAllReadResponse struct {
	Updated         int64 `json:"updated"`
	RemainingUnread int64 `json:"remaining_unread"`
}

// PaymentIntentResponse is the provider state echoed back to the client.
type PaymentIntentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CheckoutSessionResponse carries the redirect URL.
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
