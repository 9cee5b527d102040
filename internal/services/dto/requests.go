package dto

// Application requests

type ApplyRequest struct {
	TargetID   string `json:"target_id" validate:"required,uuid4"`
	TargetType string `json:"target_type" validate:"required,oneof=contest project"`
	Message    string `json:"message" validate:"max=2000"`
}

type CancelApplicationRequest struct {
	TargetID   string `json:"target_id" validate:"required,uuid4"`
	TargetType string `json:"target_type" validate:"required,oneof=contest project"`
}

// Submission requests

type SparkCodeRequest struct {
	SubmissionID string `json:"submission_id" validate:"required,uuid4"`
	SparkCode    string `json:"spark_code" validate:"required"`
}

type TikTokLinkRequest struct {
	SubmissionID string `json:"submission_id" validate:"required,uuid4"`
	TikTokLink   string `json:"tiktok_link" validate:"required,url"`
}

type UpdateSubmissionStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment" validate:"max=2000"`
}

// Order requests

type CompleteOrderRequest struct {
	CompletedBy     string `json:"completed_by" validate:"required"`
	CompletionNotes string `json:"completion_notes" validate:"max=4000"`
}

// Notification requests

type CreateNotificationRequest struct {
	UserID  string                 `json:"user_id" validate:"required,uuid4"`
	Type    string                 `json:"type" validate:"required"`
	Title   string                 `json:"title" validate:"required,max=200"`
	Message string                 `json:"message" validate:"max=2000"`
	Data    map[string]interface{} `json:"data"`
}

type InvitationResponseRequest struct {
	NotificationID string `json:"notification_id" validate:"required,uuid4"`
	ProjectID      string `json:"project_id" validate:"required,uuid4"`
	Response       string `json:"response" validate:"required,oneof=accepted declined"`
	CreatorName    string `json:"creator_name" validate:"required,max=200"`
}

// Payment requests

type PaymentActionRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	PaymentID       string `json:"payment_id" validate:"required"`
}

type CheckoutSessionRequest struct {
	TargetID    string `json:"target_id" validate:"required,uuid4"`
	TargetType  string `json:"target_type" validate:"required,oneof=contest project"`
	AmountCents int64  `json:"amount_cents" validate:"required,min=1"`
	Currency    string `json:"currency" validate:"required,len=3"`
	ProductName string `json:"product_name" validate:"required,max=200"`
}
