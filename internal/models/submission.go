package models

// Submission is a creator deliverable under review. VideoURL is the public
// URL of the stored asset and StoragePath the backend key, kept separately so
// revisions can swap the asset without touching URL construction. SparkCode
// and TikTokLink are filled in as the review advances.
type Submission struct {
	BaseModel
	UserID        string           `gorm:"type:uuid;index;not null" json:"user_id"`
	TargetID      string           `gorm:"type:uuid;index;not null" json:"target_id"`
	TargetType    TargetType       `gorm:"type:varchar(20);not null" json:"target_type"`
	Status        SubmissionStatus `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	VideoURL      string           `json:"video_url"`
	StoragePath   string           `json:"-"`
	SparkCode     string           `json:"spark_code,omitempty"`
	TikTokLink    string           `json:"tiktok_link,omitempty"`
	RevisionsUsed int              `gorm:"default:0" json:"revisions_used"`
	Comment       string           `json:"comment,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Submission history actions
const (
	HistoryActionSparkCodeSubmitted  = "spark_code_submitted"
	HistoryActionTikTokLinkSubmitted = "tiktok_link_submitted"
	HistoryActionRevisionSubmitted   = "revision_submitted"
	HistoryActionStatusChanged       = "status_changed"
)

// SubmissionHistory is an append-only audit trail. Action names the event;
// the status pair records the transition it caused.
type SubmissionHistory struct {
	BaseModel
	SubmissionID string           `gorm:"type:uuid;index;not null" json:"submission_id"`
	Action       string           `gorm:"type:varchar(40);not null" json:"action"`
	FromStatus   SubmissionStatus `gorm:"type:varchar(30)" json:"from_status"`
	ToStatus     SubmissionStatus `gorm:"type:varchar(30);not null" json:"to_status"`
	ActorID      string           `gorm:"type:uuid" json:"actor_id"`
	Comment      string           `json:"comment,omitempty"`
}

func (SubmissionHistory) TableName() string {
	return "submission_history"
}
