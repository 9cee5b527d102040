package models

type UserRole string
type TargetType string
type ApplicationStatus string
type SubmissionStatus string
type OrderStatus string
type TaskStatus string
type InvitationResponse string

const (
	UserRoleCreator UserRole = "creator"
	UserRoleBrand   UserRole = "brand"
	UserRoleAdmin   UserRole = "admin"

	TargetTypeContest TargetType = "contest"
	TargetTypeProject TargetType = "project"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	SubmissionStatusPending             SubmissionStatus = "pending"
	SubmissionStatusSparkRequested      SubmissionStatus = "spark_requested"
	SubmissionStatusSparkReceived       SubmissionStatus = "spark_received"
	SubmissionStatusSparkVerified       SubmissionStatus = "spark_verified"
	SubmissionStatusTikTokLinkRequested SubmissionStatus = "tiktok_link_requested"
	SubmissionStatusTikTokLinkReceived  SubmissionStatus = "tiktok_link_received"
	SubmissionStatusTikTokLinkVerified  SubmissionStatus = "tiktok_link_verified"
	SubmissionStatusRevisionRequested   SubmissionStatus = "revision_requested"
	SubmissionStatusApproved            SubmissionStatus = "approved"
	SubmissionStatusRejected            SubmissionStatus = "rejected"

	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"

	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"

	InvitationAccepted InvitationResponse = "accepted"
	InvitationDeclined InvitationResponse = "declined"
)

// submissionTransitions is the authoritative transition table for the
// submission review lifecycle. Terminal states (approved, rejected) have no
// outgoing edges; revision_requested loops back to pending via resubmission.
var submissionTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionStatusPending: {
		SubmissionStatusSparkRequested,
		SubmissionStatusTikTokLinkRequested,
		SubmissionStatusRevisionRequested,
		SubmissionStatusApproved,
		SubmissionStatusRejected,
	},
	SubmissionStatusSparkRequested: {
		SubmissionStatusSparkReceived,
	},
	SubmissionStatusSparkReceived: {
		SubmissionStatusSparkVerified,
		SubmissionStatusRevisionRequested,
	},
	SubmissionStatusSparkVerified: {
		SubmissionStatusApproved,
		SubmissionStatusRejected,
	},
	SubmissionStatusTikTokLinkRequested: {
		SubmissionStatusTikTokLinkReceived,
	},
	SubmissionStatusTikTokLinkReceived: {
		SubmissionStatusTikTokLinkVerified,
		SubmissionStatusRevisionRequested,
	},
	SubmissionStatusTikTokLinkVerified: {
		SubmissionStatusApproved,
		SubmissionStatusRejected,
	},
	SubmissionStatusRevisionRequested: {
		SubmissionStatusPending,
	},
}

// CanTransition reports whether moving to the given status is legal.
func (s SubmissionStatus) CanTransition(to SubmissionStatus) bool {
	for _, allowed := range submissionTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValid reports whether the status is one of the enumerated states.
func (s SubmissionStatus) IsValid() bool {
	if _, ok := submissionTransitions[s]; ok {
		return true
	}
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// orderTransitions: completion is reachable from pending too, matching the
// direct-completion path used by admins.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCompleted},
	OrderStatusInProgress: {OrderStatusCompleted},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (t TargetType) IsValid() bool {
	return t == TargetTypeContest || t == TargetTypeProject
}

func (r InvitationResponse) IsValid() bool {
	return r == InvitationAccepted || r == InvitationDeclined
}
