package services

// ServiceContainer aggregates the service layer for injection into handlers.
type ServiceContainer struct {
	Application  *ApplicationService
	Submission   *SubmissionService
	Order        *OrderService
	Notification *NotificationService
	Payment      *PaymentService
}
