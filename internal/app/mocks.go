package app

import "brandlink_backend/internal/logger"

// MockEmailProvider logs instead of sending. Used when SMTP is unconfigured.
type MockEmailProvider struct{}

func (p *MockEmailProvider) Send(to, subject, htmlBody string) error {
	logger.Info("mock email", "to", to, "subject", subject)
	return nil
}
