package services

import (
	"fmt"
	"testing"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/payments"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Contest{},
		&models.Project{},
		&models.Application{},
		&models.Submission{},
		&models.SubmissionHistory{},
		&models.Order{},
		&models.Milestone{},
		&models.Notification{},
		&models.PaymentRecord{},
		&models.PayoutTask{},
		&models.CleanupTask{},
	))

	return db
}

// stubGateway records calls and can be told to fail.
type stubGateway struct {
	captured  []string
	canceled  []string
	released  []string
	sessions  []payments.CheckoutParams
	failWith  error
	intentAmt int64
}

func (g *stubGateway) CapturePaymentIntent(id string) (*payments.PaymentIntent, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.captured = append(g.captured, id)
	return &payments.PaymentIntent{ID: id, Status: "succeeded", Amount: g.intentAmt, Currency: "usd"}, nil
}

func (g *stubGateway) CancelPaymentIntent(id string) (*payments.PaymentIntent, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.canceled = append(g.canceled, id)
	return &payments.PaymentIntent{ID: id, Status: "canceled", Amount: g.intentAmt, Currency: "usd"}, nil
}

func (g *stubGateway) CreateCheckoutSession(params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.sessions = append(g.sessions, params)
	return &payments.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", len(g.sessions)),
		URL: "https://checkout.example/session",
	}, nil
}

func (g *stubGateway) ReleasePayout(id string) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.released = append(g.released, id)
	return nil
}

// stubMailer records sent messages.
type stubMailer struct {
	sent []string
}

func (m *stubMailer) Send(to, subject, htmlBody string) error {
	m.sent = append(m.sent, to)
	return nil
}
