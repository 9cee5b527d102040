package services

import (
	"errors"
	"testing"

	"brandlink_backend/internal/models"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/services/dto"
	"brandlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentService(t *testing.T) (*PaymentService, *gorm.DB, *stubGateway) {
	db := newTestDB(t)
	gateway := &stubGateway{intentAmt: 50000}
	svc := NewPaymentService(
		gateway,
		repositories.NewPaymentRepository(db),
		repositories.NewTargetRepository(db),
		"https://app.example/success",
		"https://app.example/cancel",
	)
	return svc, db, gateway
}

func TestCaptureUpdatesMirrorAndContest(t *testing.T) {
	svc, db, gateway := newPaymentService(t)

	contest := &models.Contest{OwnerID: "brand-1", Title: "Launch", Status: "draft", PaymentStatus: "unpaid"}
	require.NoError(t, db.Create(contest).Error)
	require.NoError(t, db.Create(&models.PaymentRecord{
		PaymentIntentID: "pi_1",
		TargetID:        contest.ID,
		TargetType:      models.TargetTypeContest,
		Status:          "requires_capture",
	}).Error)

	resp, err := svc.Capture("pi_1", "pay_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", resp.ID)
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, []string{"pi_1"}, gateway.captured)

	var record models.PaymentRecord
	require.NoError(t, db.First(&record, "payment_intent_id = ?", "pi_1").Error)
	assert.Equal(t, "succeeded", record.Status)

	var reloaded models.Contest
	require.NoError(t, db.First(&reloaded, "id = ?", contest.ID).Error)
	assert.Equal(t, ContestPaymentStatusPaid, reloaded.PaymentStatus)
	assert.Equal(t, ContestStatusActive, reloaded.Status)
}

func TestCancelUpdatesMirrorAndContest(t *testing.T) {
	svc, db, gateway := newPaymentService(t)

	contest := &models.Contest{OwnerID: "brand-1", Title: "Launch", Status: "draft", PaymentStatus: "unpaid"}
	require.NoError(t, db.Create(contest).Error)
	require.NoError(t, db.Create(&models.PaymentRecord{
		PaymentIntentID: "pi_2",
		TargetID:        contest.ID,
		TargetType:      models.TargetTypeContest,
		Status:          "requires_capture",
	}).Error)

	resp, err := svc.Cancel("pi_2", "pay_2")
	require.NoError(t, err)
	assert.Equal(t, "canceled", resp.Status)
	assert.Equal(t, []string{"pi_2"}, gateway.canceled)

	var reloaded models.Contest
	require.NoError(t, db.First(&reloaded, "id = ?", contest.ID).Error)
	assert.Equal(t, ContestPaymentStatusCanceled, reloaded.PaymentStatus)
	assert.Equal(t, ContestStatusCanceled, reloaded.Status)
}

func TestCaptureGatewayFailure(t *testing.T) {
	svc, db, gateway := newPaymentService(t)
	gateway.failWith = errors.New("card declined")

	_, err := svc.Capture("pi_3", "pay_3")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)

	// no mirror row materialized
	var count int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCaptureUnknownIntentCreatesMirror(t *testing.T) {
	svc, db, _ := newPaymentService(t)

	_, err := svc.Capture("pi_new", "pay_new")
	require.NoError(t, err)

	var record models.PaymentRecord
	require.NoError(t, db.First(&record, "payment_intent_id = ?", "pi_new").Error)
	assert.Equal(t, "succeeded", record.Status)
	assert.EqualValues(t, 50000, record.Amount)
}

func TestCreateCheckoutSession(t *testing.T) {
	svc, _, gateway := newPaymentService(t)

	session, err := svc.CreateCheckoutSession("user-1", &dto.CheckoutSessionRequest{
		TargetID:    "11111111-1111-4111-8111-111111111111",
		TargetType:  "contest",
		AmountCents: 50000,
		Currency:    "usd",
		ProductName: "Contest funding",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.NotEmpty(t, session.URL)

	require.Len(t, gateway.sessions, 1)
	params := gateway.sessions[0]
	assert.EqualValues(t, 50000, params.AmountCents)
	assert.Equal(t, "https://app.example/success", params.SuccessURL)
	assert.Equal(t, "user-1", params.Metadata["user_id"])
}

func TestReleasePayoutUpdatesMirror(t *testing.T) {
	svc, db, gateway := newPaymentService(t)

	require.NoError(t, db.Create(&models.PaymentRecord{
		PaymentIntentID: "pi_4",
		Status:          "succeeded",
	}).Error)

	require.NoError(t, svc.ReleasePayout("pi_4"))
	assert.Equal(t, []string{"pi_4"}, gateway.released)

	var record models.PaymentRecord
	require.NoError(t, db.First(&record, "payment_intent_id = ?", "pi_4").Error)
	assert.Equal(t, "released", record.Status)
}
