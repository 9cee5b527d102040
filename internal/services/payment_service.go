package services

import (
	"errors"

	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/payments"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/services/dto"

	"brandlink_backend/pkg/apperrors"
)

// Contest payment states mirrored from the provider
const (
	ContestPaymentStatusPaid     = "paid"
	ContestPaymentStatusCanceled = "canceled"
	ContestStatusActive          = "active"
	ContestStatusCanceled        = "canceled"
)

type PaymentService struct {
	gateway     payments.Gateway
	paymentRepo repositories.PaymentRepository
	targetRepo  repositories.TargetRepository
	successURL  string
	cancelURL   string
}

func NewPaymentService(
	gateway payments.Gateway,
	paymentRepo repositories.PaymentRepository,
	targetRepo repositories.TargetRepository,
	successURL, cancelURL string,
) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		targetRepo:  targetRepo,
		successURL:  successURL,
		cancelURL:   cancelURL,
	}
}

// Capture confirms the held funds with the provider, then refreshes the
// local mirror. The provider is authoritative: once it has captured, a mirror
// write failure is logged as an inconsistency, not compensated.
func (s *PaymentService) Capture(paymentIntentID, paymentID string) (*dto.PaymentIntentResponse, error) {
	intent, err := s.gateway.CapturePaymentIntent(paymentIntentID)
	if err != nil {
		return nil, apperrors.NewUpstreamError("payment", "payment capture failed", err)
	}

	s.syncMirror(intent, ContestPaymentStatusPaid, ContestStatusActive)

	return &dto.PaymentIntentResponse{ID: intent.ID, Status: intent.Status}, nil
}

// Cancel releases the hold with the provider, then refreshes the mirror.
func (s *PaymentService) Cancel(paymentIntentID, paymentID string) (*dto.PaymentIntentResponse, error) {
	intent, err := s.gateway.CancelPaymentIntent(paymentIntentID)
	if err != nil {
		return nil, apperrors.NewUpstreamError("payment", "payment cancellation failed", err)
	}

	s.syncMirror(intent, ContestPaymentStatusCanceled, ContestStatusCanceled)

	return &dto.PaymentIntentResponse{ID: intent.ID, Status: intent.Status}, nil
}

// syncMirror updates the payment record and, when the payment funds a
// contest, the contest's payment state.
func (s *PaymentService) syncMirror(intent *payments.PaymentIntent, contestPaymentStatus, contestStatus string) {
	record, err := s.paymentRepo.FindByIntentID(intent.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrPaymentRecordNotFound) {
			logger.Error("payment mirror lookup failed after gateway call",
				"payment_intent_id", intent.ID, "error", err)
			return
		}
		record = &models.PaymentRecord{
			PaymentIntentID: intent.ID,
			Amount:          intent.Amount,
			Currency:        intent.Currency,
		}
	}

	record.Status = intent.Status
	if err := s.paymentRepo.Upsert(record); err != nil {
		logger.Error("payment mirror update failed after gateway call",
			"payment_intent_id", intent.ID, "error", err)
		return
	}

	if record.TargetType == models.TargetTypeContest && record.TargetID != "" {
		contest, err := s.targetRepo.FindContestByID(record.TargetID)
		if err != nil {
			logger.Error("contest lookup failed during payment sync",
				"contest_id", record.TargetID, "error", err)
			return
		}
		contest.PaymentStatus = contestPaymentStatus
		contest.Status = contestStatus
		if err := s.targetRepo.UpdateContest(contest); err != nil {
			logger.Error("contest update failed during payment sync",
				"contest_id", contest.ID, "error", err)
		}
	}
}

// CreateCheckoutSession builds a hosted checkout page for funding a target.
func (s *PaymentService) CreateCheckoutSession(userID string, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	session, err := s.gateway.CreateCheckoutSession(payments.CheckoutParams{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ProductName: req.ProductName,
		SuccessURL:  s.successURL,
		CancelURL:   s.cancelURL,
		Metadata: map[string]string{
			"user_id":     userID,
			"target_id":   req.TargetID,
			"target_type": req.TargetType,
		},
	})
	if err != nil {
		return nil, apperrors.NewUpstreamError("payment", "failed to create checkout session", err)
	}

	return &dto.CheckoutSessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

// ReleasePayout hands escrowed funds to the creator. Used by the payout
// worker, which owns retry and backoff.
func (s *PaymentService) ReleasePayout(paymentIntentID string) error {
	if err := s.gateway.ReleasePayout(paymentIntentID); err != nil {
		return err
	}

	if err := s.paymentRepo.UpdateStatus(paymentIntentID, "released"); err != nil &&
		!errors.Is(err, repositories.ErrPaymentRecordNotFound) {
		logger.Error("payment mirror update failed after payout release",
			"payment_intent_id", paymentIntentID, "error", err)
	}
	return nil
}
