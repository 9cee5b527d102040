package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) CapturePaymentIntent(paymentIntentID string) (*PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Capture(paymentIntentID, &stripe.PaymentIntentCaptureParams{})
	if err != nil {
		return nil, fmt.Errorf("capture payment intent %s: %w", paymentIntentID, err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) CancelPaymentIntent(paymentIntentID string) (*PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Cancel(paymentIntentID, &stripe.PaymentIntentCancelParams{})
	if err != nil {
		return nil, fmt.Errorf("cancel payment intent %s: %w", paymentIntentID, err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
					UnitAmount: stripe.Int64(params.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	session, err := g.sc.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// ReleasePayout moves captured funds to the creator. With Stripe Connect this
// would be a Transfer; here a capture on the held intent serves as release.
func (g *StripeGateway) ReleasePayout(paymentIntentID string) error {
	_, err := g.sc.PaymentIntents.Capture(paymentIntentID, &stripe.PaymentIntentCaptureParams{})
	if err != nil {
		return fmt.Errorf("release payout for intent %s: %w", paymentIntentID, err)
	}
	return nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:       pi.ID,
		Status:   string(pi.Status),
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
	}
}
