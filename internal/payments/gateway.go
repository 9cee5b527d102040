package payments

// PaymentIntent is the provider-neutral view of a payment intent.
type PaymentIntent struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
}

// CheckoutParams describes a hosted checkout session to create.
type CheckoutParams struct {
	AmountCents int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the created session the client gets redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway abstracts the payment provider so services and workers can be
// tested without network calls.
type Gateway interface {
	CapturePaymentIntent(paymentIntentID string) (*PaymentIntent, error)
	CancelPaymentIntent(paymentIntentID string) (*PaymentIntent, error)
	CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error)
	ReleasePayout(paymentIntentID string) error
}
