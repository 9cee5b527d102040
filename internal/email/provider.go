package email

// Provider sends transactional email. Implementations must be safe for
// concurrent use.
type Provider interface {
	Send(to, subject, htmlBody string) error
}
