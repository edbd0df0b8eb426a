package email

import "context"

// Provider delivers notification mail. The workflow engine calls it
// fire-and-forget from the caller's perspective; delivery failures are
// logged, never surfaced to the validator.
type Provider interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NopProvider drops mail, used when email is disabled in config.
type NopProvider struct{}

func (NopProvider) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
