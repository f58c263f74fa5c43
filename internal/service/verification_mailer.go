package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/pkg/mailer"
)

// VerificationSender delivers the email confirmation link for a new account.
type VerificationSender interface {
	SendVerification(ctx context.Context, user *model.User, token string) error
}

// VerificationMailer emails confirmation links through a mailer.Sender.
type VerificationMailer struct {
	sender  mailer.Sender
	from    string
	linkURL string
}

// NewVerificationMailer creates a VerificationMailer. backendURL is the
// public root of the API; links point at /api/auth/verify on it.
func NewVerificationMailer(sender mailer.Sender, from, backendURL string) *VerificationMailer {
	return &VerificationMailer{sender: sender, from: from, linkURL: backendURL + "/api/auth/verify"}
}

var _ VerificationSender = (*VerificationMailer)(nil)

var verificationEmailTmpl = template.Must(template.New("verify").Parse(`<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #0a1628; font-size: 22px;">Confirm your email</h1>
  <p>Hi {{.Name}}, thanks for signing up. Confirm your address to finish creating your account.</p>
  <p style="margin: 24px 0;"><a href="{{.Link}}" style="display: inline-block; background: #d4af37; color: #0a1628; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: bold;">Confirm email</a></p>
  <p style="color: #666; font-size: 13px;">The link expires in 24 hours. If you did not sign up, ignore this email.</p>
</div>
`))

// SendVerification renders and sends the confirmation email.
func (m *VerificationMailer) SendVerification(ctx context.Context, user *model.User, token string) error {
	link := m.linkURL + "?token=" + url.QueryEscape(token)

	var buf bytes.Buffer
	if err := verificationEmailTmpl.Execute(&buf, struct{ Name, Link string }{user.Name, link}); err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}
	id, err := m.sender.Send(ctx, mailer.Email{
		From:    m.from,
		To:      []string{user.Email},
		Subject: "Confirm your email",
		HTML:    buf.String(),
	})
	if err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	slog.Info("verification email sent", "user_id", user.ID, "message_id", id)
	return nil
}
