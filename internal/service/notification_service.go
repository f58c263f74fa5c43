package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/royaldevs/backend/internal/model"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/pkg/mailer"
	"github.com/royaldevs/backend/pkg/relay"
)

// ErrNotifyNotConfigured is returned when no team address or sender is set.
var ErrNotifyNotConfigured = errors.New("notification: not configured")

// NotificationService is the relay itself: it reads a stored contact
// request and emails it to the team.
type NotificationService struct {
	contacts repository.ContactRepository
	sender   mailer.Sender
	from     string
	to       []string
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(contacts repository.ContactRepository, sender mailer.Sender, from string, to []string) *NotificationService {
	return &NotificationService{contacts: contacts, sender: sender, from: from, to: to}
}

var _ relay.Notifier = (*NotificationService)(nil)

// Notify loads the referenced request and sends the team email.
// An unknown id yields repository.ErrNotFound.
func (s *NotificationService) Notify(ctx context.Context, n relay.Notification) error {
	if s.from == "" || len(s.to) == 0 {
		return ErrNotifyNotConfigured
	}
	req, err := s.contacts.FindByID(ctx, n.RequestID)
	if err != nil {
		return err
	}

	html, err := RenderContactEmail(req)
	if err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}
	id, err := s.sender.Send(ctx, mailer.Email{
		From:    s.from,
		To:      s.to,
		Subject: "New Contact Request from " + req.Name,
		HTML:    html,
		ReplyTo: req.Email,
	})
	if err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	slog.Info("contact notification sent", "request_id", req.ID, "message_id", id)
	return nil
}

var contactEmailTmpl = template.Must(template.New("contact").Parse(`<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #d4af37; padding: 20px; border-radius: 12px 12px 0 0;">
    <h1 style="color: #0a1628; margin: 0; font-size: 24px;">New Contact Request</h1>
  </div>
  <div style="background: #f8f9fa; padding: 24px; border-radius: 0 0 12px 12px;">
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 12px 0; font-weight: bold; width: 120px;">Name:</td><td style="padding: 12px 0;">{{.Name}}</td></tr>
      <tr><td style="padding: 12px 0; font-weight: bold;">Email:</td><td style="padding: 12px 0;"><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
      {{- if .Company}}
      <tr><td style="padding: 12px 0; font-weight: bold;">Company:</td><td style="padding: 12px 0;">{{.Company}}</td></tr>
      {{- end}}
      <tr><td style="padding: 12px 0; font-weight: bold;">Project Type:</td><td style="padding: 12px 0;">{{.ProjectType}}</td></tr>
      {{- if .Budget}}
      <tr><td style="padding: 12px 0; font-weight: bold;">Budget:</td><td style="padding: 12px 0;">{{.Budget}}</td></tr>
      {{- end}}
    </table>
    <div style="margin-top: 20px;">
      <h3 style="margin-bottom: 8px;">Message:</h3>
      <div style="background: white; padding: 16px; border-radius: 8px; border-left: 4px solid #d4af37;">
        {{- range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end -}}
      </div>
    </div>
    <div style="margin-top: 24px; text-align: center;">
      <a href="mailto:{{.Email}}?subject=Re: Your inquiry" style="display: inline-block; background: #d4af37; color: #0a1628; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: bold;">Reply to {{.Name}}</a>
    </div>
  </div>
</div>
`))

// RenderContactEmail renders the team email for req. All fields are HTML escaped.
func RenderContactEmail(req *model.ContactRequest) (string, error) {
	data := struct {
		Name         string
		Email        string
		Company      string
		ProjectType  string
		Budget       string
		MessageLines []string
	}{
		Name:         req.Name,
		Email:        req.Email,
		ProjectType:  req.ProjectType,
		MessageLines: strings.Split(req.Message, "\n"),
	}
	if req.Company != nil {
		data.Company = *req.Company
	}
	if req.Budget != nil {
		data.Budget = *req.Budget
	}

	var buf bytes.Buffer
	if err := contactEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
