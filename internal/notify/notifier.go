package notify

import (
	"log/slog"
	"strings"
	"text/template"

	"github.com/skillbridge/marketplace/internal/models"
)

var templates = map[string]string{
	"booking_confirmed_seeker":  "Your booking for {{.ServiceTitle}} on {{.BookingDate}} has been confirmed.",
	"booking_confirmed_provider": "A booking for {{.ServiceTitle}} on {{.BookingDate}} has been confirmed.",
	"booking_completed_seeker":  "Your booking for {{.ServiceTitle}} on {{.BookingDate}} has been completed.",
	"booking_completed_provider": "The booking for {{.ServiceTitle}} on {{.BookingDate}} has been completed.",
	"booking_canceled_seeker":   "Your booking for {{.ServiceTitle}} on {{.BookingDate}} was canceled by the {{.CanceledBy}}.",
	"booking_canceled_provider": "The booking for {{.ServiceTitle}} on {{.BookingDate}} was canceled by the {{.CanceledBy}}.",
	"new_review":                "{{.ServiceTitle}} received a new {{.Rating}}-star review.",
	"complaint_resolved":        "Your complaint ({{.ComplaintType}}) has been resolved.{{if .AdminResponse}} Response: {{.AdminResponse}}{{end}}",
}

// Notifier renders a template and delivers it to a user. Delivery is a
// courtesy: a disabled preference, a missing address or a transport failure
// all yield delivered=false without an error.
type Notifier struct {
	mailer Sender
	log    *slog.Logger
}

func NewNotifier(mailer Sender, log *slog.Logger) *Notifier {
	return &Notifier{mailer: mailer, log: log}
}

func (n *Notifier) Send(user *models.User, subject, templateKey string, data map[string]string) bool {
	if user == nil || !user.EmailNotifications || user.Email == "" {
		return false
	}

	body, err := render(templateKey, data)
	if err != nil {
		n.log.Warn("notification template failed", "template", templateKey, "err", err)
		return false
	}

	if err := n.mailer.Send(user.Email, subject, body); err != nil {
		n.log.Warn("notification delivery failed", "to", user.Email, "template", templateKey, "err", err)
		return false
	}
	return true
}

func render(key string, data map[string]string) (string, error) {
	src, ok := templates[key]
	if !ok {
		src = key
	}
	t, err := template.New(key).Parse(src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
