package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/helpdeskhq/helpdesk/internal/application/notification/services"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	// FrontendURL is used for ticket links, e.g. "http://localhost:3000".
	FrontendURL string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer sender
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendNotificationEmail(ctx context.Context, msg services.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	link := ""
	if msg.TicketID != nil && s.config.FrontendURL != "" {
		link = fmt.Sprintf("%s/tickets/%d", s.config.FrontendURL, *msg.TicketID)
	}

	greeting := "Hello,"
	if msg.RecipientName != "" {
		greeting = fmt.Sprintf("Hello %s,", msg.RecipientName)
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>%s</p>
			<h2>%s</h2>
			<p>%s</p>
			%s
			<p>You can change which e-mails you receive in your notification preferences.</p>
		</body>
		</html>
	`, html.EscapeString(greeting), html.EscapeString(msg.Title), html.EscapeString(msg.Message), htmlLink(link))

	plainBody := fmt.Sprintf(`
%s

%s

%s
%s
You can change which e-mails you receive in your notification preferences.
	`, greeting, msg.Title, msg.Message, plainLink(link))

	return s.sendEmail(msg.To, msg.Subject, htmlBody, plainBody)
}

func htmlLink(link string) string {
	if link == "" {
		return ""
	}
	escaped := html.EscapeString(link)
	return fmt.Sprintf(`<p><a href="%s">View ticket</a></p>`, escaped)
}

func plainLink(link string) string {
	if link == "" {
		return ""
	}
	return fmt.Sprintf("\nView ticket: %s\n", link)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
