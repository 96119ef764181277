package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

func NewSMTPProvider(config *SMTPConfig, renderer TemplateRenderer) *SMTPProvider {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.SSL = config.UseTLS

	return &SMTPProvider{
		config:   config,
		dialer:   dialer,
		renderer: renderer,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendWithTemplate(templateName string, data TemplateData, email *Email) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	email.HTMLBody = htmlBody
	return p.Send(email)
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from address is not configured")
	}
	return nil
}
