package email

// Provider sends outbound notification email. All sends on the request path
// are best-effort: a failed send never fails the triggering operation.
type Provider interface {
	// Send delivers a plain message
	Send(email *Email) error

	// SendWithTemplate renders a named template and delivers it
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// Validate checks the provider configuration
	Validate() error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
