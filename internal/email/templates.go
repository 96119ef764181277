package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Built-in template names.
const (
	TemplateVideoDelivered      = "video_delivered"
	TemplateApplicationApproved = "application_approved"
	TemplateApplicationRejected = "application_rejected"
)

// TemplateManager is an in-memory TemplateRenderer preloaded with the
// platform's notification templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Built-ins cannot fail to parse; they are compile-time constants below.
	_ = tm.AddTemplate(TemplateVideoDelivered, videoDeliveredHTML)
	_ = tm.AddTemplate(TemplateApplicationApproved, applicationApprovedHTML)
	_ = tm.AddTemplate(TemplateApplicationRejected, applicationRejectedHTML)
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

const videoDeliveredHTML = `<html><body>
<h2>Your video is ready! 🎬</h2>
<p>{{.CreatorName}} has finished your personalized video.</p>
<p><a href="{{.VideoURL}}">Watch it here</a></p>
<p>Order reference: {{.RequestID}}</p>
</body></html>`

const applicationApprovedHTML = `<html><body>
<h2>Welcome to VLINKY!</h2>
<p>Hi {{.DisplayName}}, your creator application has been approved.
Your profile is now live and fans can send you requests.</p>
</body></html>`

const applicationRejectedHTML = `<html><body>
<h2>About your VLINKY application</h2>
<p>Hi {{.DisplayName}}, unfortunately we can't approve your creator
application at this time.</p>
</body></html>`
