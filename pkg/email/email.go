package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	AlertEmail   string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// LowStockItem is one row of a low-stock alert
type LowStockItem struct {
	Name      string
	Unit      string
	OnHand    float64
	Threshold float64
}

// SendLowStockAlert emails the configured recipient a list of materials
// at or below their minimum threshold. Called after payment settlement
// on a best-effort basis; errors are logged by the caller, never
// surfaced to the paying customer.
func (s *EmailService) SendLowStockAlert(items []LowStockItem) error {
	if s.config.AlertEmail == "" {
		return nil
	}

	htmlContent, err := s.renderLowStockEmail(items)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Low Stock Alert - %d material(s) below threshold", len(items))
	message := s.buildHTMLEmail(s.config.AlertEmail, subject, htmlContent)

	return s.sendEmail(s.config.AlertEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderLowStockEmail renders the low-stock alert email template
func (s *EmailService) renderLowStockEmail(items []LowStockItem) (string, error) {
	tmpl, err := template.New("low_stock").Parse(lowStockTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{
		"Items": items,
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const lowStockTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Low Stock Alert</h2>
	<p>The following materials are at or below their minimum threshold:</p>
	<table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
		<tr style="background: #f4f4f4;">
			<th>Material</th><th>On Hand</th><th>Threshold</th><th>Unit</th>
		</tr>
		{{range .Items}}
		<tr>
			<td>{{.Name}}</td>
			<td>{{.OnHand}}</td>
			<td>{{.Threshold}}</td>
			<td>{{.Unit}}</td>
		</tr>
		{{end}}
	</table>
	<p>Please restock as soon as possible.</p>
</body>
</html>
`
