package services

import (
	"fmt"
	"time"

	"society-intake-api/config"
	"society-intake-api/models"
	"society-intake-api/utils"

	"github.com/sirupsen/logrus"
)

var statusColors = map[string]string{
	models.StatusPending:    "#ffc107",
	models.StatusInProgress: "#17a2b8",
	models.StatusApproved:   "#28a745",
	models.StatusRejected:   "#dc3545",
}

// StatusColor returns the badge color for a status.
func StatusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "#6c757d"
}

// EmailService formats and delivers applicant notifications. Delivery is
// selected by MAIL_MODE: the default "log" mode records the message in the
// log stream instead of transmitting, "smtp" hands it to the mail dialer.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

// SendApplicationConfirmation sends the submission confirmation with the
// application letter attached.
func (s *EmailService) SendApplicationConfirmation(app *models.Application, pdfBytes []byte) error {
	subject := "Application Confirmation - " + app.ReferenceNumber
	body := s.ConfirmationBody(app)

	var attachments []config.Attachment
	if len(pdfBytes) > 0 {
		attachments = append(attachments, config.Attachment{
			Filename: fmt.Sprintf("Application_%s.pdf", app.ReferenceNumber),
			Content:  pdfBytes,
		})
	}

	return s.deliver(app.Email, subject, body, attachments)
}

// SendStatusUpdate notifies the applicant of a status change.
func (s *EmailService) SendStatusUpdate(app *models.Application, oldStatus, newStatus string) error {
	subject := "Application Status Update - " + app.ReferenceNumber
	body := s.StatusUpdateBody(app, oldStatus, newStatus)
	return s.deliver(app.Email, subject, body, nil)
}

func (s *EmailService) deliver(to, subject, body string, attachments []config.Attachment) error {
	if config.MailMode() == "smtp" {
		return config.SendMail([]string{to}, subject, body, attachments...)
	}

	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"from":    config.MailFrom(),
		"time":    time.Now().Format("2006-01-02 15:04:05"),
	}).Info("email sent (log mode)")
	return nil
}

func (s *EmailService) categoryName(app *models.Application) string {
	if app.Category.Name != "" {
		return app.Category.Name
	}
	return app.CategoryName
}

// ConfirmationBody builds the HTML body of the submission confirmation.
func (s *EmailService) ConfirmationBody(app *models.Application) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #2c5530; color: white; padding: 20px; text-align: center; }
.content { padding: 20px; background: #f9f9f9; }
.info-table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
.info-table th, .info-table td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
.info-table th { background: #f2f2f2; font-weight: bold; }
.footer { background: #2c5530; color: white; padding: 15px; text-align: center; font-size: 12px; }
.status { background: #28a745; color: white; padding: 5px 10px; border-radius: 5px; display: inline-block; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>State Bangladesh Society</h1>
<p>Application Confirmation</p>
</div>
<div class="content">
<h2>Dear %s,</h2>
<p>Thank you for submitting your application to State Bangladesh Society. We have successfully received your application and it is currently being processed.</p>
<h3>Application Details:</h3>
<table class="info-table">
<tr><th>Reference Number</th><td>%s</td></tr>
<tr><th>Category</th><td>%s</td></tr>
<tr><th>Submission Date</th><td>%s</td></tr>
<tr><th>Current Status</th><td><span class="status">%s</span></td></tr>
</table>
<h3>What's Next?</h3>
<ul>
<li>Your application will be reviewed by our team</li>
<li>You will receive updates via email as your application progresses</li>
<li>You can track your application status using your reference number: <strong>%s</strong></li>
<li>If approved, you will be contacted for further steps</li>
</ul>
<h3>Important Information:</h3>
<ul>
<li>Please save your reference number: <strong>%s</strong></li>
<li>You can track your application status on our website</li>
<li>If you have any questions, please contact us with your reference number</li>
<li>The attached PDF contains your complete application details</li>
</ul>
<p>Thank you for choosing State Bangladesh Society. We are committed to empowering communities through development projects and social initiatives.</p>
</div>
<div class="footer">
<p>&copy; 2024 State Bangladesh Society. All rights reserved.</p>
<p>This is an automated email. Please do not reply to this email address.</p>
</div>
</div>
</body>
</html>`,
		app.FullName,
		app.ReferenceNumber,
		s.categoryName(app),
		utils.FormatDateTime(app.CreatedAt),
		app.Status,
		app.ReferenceNumber,
		app.ReferenceNumber,
	)
}

// StatusUpdateBody builds the HTML body of the status change notice.
func (s *EmailService) StatusUpdateBody(app *models.Application, oldStatus, newStatus string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #2c5530; color: white; padding: 20px; text-align: center; }
.content { padding: 20px; background: #f9f9f9; }
.status { background: %s; color: white; padding: 8px 15px; border-radius: 5px; display: inline-block; font-weight: bold; }
.info-table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
.info-table th, .info-table td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
.info-table th { background: #f2f2f2; font-weight: bold; }
.footer { background: #2c5530; color: white; padding: 15px; text-align: center; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>State Bangladesh Society</h1>
<p>Application Status Update</p>
</div>
<div class="content">
<h2>Dear %s,</h2>
<p>We are writing to inform you that the status of your application has been updated.</p>
<table class="info-table">
<tr><th>Reference Number</th><td>%s</td></tr>
<tr><th>Category</th><td>%s</td></tr>
<tr><th>Previous Status</th><td>%s</td></tr>
<tr><th>Current Status</th><td><span class="status">%s</span></td></tr>
<tr><th>Updated On</th><td>%s</td></tr>
</table>
<p>You can continue to track your application status on our website using your reference number.</p>
<p>If you have any questions about this update, please contact us with your reference number.</p>
<p>Thank you for your patience.</p>
</div>
<div class="footer">
<p>&copy; 2024 State Bangladesh Society. All rights reserved.</p>
<p>This is an automated email. Please do not reply to this email address.</p>
</div>
</div>
</body>
</html>`,
		StatusColor(newStatus),
		app.FullName,
		app.ReferenceNumber,
		s.categoryName(app),
		oldStatus,
		newStatus,
		utils.FormatDateTime(time.Now()),
	)
}
