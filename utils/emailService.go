package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. SendGrid is used when an API key is
// configured; otherwise it falls back to plain SMTP. Callers treat email
// as best-effort and must not fail their request on an error here.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridApiKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail("SkillForge", config.AppConfig.EmailSender)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), "", htmlBody)
		client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via SendGrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid error: %d", resp.StatusCode)
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: SkillForge <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all transactional emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.content h2 { color: #1A2B4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF50; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SKILLFORGE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 SkillForge. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to SkillForge! Your account is ready.</p>
		<p>Browse the catalog, enroll in a course and start learning today.</p>
	`, name)

	if err := SendEmail([]string{email}, "Welcome to SkillForge", getEmailTemplate("Welcome aboard!", body)); err != nil {
		log.Printf("Error sending welcome email to %s: %v", email, err)
	}
}

// SendEnrollmentEmail confirms a course enrollment
func SendEnrollmentEmail(email, userName, courseName string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now access the course content. Complete all required lessons to earn your certificate.</p>
	`, userName, courseName)

	if err := SendEmail([]string{email}, "Course Enrollment Confirmation", getEmailTemplate("Enrollment Successful!", body)); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", email, err)
	}
}

// SendCertificateEmail notifies a learner their certificate was approved
func SendCertificateEmail(email, userName, courseName, certificateNumber string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<p>Your certificate has been approved. Certificate number:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can use this number for verification purposes.</p>
	`, userName, courseName, certificateNumber)

	if err := SendEmail([]string{email}, "Course Completion Certificate", getEmailTemplate("Certificate of Completion", body)); err != nil {
		log.Printf("Error sending certificate email to %s: %v", email, err)
	}
}
