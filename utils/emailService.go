package utils

import (
	"errors"
	"fmt"

	"learnpath/config"
	"learnpath/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrEmailDisabled is returned when no SendGrid key is configured.
var ErrEmailDisabled = errors.New("email delivery disabled")

// SendEmail delivers one HTML email through SendGrid.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg == nil || cfg.SendgridAPIKey == "" {
		return ErrEmailDisabled
	}

	from := mail.NewEmail("LearnPath", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	resp, err := sendgrid.NewSendClient(cfg.SendgridAPIKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.L().Info("email sent", "to", toEmail, "subject", subject)
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
		<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
			<h2 style="color: #333333; text-align: center;">%s</h2>
			%s
			<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">LearnPath Team</p>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// CertificateEmailBody renders the course completion email.
func CertificateEmailBody(userName, courseName, certificateNumber string) string {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
			<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="color: #2196F3; margin: 0;">%s</h2>
		</div>
	`, userName, courseName, certificateNumber)
	return getEmailTemplate("Certificate of Completion", body)
}

// SendCertificateEmail mails the certificate number in the background.
func SendCertificateEmail(email, userName, courseName, certificateNumber string) {
	if config.AppConfig == nil || !config.AppConfig.CertificateEmail {
		return
	}
	go func() {
		err := SendEmail(email, userName, "Course Completion Certificate - "+courseName, CertificateEmailBody(userName, courseName, certificateNumber))
		if err != nil && !errors.Is(err, ErrEmailDisabled) {
			logger.L().Warn("certificate email failed", "to", email, "error", err)
		}
	}()
}
