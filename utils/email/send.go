package email

import (
	"errors"

	"gopkg.in/gomail.v2"
)

var ErrDisabled = errors.New("smtp is not configured")

func SendHtml(email string, subject string, htmlContent string) error {
	if !globalConfig.Enabled() {
		return ErrDisabled
	}

	msg := gomail.NewMessage()

	msg.SetAddressHeader("From", globalConfig.SMTP.UserName, globalConfig.SMTP.SenderName)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject)

	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(
		globalConfig.SMTP.Host,
		globalConfig.SMTP.Port,
		globalConfig.SMTP.UserName,
		globalConfig.SMTP.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	return nil
}
