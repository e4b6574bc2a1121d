package alert

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/riskbases/riskbases/pkg/config"
)

// SMTPAlerter delivers notifications through a plain SMTP relay.
type SMTPAlerter struct {
	dialer *gomail.Dialer
	sender string
}

func newSMTPAlerter() alertHandlerInterface {
	smtpConfig := config.GetConfig().SMTP
	dialer := gomail.NewDialer(smtpConfig.Host, smtpConfig.Port, smtpConfig.User, smtpConfig.Password)
	return &SMTPAlerter{
		dialer: dialer,
		sender: smtpConfig.Sender,
	}
}

func (sa *SMTPAlerter) SendMessageTo(_ context.Context, receiver, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", sa.sender)
	msg.SetHeader("To", receiver)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return sa.dialer.DialAndSend(msg)
}
