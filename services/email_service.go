package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"fastcard/config"

	"gopkg.in/gomail.v2"
)

// mailDialer отправляет готовые письма
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer mailDialer
	from   string
	apiURL string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		apiURL: cfg.Server.APIURL,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %w", err)
	}

	return nil
}

// SendActivationMail отправляет письмо со ссылкой активации аккаунта
func (s *EmailService) SendActivationMail(ctx context.Context, to, link string) error {
	var body bytes.Buffer
	if err := activationTemplate.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return fmt.Errorf("ошибка подготовки письма активации: %w", err)
	}

	subject := "Account activation on " + s.apiURL
	return s.SendEmail(ctx, to, subject, body.String())
}

var activationTemplate = template.Must(template.New("activation").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>FastCard Account Activation</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333333; margin: 0; padding: 0; line-height: 1.6; }
        .container { width: 80%; max-width: 600px; margin: 30px auto; background-color: #ffffff; border-radius: 8px; padding: 20px; }
        h1 { color: #000000; text-align: center; }
        .activation-button { display: block; width: fit-content; margin: 20px auto; padding: 10px 20px; background-color: #000000; color: #ffffff; text-decoration: none; border-radius: 4px; font-weight: bold; }
        .signature { margin-top: 40px; font-style: italic; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Activate Your FastCard Account</h1>
        <p>Hello,</p>
        <p>Thank you for joining FastCard!</p>
        <p>Please activate your FastCard account by clicking the button below:</p>
        <a href="{{.Link}}" class="activation-button">Activate Account</a>
        <p>If the button doesn't work, you can also activate your account by following this link:</p>
        <p><a href="{{.Link}}">{{.Link}}</a></p>
        <p class="signature"><br>The FastCard Team</p>
    </div>
</body>
</html>
`))
