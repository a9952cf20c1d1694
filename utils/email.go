package utils

import (
	"fmt"
	"net/smtp"
)

type emailSettings struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var mailer emailSettings

// InitEmailConfig wires the SMTP transport used for verification emails.
func InitEmailConfig(host, port, username, password, from string) {
	mailer = emailSettings{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendOTPEmail delivers the account verification code.
func SendOTPEmail(to, otp string) error {
	subject := "Seu código de verificação"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Código de verificação</h2>
			<p>Use o código abaixo para confirmar sua conta:</p>
			<h3>%s</h3>
			<p>O código expira em 15 minutos.</p>
			<p>Se você não criou uma conta, ignore este email.</p>
		</body>
		</html>
	`, otp)

	return sendEmail(to, subject, body)
}

func sendEmail(to, subject, body string) error {
	if mailer.host == "" {
		return fmt.Errorf("email configuration not initialized")
	}

	auth := smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n"+
		"\r\n"+
		"%s\r\n", to, mailer.from, subject, body))

	err := smtp.SendMail(
		fmt.Sprintf("%s:%s", mailer.host, mailer.port),
		auth,
		mailer.from,
		[]string{to},
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
