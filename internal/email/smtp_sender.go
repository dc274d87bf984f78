package email

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"

	"tenant-auth/internal/domain"
)

// SMTPSender envia correos via SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	useTLS   bool
	baseURL  string
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, useTLS bool, baseURL string) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		useTLS:   useTLS,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *SMTPSender) SendPasswordRecover(_ context.Context, user domain.User, token string) error {
	subject := "Password recover"
	body := fmt.Sprintf(
		"Hello %s,\n\nUse the link below to reset your password:\n%s\n\nIf you did not request this, ignore this message.\n",
		displayName(user),
		s.tokenURL("/passwordreset", token),
	)
	return s.send(user.Email, subject, body)
}

func (s *SMTPSender) SendActivation(_ context.Context, user domain.User, token string) error {
	subject := "Account activation"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account is not active yet. Follow the link to activate it and set a password:\n%s\n",
		displayName(user),
		s.tokenURL("/activate", token),
	)
	return s.send(user.Email, subject, body)
}

// tokenURL arma el link con el token serializado en base64 en el query
// string, el formato que espera el frontend de reset.
func (s *SMTPSender) tokenURL(path, token string) string {
	payload, _ := json.Marshal(map[string]string{"token": token})
	query := base64.StdEncoding.EncodeToString(payload)
	return s.baseURL + path + "?" + query
}

func (s *SMTPSender) send(toEmail, subject, body string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}

	msg := buildMessage(s.from, s.fromName, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if s.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{
			ServerName: s.host,
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if auth != nil {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
		if err := client.Mail(s.from); err != nil {
			return err
		}
		if err := client.Rcpt(toEmail); err != nil {
			return err
		}
		writer, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := writer.Write([]byte(msg)); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	}

	return smtp.SendMail(addr, auth, s.from, []string{toEmail}, []byte(msg))
}

func displayName(user domain.User) string {
	if strings.TrimSpace(user.Name) != "" {
		return user.Name
	}
	return user.Username
}

func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
