package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/kodalibharatheswar/AnviBoutique/internal/config"
)

// sendTimeout bounds the whole SMTP exchange. A hung mail server must
// not stall a contact submission or leak OTP goroutines.
const sendTimeout = 10 * time.Second

// OTPPurpose selects the subject and wording of a one-time-code mail.
type OTPPurpose string

const (
	PurposeRegistration  OTPPurpose = "REGISTRATION"
	PurposePasswordReset OTPPurpose = "PASSWORD_RESET"
	PurposeNewEmail      OTPPurpose = "NEW_EMAIL_VERIFICATION"
)

// Notifier delivers one-time codes and contact-form messages. Callers of
// SendOTP log and ignore the returned error: a failed delivery must never
// abort the action that triggered it.
type Notifier interface {
	SendOTP(ctx context.Context, to string, purpose OTPPurpose, code string, validityMinutes int) error
	SendContact(ctx context.Context, fromName, fromEmail, message string) error
}

type smtpNotifier struct {
	addr         string
	from         string
	username     string
	password     string
	host         string
	supportEmail string
	timeout      time.Duration
}

func NewSMTPNotifier(cfg config.SMTPConfig) Notifier {
	return &smtpNotifier{
		addr:         cfg.Host + ":" + cfg.Port,
		from:         cfg.From,
		username:     cfg.Username,
		password:     cfg.Password,
		host:         cfg.Host,
		supportEmail: cfg.SupportEmail,
		timeout:      sendTimeout,
	}
}

func (n *smtpNotifier) auth() smtp.Auth {
	if n.username == "" {
		return nil
	}
	return smtp.PlainAuth("", n.username, n.password, n.host)
}

func (n *smtpNotifier) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.from, to, subject, body))

	if err := n.deliver(to, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// deliver speaks the SMTP exchange over a connection whose deadline
// covers the dial and every subsequent read and write.
func (n *smtpNotifier) deliver(to string, msg []byte) error {
	dialer := net.Dialer{Timeout: n.timeout}
	conn, err := dialer.Dial("tcp", n.addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(n.timeout)); err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
			return err
		}
	}
	if auth := n.auth(); auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(n.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (n *smtpNotifier) SendOTP(ctx context.Context, to string, purpose OTPPurpose, code string, validityMinutes int) error {
	var subject, action string
	switch purpose {
	case PurposePasswordReset:
		subject = "Anvi Studio: Password Reset Code (OTP)"
		action = "reset your password"
	case PurposeNewEmail:
		subject = "Anvi Studio: Verify Your New Email Address (OTP)"
		action = "confirm your new email address"
	default:
		subject = "Anvi Studio: Your One-Time Password (OTP) for Registration"
		action = "activate your account"
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your One-Time Password (OTP) to %s is:\n\n"+
			"--- %s ---\n\n"+
			"This OTP expires in %d minutes.\n\n"+
			"If you did not request this, please ignore this email.",
		to, action, code, validityMinutes)

	return n.send(to, subject, body)
}

func (n *smtpNotifier) SendContact(ctx context.Context, fromName, fromEmail, message string) error {
	subject := fmt.Sprintf("Anvi Studio contact form: message from %s", fromName)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", fromName, fromEmail, message)
	return n.send(n.supportEmail, subject, body)
}
