package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"nagacare/internal/domain"
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
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, useTLS bool) (*SMTPSender, error) {
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
	}, nil
}

func (s *SMTPSender) SendAppointmentConfirmation(ctx context.Context, toEmail string, appt domain.Appointment, facility domain.Facility) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}
	subject, body := appointmentConfirmation(appt, facility)
	return s.send(ctx, toEmail, subject, body)
}

// appointmentConfirmation arma asunto y cuerpo del aviso; la hora se muestra en Asia/Manila.
func appointmentConfirmation(appt domain.Appointment, facility domain.Facility) (string, string) {
	when := appt.ScheduledAt.In(manila).Format("Monday, January 2, 2006 at 3:04 PM")
	subject := "NagaCare appointment request: " + facility.Name

	var b strings.Builder
	b.WriteString("Your appointment request was received.\n\n")
	fmt.Fprintf(&b, "Facility: %s\n", facility.Name)
	if facility.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", facility.Address)
	}
	if appt.Service != "" {
		fmt.Fprintf(&b, "Service: %s\n", appt.Service)
	}
	fmt.Fprintf(&b, "Schedule: %s\n", when)
	fmt.Fprintf(&b, "Reference: %s\n\n", appt.ID)
	b.WriteString("The facility will confirm your schedule. Bring a valid ID and your PhilHealth number if you have one.\n")
	return subject, b.String()
}

var manila = time.FixedZone("PHT", 8*60*60)

const smtpTimeout = 10 * time.Second

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, body string) error {
	msg := buildMessage(s.from, s.fromName, toEmail, subject, body)
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))

	ctx, cancel := context.WithTimeout(ctx, smtpTimeout)
	defer cancel()

	var (
		conn net.Conn
		err  error
	)
	if s.useTLS {
		dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.host}}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if !s.useTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}
	if s.username != "" {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
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
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// buildMessage arma headers RFC 5322; asunto y nombre van en Q-encoding para admitir acentos.
func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if name := strings.TrimSpace(fromName); name != "" {
		fromHeader = (&mail.Address{Name: name, Address: from}).String()
	}

	headers := []string{
		"From: " + fromHeader,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
