package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"strconv"
	"time"

	"go-attendance/internal/config"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, msg io.Reader) error

type SMTPSender struct {
	cfg    config.SMTPConfig
	send   sendFunc
	now    func() time.Time
	logger *zap.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, logger ...*zap.Logger) *SMTPSender {
	l := zap.L().Named("notification.smtp")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.smtp")
	}
	send := func(addr string, a sasl.Client, from string, to []string, msg io.Reader) error {
		return smtp.SendMail(addr, a, from, to, msg)
	}
	if cfg.TLS {
		send = func(addr string, a sasl.Client, from string, to []string, msg io.Reader) error {
			return smtp.SendMailTLS(addr, a, from, to, msg)
		}
	}
	return &SMTPSender{cfg: cfg, send: send, now: time.Now, logger: l}
}

// Send is a no-op when SMTP is not configured, so local setups run without
// a mail server.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.cfg.Enabled() {
		s.logger.Warn("smtp not configured, notification dropped",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth sasl.Client
	if s.cfg.User != "" {
		auth = sasl.NewPlainClient("", s.cfg.User, s.cfg.Password)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	raw := buildMessage(s.cfg.From, msg, s.now())
	if err := s.send(addr, auth, s.cfg.From, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg Message, at time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", at.UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.Bytes()
}
