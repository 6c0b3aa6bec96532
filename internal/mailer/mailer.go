package mailer

import (
	"reachiq/internal/config"
	"reachiq/internal/models"

	"gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender opens delivery batches against a user-owned SMTP config. Dial
// surfaces connection and auth problems before any message is attempted.
type Sender interface {
	Dial(cfg *models.SmtpConfig) (BatchSender, error)
}

// BatchSender sends messages over one open SMTP connection. Callers must
// Close it when the batch is done.
type BatchSender interface {
	Send(msg *Message) error
	Close() error
}

// SmtpSender is the gomail-backed Sender used in production.
type SmtpSender struct{}

func NewSmtpSender() *SmtpSender {
	return &SmtpSender{}
}

func (s *SmtpSender) Dial(cfg *models.SmtpConfig) (BatchSender, error) {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Secure

	sc, err := d.Dial()
	if err != nil {
		return nil, err
	}
	return &smtpBatch{cfg: cfg, conn: sc}, nil
}

type smtpBatch struct {
	cfg  *models.SmtpConfig
	conn gomail.SendCloser
}

func (b *smtpBatch) Send(msg *Message) error {
	m := gomail.NewMessage()
	from := msg.From
	if from == "" {
		from = b.cfg.FromEmail
	}
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	return gomail.Send(b.conn, m)
}

func (b *smtpBatch) Close() error {
	return b.conn.Close()
}

// SystemMailer sends transactional mail (OTP codes, notices) through the
// application's own SMTP account from the config file.
type SystemMailer struct {
	cfg *config.Config
}

func NewSystemMailer(cfg *config.Config) *SystemMailer {
	return &SystemMailer{cfg: cfg}
}

func (e *SystemMailer) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(e.cfg.Email.FromEmail, e.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		e.cfg.Email.SMTPHost,
		e.cfg.Email.SMTPPort,
		e.cfg.Email.SMTPUsername,
		e.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
