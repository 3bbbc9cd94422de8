package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Config holds SMTP settings. An empty Host selects the log-only
// mailer, which is what local development runs with.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	// BaseURL is the frontend origin embedded in links.
	BaseURL string
}

// SMTPMailer sends transactional mail over plain SMTP.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendVerification mails the email confirmation link.
func (m *SMTPMailer) SendVerification(ctx context.Context, email, name, token string) error {
	subject := "Confirme seu email"
	body := fmt.Sprintf(
		"Olá %s,\n\nConfirme seu email para ativar sua conta:\n\n%s/verify-email?token=%s\n\nO link vale por 24 horas.\n",
		name, m.cfg.BaseURL, token,
	)

	return m.send(email, subject, body)
}

// SendPasswordReset mails the password recovery link.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, name, token string) error {
	subject := "Redefinição de senha"
	body := fmt.Sprintf(
		"Olá %s,\n\nPara redefinir sua senha, acesse:\n\n%s/reset-password?token=%s\n\nO link vale por 1 hora. Se você não pediu isso, ignore este email.\n",
		name, m.cfg.BaseURL, token,
	)

	return m.send(email, subject, body)
}

// SendAutoDebitChanged notifies an auto-debit toggle.
func (m *SMTPMailer) SendAutoDebitChanged(ctx context.Context, email, name string, active bool) error {
	subject := "Débito automático atualizado"
	state := "desativado"
	if active {
		state = "ativado"
	}
	body := fmt.Sprintf("Olá %s,\n\nO débito automático da sua fatura foi %s.\n", name, state)

	return m.send(email, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

// LogMailer logs mail instead of sending it.
type LogMailer struct{}

// NewLogMailer creates a new LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, name, token string) error {
	log.Info().Str("email", email).Str("token", token).Msg("verification mail (log only)")
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, name, token string) error {
	log.Info().Str("email", email).Str("token", token).Msg("password reset mail (log only)")
	return nil
}

func (m *LogMailer) SendAutoDebitChanged(ctx context.Context, email, name string, active bool) error {
	log.Info().Str("email", email).Bool("active", active).Msg("auto-debit mail (log only)")
	return nil
}
