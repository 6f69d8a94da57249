// Package notify sends operational mail such as low stock alerts.
package notify

import (
	"fmt"
	"strings"

	"github.com/granjalabs/granjapos/config"
	"github.com/granjalabs/granjapos/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether outbound mail is configured at all.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.To != ""
}

// SendLowStockAlert mails the list of products at or below their minimum
// stock. A no-op when SMTP is not configured.
func (m *Mailer) SendLowStockAlert(products []domain.Product) error {
	if !m.Enabled() || len(products) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString("Productos con stock bajo:\n\n")
	for _, p := range products {
		body.WriteString(fmt.Sprintf("- %s (%s): stock %.2f %s, minimo %.2f\n",
			p.Name, p.Category, p.Stock, p.Unit, p.MinStock))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", fmt.Sprintf("Alerta de stock bajo (%d productos)", len(products)))
	msg.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Error("failed to send low stock alert", zap.Error(err))
		return err
	}
	zap.L().Info("low stock alert sent", zap.Int("products", len(products)))
	return nil
}
