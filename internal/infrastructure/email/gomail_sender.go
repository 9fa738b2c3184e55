// Package email envía el aviso de cierre al cliente vía SMTP.
package email

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tapiceria-pro/internal/application/workshop"
	"github.com/tu-usuario/tapiceria-pro/pkg/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"
)

// GomailSender implementa workshop.EmailSender sobre gomail/SMTP.
// Dial verifica la autorización (login SMTP) antes de enviar: si las
// credenciales fallan no se construye ni intenta el mensaje.
type GomailSender struct {
	cfg        config.SMTPConfig
	urlResenas string
	printer    *message.Printer
}

// NewGomailSender construye el sender SMTP.
func NewGomailSender(cfg config.SMTPConfig, urlResenas string) *GomailSender {
	return &GomailSender{
		cfg:        cfg,
		urlResenas: urlResenas,
		printer:    message.NewPrinter(language.Spanish),
	}
}

var _ workshop.EmailSender = (*GomailSender)(nil)

// SendCompletionEmail envía el aviso de cierre. Con includeReview se añade
// el párrafo con el enlace de reseña; si hay PDF resumen se adjunta.
func (s *GomailSender) SendCompletionEmail(ctx context.Context, data workshop.CompletionEmailData, recipient string, includeReview bool) error {
	if recipient == "" {
		return fmt.Errorf("email: destinatario vacío")
	}
	if s.cfg.Host == "" {
		return fmt.Errorf("email: SMTP no configurado")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	closer, err := d.Dial()
	if err != nil {
		return fmt.Errorf("email: autorización SMTP: %w", err)
	}
	defer closer.Close()

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("Su orden %s ha sido finalizada", data.BillInvoice))
	m.SetBody("text/html", s.body(data, includeReview))

	if len(data.SummaryPDF) > 0 {
		name := fmt.Sprintf("resumen-%s.pdf", data.BillInvoice)
		m.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data.SummaryPDF)
			return err
		}))
	}

	if err := gomail.Send(closer, m); err != nil {
		return fmt.Errorf("email: envío a %s: %w", recipient, err)
	}
	return nil
}

func (s *GomailSender) body(data workshop.CompletionEmailData, includeReview bool) string {
	html := fmt.Sprintf(`<html><body>
<p>Hola %s,</p>
<p>Le informamos que su orden de tapicería <strong>%s</strong> fue finalizada el %s.</p>
<p>Total del trabajo: <strong>%s</strong></p>`,
		data.CustomerName, data.BillInvoice, data.ClosedAt, s.formatAmount(data.Total))

	if includeReview && s.urlResenas != "" {
		html += fmt.Sprintf(`
<p>¿Quedó conforme con el trabajo? Nos ayudaría mucho una reseña:
<a href="%s">dejar reseña</a>.</p>`, s.urlResenas)
	}

	html += `
<p>Gracias por confiar en nosotros.</p>
</body></html>`
	return html
}

// formatAmount formatea el monto con separadores de miles en español.
func (s *GomailSender) formatAmount(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return s.printer.Sprintf("$%.2f", f)
}
