// Package notifications sends customer mail in response to invoice events.
package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"

	"storefront/internal/services"

	"github.com/streadway/amqp"
	"gopkg.in/gomail.v2"
)

// Sender delivers prepared messages. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ReceiptMailer emails a receipt for every invoice.created event.
type ReceiptMailer struct {
	sender Sender // nil only logs the receipt
	from   string
}

// NewReceiptMailer creates a ReceiptMailer.
func NewReceiptMailer(sender Sender, from string) *ReceiptMailer {
	return &ReceiptMailer{sender: sender, from: from}
}

// NewSMTPSender returns a gomail dialer for the given SMTP server.
func NewSMTPSender(host string, port int, username, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

// HandleDelivery is a consumer callback for pkg/rabbitmq. Messages with other
// routing keys are acknowledged and ignored.
func (m *ReceiptMailer) HandleDelivery(msg amqp.Delivery) error {
	if msg.RoutingKey != services.InvoiceCreatedKey {
		return nil
	}
	var evt services.InvoiceCreatedEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		return fmt.Errorf("failed to decode invoice event: %w", err)
	}
	return m.Send(evt)
}

// Send mails the receipt for evt.
func (m *ReceiptMailer) Send(evt services.InvoiceCreatedEvent) error {
	if evt.CustomerEmail == "" {
		log.Printf("Invoice %s has no customer email. Skipping receipt.", evt.Number)
		return nil
	}
	if m.sender == nil {
		log.Printf("Mail delivery disabled. Receipt for invoice %s to %s: total %s", evt.Number, evt.CustomerEmail, evt.TotalAmount.StringFixed(2))
		return nil
	}
	if err := m.sender.DialAndSend(m.Build(evt)); err != nil {
		return fmt.Errorf("failed to send receipt for invoice %s: %w", evt.Number, err)
	}
	log.Printf("Receipt for invoice %s sent to %s", evt.Number, evt.CustomerEmail)
	return nil
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`
		<h2>Thank you for your purchase</h2>
		<p>Hello {{.CustomerName}},</p>
		<p>Invoice <strong>{{.Number}}</strong> ({{.ItemCount}} item(s), paid by {{.PaymentMethod}})</p>
		<table>
			<tr><td>Sub total</td><td>{{.SubTotal.StringFixed 2}}</td></tr>
			<tr><td>Discount</td><td>{{.FlatDiscount.StringFixed 2}}</td></tr>
			<tr><td>Tax</td><td>{{.TaxAmount.StringFixed 2}}</td></tr>
			<tr><td><strong>Total</strong></td><td><strong>{{.TotalAmount.StringFixed 2}}</strong></td></tr>
		</table>
`))

// Build renders the receipt message. Event values are HTML-escaped.
func (m *ReceiptMailer) Build(evt services.InvoiceCreatedEvent) *gomail.Message {
	var body bytes.Buffer
	if err := receiptTemplate.Execute(&body, evt); err != nil {
		log.Printf("Failed to render receipt for invoice %s: %v", evt.Number, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", evt.CustomerEmail, evt.CustomerName)
	msg.SetHeader("Subject", "Your receipt "+evt.Number)
	msg.SetBody("text/html", body.String())
	return msg
}
