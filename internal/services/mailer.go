package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/wneessen/go-mail"

	"mars_shop/internal/config"
	"mars_shop/internal/i18n"
	"mars_shop/internal/models"
	"mars_shop/internal/pricing"
)

var orderTemplate = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Nouvelle commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Nouvelle commande {{.ID}}</h2>
		<p><strong>{{.CustomerName}}</strong> · {{.CustomerPhone}}<br>{{.CustomerAddress}}</p>
		{{if .Notes}}<p><em>{{.Notes}}</em></p>{{end}}
		<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>
			{{range .Lines}}
				<tr>
					<td style="padding: 10px;">{{.Name}}</td>
					<td style="padding: 10px;">{{.Quantity}}</td>
					<td style="padding: 10px;">{{.Price}}</td>
					<td style="padding: 10px;">{{.Total}}</td>
				</tr>
			{{end}}
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">{{.Total}}</td>
				</tr>
			</tfoot>
		</table>
		<p><a href="{{.TrackingURL}}">Voir la commande</a></p>
	</div>
</body>
</html>`))

type mailLine struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type mailOrder struct {
	models.Order
	Lines       []mailLine
	Total       string
	TrackingURL string
}

// RenderOrderHTML produit le corps HTML de l'e-mail envoyé à la boutique.
func RenderOrderHTML(order models.Order, trackingURL string) (string, error) {
	lang := i18n.French
	data := mailOrder{Order: order, Total: pricing.FormatPrice(order.Total, lang), TrackingURL: trackingURL}
	for _, item := range order.Items {
		name := item.Product.Name
		if name == "" {
			name = item.ProductID
		}
		data.Lines = append(data.Lines, mailLine{
			Name:     name,
			Quantity: item.Quantity,
			Price:    pricing.FormatPrice(item.Price, lang),
			Total:    pricing.FormatPrice(item.LineTotal(), lang),
		})
	}

	var buf bytes.Buffer
	if err := orderTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendu e-mail commande: %w", err)
	}
	return buf.String(), nil
}

// Mailer envoie les notifications de commande par SMTP.
type Mailer struct {
	cfg     config.SMTP
	baseURL string
}

func NewMailer(cfg config.SMTP, baseURL string) *Mailer {
	return &Mailer{cfg: cfg, baseURL: baseURL}
}

func (m *Mailer) OrderPlaced(ctx context.Context, order models.Order) error {
	html, err := RenderOrderHTML(order, m.baseURL+"/orders/"+order.ID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("🛒 Nouvelle commande %s (%s)", order.ID, pricing.FormatPrice(order.Total, i18n.French))
	return m.send(ctx, m.cfg.NotifyTo, subject, html)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSendWithContext(ctx, msg)
}
