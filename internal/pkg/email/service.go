// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

// EmailService renders and sends customer emails
type EmailService struct {
	config       *config.Config
	log          logrus.FieldLogger
	templates    map[string]*template.Template
	sendGridHost string
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, log logrus.FieldLogger) *EmailService {
	return &EmailService{
		config:       cfg,
		log:          log,
		sendGridHost: sendGridHost,
		templates: map[string]*template.Template{
			"order_confirmation":  template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
			"order_status_update": template.Must(template.New("order_status_update").Parse(orderStatusUpdateTemplate)),
		},
	}
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch s.config.Email.Provider {
	case ProviderSMTP:
		return s.sendSMTPEmail(email)
	case ProviderSendGrid:
		return s.sendSendGridEmail(ctx, email)
	case ProviderLog:
		s.log.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"type":    email.Type,
		}).Info("Email dispatched to log provider")
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

// SendOrderConfirmationEmail sends the confirmation for a newly placed order
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, order store.Order) error {
	email, err := s.orderConfirmationEmail(order)
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, email)
}

// SendOrderStatusUpdateEmail sends order status update notification
func (s *EmailService) SendOrderStatusUpdateEmail(ctx context.Context, order store.Order) error {
	email, err := s.orderStatusUpdateEmail(order)
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, email)
}

func (s *EmailService) orderConfirmationEmail(order store.Order) (*Email, error) {
	data := OrderConfirmationData{
		EmailTemplateData: GetBaseTemplateData(s.config.App.Name, order.CustomerName, order.CustomerEmail),
		OrderNumber:       order.ID,
		OrderDate:         order.CreatedAt.Format("January 2, 2006"),
		AccountType:       string(order.AccountType),
		Subtotal:          pricing.Format(order.Subtotal),
		Tax:               pricing.Format(order.Tax),
		OrderTotal:        pricing.Format(order.Total),
		TrackingNumber:    order.TrackingNumber,
		ShippingAddress:   order.ShippingAddress,
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, OrderItem{
			Name:     item.Product.Name,
			SKU:      item.Product.SKU,
			Quantity: item.Quantity,
			Price:    pricing.Format(pricing.UnitPrice(item.Product, order.AccountType)),
			Total:    pricing.Format(order.LineTotal(item)),
		})
	}

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return &Email{
		To:          []string{order.CustomerEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", order.ID),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]any{
			"order_number": order.ID,
			"order_total":  data.OrderTotal,
		},
	}, nil
}

func (s *EmailService) orderStatusUpdateEmail(order store.Order) (*Email, error) {
	data := OrderStatusUpdateData{
		EmailTemplateData: GetBaseTemplateData(s.config.App.Name, order.CustomerName, order.CustomerEmail),
		OrderNumber:       order.ID,
		Status:            string(order.Status),
		StatusMessage:     statusMessage(order.Status),
		TrackingNumber:    order.TrackingNumber,
	}

	htmlContent, err := s.renderTemplate("order_status_update", data)
	if err != nil {
		return nil, fmt.Errorf("failed to render order status update template: %w", err)
	}

	return &Email{
		To:          []string{order.CustomerEmail},
		Subject:     fmt.Sprintf("Order Update - %s", order.ID),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderStatusUpdate,
		Data: map[string]any{
			"order_number": order.ID,
			"status":       data.Status,
		},
	}, nil
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data any) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

func statusMessage(status store.OrderStatus) string {
	switch status {
	case store.OrderStatusConfirmed:
		return "Your order has been confirmed and will be prepared shortly."
	case store.OrderStatusProcessing:
		return "Your order is being prepared for shipment."
	case store.OrderStatusShipped:
		return "Your order is on its way."
	case store.OrderStatusDelivered:
		return "Your order has been delivered."
	case store.OrderStatusCancelled:
		return "Your order has been cancelled."
	default:
		return "Your order has been received."
	}
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}} - Order {{.OrderNumber}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">Thank you for your order!</h1>
        <p>Hello {{.UserName}},</p>
        <p>We received order <strong>{{.OrderNumber}}</strong> on {{.OrderDate}}.</p>
        <table style="width: 100%; border-collapse: collapse;">
            {{range .Items}}
            <tr>
                <td style="padding: 6px 0;">{{.Name}} ({{.SKU}}) x {{.Quantity}}</td>
                <td style="padding: 6px 0; text-align: right;">${{.Total}}</td>
            </tr>
            {{end}}
        </table>
        <p>Subtotal: ${{.Subtotal}}<br>Tax: ${{.Tax}}<br><strong>Total: ${{.OrderTotal}}</strong></p>
        {{if eq .AccountType "government"}}<p>Government pricing was applied to this order.</p>{{end}}
        <p>Shipping to: {{.ShippingAddress}}</p>
        {{if .TrackingNumber}}<p>Tracking number: {{.TrackingNumber}}</p>{{end}}
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}</p>
    </div>
</body>
</html>`

const orderStatusUpdateTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}} - Order {{.OrderNumber}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">Order {{.OrderNumber}} is {{.Status}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>{{.StatusMessage}}</p>
        {{if .TrackingNumber}}<p>Tracking number: {{.TrackingNumber}}</p>{{end}}
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}</p>
    </div>
</body>
</html>`
