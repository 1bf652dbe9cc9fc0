package libs

import (
	"fmt"
	"html"
	"strings"

	"clothing-store/models"
)

// MailTemplates renders the transactional mails. Every user supplied value is
// escaped before it is interpolated.
type MailTemplates struct {
	StoreName   string
	FrontendURL string
}

func (t MailTemplates) layout(title, content string) string {
	store := html.EscapeString(t.StoreName)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #111; text-align: center; margin-bottom: 24px; }
        .button { display: inline-block; background: #111; color: #fff; padding: 12px 24px; border-radius: 6px; text-decoration: none; }
        table { width: 100%%; border-collapse: collapse; }
        td, th { padding: 8px; border-bottom: 1px solid #eee; text-align: left; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">%s</div>
        <h2 style="color: #333;">%s</h2>
        %s
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
            <p>&copy; %s</p>
        </div>
    </div>
</body>
</html>`, store, html.EscapeString(title), content, store)
}

func (t MailTemplates) Welcome(name string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s", t.StoreName)
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your account is ready. Happy shopping!</p>
<p><a class="button" href="%s">Start shopping</a></p>`, html.EscapeString(name), html.EscapeString(t.FrontendURL))
	return subject, t.layout(subject, body)
}

func (t MailTemplates) LoginNotice(name, ip string) (string, string) {
	subject := "New sign-in to your account"
	body := fmt.Sprintf(`<p>Hi %s,</p><p>We noticed a new sign-in to your account from IP %s.</p>
<p>If this wasn't you, reset your password right away.</p>`, html.EscapeString(name), html.EscapeString(ip))
	return subject, t.layout(subject, body)
}

func (t MailTemplates) PasswordReset(name, rawToken string) (string, string) {
	link := fmt.Sprintf("%s/reset-password/%s", t.FrontendURL, rawToken)
	subject := "Reset your password"
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Use the link below to choose a new password. It expires in 30 minutes.</p>
<p><a class="button" href="%s">Reset password</a></p>
<p>If you did not request a password reset, you can ignore this email.</p>`, html.EscapeString(name), html.EscapeString(link))
	return subject, t.layout(subject, body)
}

func (t MailTemplates) PasswordChanged(name string) (string, string) {
	subject := "Your password was changed"
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your password was changed successfully. If you did not do this, contact support immediately.</p>`,
		html.EscapeString(name))
	return subject, t.layout(subject, body)
}

func (t MailTemplates) OrderConfirmation(order *models.Order) (string, string) {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%.2f</td></tr>",
			html.EscapeString(item.Name), html.EscapeString(item.Size), item.Qty, item.Price)
	}

	subject := fmt.Sprintf("Order confirmed: %s", order.RazorpayOrderID)
	addr := order.ShippingAddress
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Thanks for your order. Payment method: %s. Status: %s.</p>
<table><tr><th>Item</th><th>Size</th><th>Qty</th><th>Price</th></tr>%s</table>
<p><strong>Total: %.2f</strong></p>
<p>Shipping to: %s, %s, %s %s</p>`,
		html.EscapeString(addr.FullName), html.EscapeString(order.PaymentMethod), order.Status, rows.String(),
		order.TotalAmount, html.EscapeString(addr.Address), html.EscapeString(addr.City),
		html.EscapeString(addr.State), html.EscapeString(addr.Pincode))
	return subject, t.layout(subject, body)
}
