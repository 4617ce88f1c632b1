package email

import (
	"fmt"
)

// statusLines maps an order status to the customer-facing update line.
var statusLines = map[string]string{
	"confirmed":    "Your order has been confirmed and is in our baking queue.",
	"in-progress":  "Your order is being prepared by our bakers.",
	"ready-pickup": "Your order is ready for collection.",
	"out-delivery": "Your order is out for delivery.",
	"delivered":    "Your order has been delivered. We hope you enjoy it!",
	"completed":    "Your order is complete. Thank you for choosing us!",
	"cancelled":    "Your order has been cancelled. Get in touch if this is unexpected.",
}

// StatusUpdate builds the notification sent when an order's status changes.
func StatusUpdate(orderNumber, customerName, status string) (subject, html string) {
	line, ok := statusLines[status]
	if !ok {
		line = fmt.Sprintf("Your order status has been updated to: %s.", status)
	}

	subject = fmt.Sprintf("Order %s update", orderNumber)
	html = fmt.Sprintf(
		`<p>Hi %s,</p><p>%s</p><p>Order reference: <strong>%s</strong></p><p>&mdash; The Oven &amp; Crumb team</p>`,
		customerName, line, orderNumber)

	return subject, html
}
