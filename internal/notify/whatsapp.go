// Package notify holds the outbound order notifications: the WhatsApp
// deep link handed back to the customer after a PIX payment, and the Kafka
// event stream consumed by the back office.
package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
)

// WhatsApp builds wa.me deep links with a pre-filled order summary.
// Delivery is fire-and-forget: the storefront only opens the link, it never
// learns whether the message was sent.
type WhatsApp struct {
	number string
}

func NewWhatsApp(number string) *WhatsApp {
	return &WhatsApp{number: number}
}

// PixPaidLink composes the "customer says they paid" notification for an
// order and returns the deep link that opens the chat with it pre-filled.
// pixTotal is the fixed binding total, not the cart-computed one.
func (w *WhatsApp) PixPaidLink(o *order.Order, pixTotal float64, at time.Time) string {
	var items strings.Builder
	for i, item := range o.Items {
		if i > 0 {
			items.WriteString("\n")
		}
		fmt.Fprintf(&items, "• %s x%d", item.Name, item.Quantity)
	}

	complement := ""
	if o.AddressComplement != nil && *o.AddressComplement != "" {
		complement = " - " + *o.AddressComplement
	}

	message := fmt.Sprintf(`🛒 *NOVA COMPRA VIA PIX!*

👤 *Cliente:* %s
📱 *Telefone:* %s
📧 *Email:* %s
📝 *CPF:* %s

📍 *Endereço:*
%s, %s%s
%s - %s/%s
CEP: %s

📦 *Itens:*
%s

💵 *Total PIX:* R$ %s

💳 *Pagamento:* PIX

📅 *Data:* %s`,
		o.CustomerName,
		o.CustomerPhone,
		o.CustomerEmail,
		o.CustomerCPF,
		o.AddressStreet,
		o.AddressNumber,
		complement,
		o.AddressNeighborhood,
		o.AddressCity,
		o.AddressState,
		o.AddressCEP,
		items.String(),
		FormatBRL(pixTotal),
		at.Format("02/01/2006 15:04:05"),
	)

	return fmt.Sprintf("https://wa.me/%s?text=%s", w.number, url.QueryEscape(message))
}

// FormatBRL renders a value the Brazilian way: thousands separated by
// dots, cents by a comma.
func FormatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart := s[:len(s)-3]
	cents := s[len(s)-2:]

	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + cents
	if neg {
		out = "-" + out
	}
	return out
}
