package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Message renders the order summary sent through the chat handoff. The output
// depends only on its arguments.
func Message(s Summary, storeName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛍️ *Pedido - %s*\n\n", storeName)
	b.WriteString("📋 *Produtos:*\n")
	for i, item := range s.Items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "• %s\n  Tamanho: %s\n  Quantidade: %d\n  Valor: %s",
			item.Name, item.Size, item.Quantity, money(item.LineTotal()))
	}

	b.WriteString("\n\n💰 *Resumo:*\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money(s.Subtotal))
	fmt.Fprintf(&b, "Taxa de entrega: %s\n", money(s.DeliveryFee))
	fmt.Fprintf(&b, "*Total: %s*\n\n", money(s.Total))

	b.WriteString("📍 *Endereço:*\n")
	b.WriteString(s.Address)
	b.WriteString("\n\nObrigado pela preferência! 💕")
	return b.String()
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// encodeURIComponent leaves the same characters unescaped as the browser
// function of that name.
var uriComponentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentUnescape.Replace(url.QueryEscape(s))
}

// HandoffURL builds the chat link that opens a conversation with phone,
// prefilled with message.
func HandoffURL(baseURL, phone, message string) string {
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(phone) + "?text=" + encodeURIComponent(message)
}
