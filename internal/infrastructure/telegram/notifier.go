// Package telegram implementa el notificador de pedidos del catálogo público.
// Envía un mensaje MarkdownV2 al grupo configurado; el envío es best-effort:
// los fallos se registran y se descartan, nunca hacen fallar el pedido.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokha/pos-api/pkg/config"
	"github.com/sokha/pos-api/pkg/logger"
)

// OrderItem línea del pedido a notificar.
type OrderItem struct {
	NameEN       string
	NameKM       string
	SellingPrice decimal.Decimal
	Quantity     int
}

// Order datos del pedido a notificar.
type Order struct {
	CustomerName  string
	CustomerPhone string
	Items         []OrderItem
}

// Notifier envía notificaciones de pedidos por Telegram.
type Notifier struct {
	cfg        config.TelegramConfig
	httpClient *http.Client
	log        *logger.Logger
	baseURL    string
}

// NewNotifier construye el notificador con un timeout de red de 15 s.
func NewNotifier(cfg config.TelegramConfig, log *logger.Logger) *Notifier {
	return &Notifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
		baseURL:    "https://api.telegram.org",
	}
}

// NotifyOrder envía la notificación del pedido. Nunca devuelve error: si el
// bot no está configurado o el envío falla, se registra y se ignora.
func (n *Notifier) NotifyOrder(ctx context.Context, order Order) {
	if n.cfg.BotToken == "" || n.cfg.ChatID == "" {
		n.log.Warn().Msg("telegram no configurado; se omite la notificación del pedido")
		return
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    n.cfg.ChatID,
		"text":       FormatOrderMessage(order),
		"parse_mode": "MarkdownV2",
	})
	if err != nil {
		n.log.Error().Err(err).Msg("error serializando la notificación de telegram")
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		n.log.Error().Err(err).Msg("error construyendo la petición de telegram")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Error().Err(err).Msg("error enviando la notificación de telegram")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.log.Error().Int("status", resp.StatusCode).Msg("telegram rechazó la notificación del pedido")
		return
	}
	n.log.Info().Str("customer", order.CustomerName).Msg("notificación de pedido enviada a telegram")
}

// FormatOrderMessage arma el mensaje MarkdownV2 del pedido con las etiquetas
// del recibo en jemer.
func FormatOrderMessage(order Order) string {
	var b strings.Builder
	b.WriteString("‼️ *New Order Received* ‼️\n\n")
	b.WriteString(fmt.Sprintf("*ឈ្មោះអតិថិជន:* %s\n", EscapeMarkdownV2(order.CustomerName)))
	b.WriteString(fmt.Sprintf("*លេខទូរស័ព្ទទំនាក់ទំនង:* `%s`\n\n", EscapeMarkdownV2(order.CustomerPhone)))
	b.WriteString(" 🧾 *វិក្ក័យបត្រ:* 🧾\n\n")

	total := decimal.Zero
	for _, item := range order.Items {
		itemTotal := item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(itemTotal)
		name := item.NameKM
		if name == "" {
			name = item.NameEN
		}
		b.WriteString(fmt.Sprintf("  \\- %s \\(x%d\\) \\- *%s ฿*\n",
			EscapeMarkdownV2(name), item.Quantity, EscapeMarkdownV2(itemTotal.String())))
	}

	b.WriteString(fmt.Sprintf("\n*Total Amount: %s ฿*", EscapeMarkdownV2(total.String())))
	return b.String()
}

// EscapeMarkdownV2 escapa los caracteres reservados del MarkdownV2 de Telegram.
func EscapeMarkdownV2(text string) string {
	const reserved = "_*[]()~`>#+-=|{}.!"
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
