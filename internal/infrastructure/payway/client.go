// Package payway implementa el cliente del gateway de pago PayWay (ABA) para
// generar códigos QR (KHQR) de pago. La petición se firma con HMAC-SHA512 en
// base64 sobre una secuencia fija de campos definida por la documentación del
// gateway. No toca el inventario: es un puerto de salida puro.
package payway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sokha/pos-api/pkg/config"
)

const (
	purchaseType  = "purchase"
	paymentOption = "abapay_khqr"
	currency      = "USD"
)

// QRRequest es la solicitud interna para generar un QR.
type QRRequest struct {
	TranID      string
	Amount      string // decimal en texto, tal como se firma y se envía
	ItemsBase64 string // detalle de líneas en base64, opcional
}

// QRResponse es la respuesta cruda del gateway, devuelta al cliente tal cual.
type QRResponse struct {
	Status struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	QRString string          `json:"qr_string,omitempty"`
	QRImage  string          `json:"qr_image,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// GatewayError error devuelto cuando PayWay rechaza la solicitud (status.code != "0").
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payway: %s (code %s)", e.Message, e.Code)
}

// Client cliente HTTP del gateway. Usa net/http de la stdlib para la llamada saliente.
type Client struct {
	cfg        config.PayWayConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewClient construye el cliente con un timeout de red de 30 s.
func NewClient(cfg config.PayWayConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Configured indica si hay credenciales suficientes para operar.
func (c *Client) Configured() bool {
	return c.cfg.MerchantID != "" && c.cfg.APIKey != ""
}

// paywayBody es el cuerpo JSON enviado al gateway.
type paywayBody struct {
	ReqTime         string `json:"req_time"`
	MerchantID      string `json:"merchant_id"`
	TranID          string `json:"tran_id"`
	Amount          string `json:"amount"`
	Items           string `json:"items"`
	PurchaseType    string `json:"purchase_type"`
	PaymentOption   string `json:"payment_option"`
	CallbackURL     string `json:"callback_url,omitempty"`
	Currency        string `json:"currency"`
	Lifetime        int    `json:"lifetime"`
	QRImageTemplate string `json:"qr_image_template"`
	Hash            string `json:"hash"`
}

// GenerateQR firma y envía la solicitud de QR al gateway.
func (c *Client) GenerateQR(ctx context.Context, req QRRequest) (*QRResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("payway: credenciales no configuradas")
	}

	reqTime := c.now().UTC().Format("20060102150405")
	callbackURL := ""
	if c.cfg.CallbackURL != "" {
		callbackURL = base64.StdEncoding.EncodeToString([]byte(c.cfg.CallbackURL))
	}

	body := paywayBody{
		ReqTime:         reqTime,
		MerchantID:      c.cfg.MerchantID,
		TranID:          req.TranID,
		Amount:          req.Amount,
		Items:           req.ItemsBase64,
		PurchaseType:    purchaseType,
		PaymentOption:   paymentOption,
		CallbackURL:     callbackURL,
		Currency:        currency,
		Lifetime:        c.cfg.QRLifetimeMinutes,
		QRImageTemplate: c.cfg.QRImageTemplate,
	}
	body.Hash = sign(c.cfg.APIKey, body)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal payway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build payway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read payway response: %w", err)
	}

	var out QRResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode payway response: %w", err)
	}
	out.Raw = raw

	if resp.StatusCode != http.StatusOK || out.Status.Code != "0" {
		return nil, &GatewayError{Code: out.Status.Code, Message: out.Status.Message}
	}
	return &out, nil
}

// sign calcula el HMAC-SHA512 en base64 sobre la secuencia fija de campos.
// El orden es crítico y debe coincidir con la documentación del gateway;
// los campos no enviados (nombre, email, teléfono, etc.) entran como vacíos.
func sign(apiKey string, b paywayBody) string {
	hashString := b.ReqTime +
		b.MerchantID +
		b.TranID +
		b.Amount +
		b.Items +
		"" + // first_name
		"" + // last_name
		"" + // email
		"" + // phone
		b.PurchaseType +
		b.PaymentOption +
		b.CallbackURL +
		"" + // return_deeplink
		b.Currency +
		"" + // custom_fields
		"" + // return_params
		"" + // payout
		strconv.Itoa(b.Lifetime) +
		b.QRImageTemplate

	mac := hmac.New(sha512.New, []byte(apiKey))
	mac.Write([]byte(hashString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
