// Package brcode builds Pix BR Code payloads: the EMV-style
// tag-length-value text carried inside a payment QR code.
package brcode

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pixfacil/internal/domain/pix"
)

// Top-level field ids.
const (
	idPayloadFormat     = "00"
	idPointOfInitiation = "01"
	idMerchantAccount   = "26"
	idMerchantCategory  = "52"
	idCurrency          = "53"
	idAmount            = "54"
	idCountry           = "58"
	idMerchantName      = "59"
	idMerchantCity      = "60"
	idAdditionalData    = "62"
	idCRC               = "63"
)

// Merchant account and additional data sub-field ids.
const (
	idGUI       = "00"
	idPixKey    = "01"
	idReference = "05"
)

const (
	payloadFormat   = "01"
	singleUse       = "12"
	pixGUI          = "br.gov.bcb.pix"
	genericCategory = "0000"
	currencyBRL     = "986"
	countryBR       = "BR"

	MaxMerchantName = 25
	MaxMerchantCity = 15
	MaxDescription  = maxFieldLength - 4
	MaxKeyValue     = maxFieldLength - (4 + len(pixGUI)) - 4

	fallbackName = "PIX"

	countryCallingCode = "+55"

	DefaultRenderURL = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultSize      = 256
	DefaultCity      = "SAO PAULO"
)

// crcHeader is hashed together with the rest of the payload.
var crcHeader = idCRC + "04"

// Config controls the parts of a payload that are not per-code.
type Config struct {
	RenderURL string
	Size      int
	City      string
}

// Payload is an encoded payment code.
type Payload struct {
	Text     string `json:"pixCode"`
	ImageURL string `json:"qrCode"`
}

// Encoder turns a key, amount and description into a payload.
type Encoder struct {
	cfg Config
}

// NewEncoder fills zero config values with defaults.
func NewEncoder(cfg Config) *Encoder {
	if cfg.RenderURL == "" {
		cfg.RenderURL = DefaultRenderURL
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if strings.TrimSpace(cfg.City) == "" {
		cfg.City = DefaultCity
	}
	return &Encoder{cfg: cfg}
}

// Encode builds the payload text and its image URL. Identical inputs
// always produce identical output. The key value is not validated.
func (e *Encoder) Encode(key pix.Key, amount, description string) Payload {
	text := e.Text(key, amount, description)
	return Payload{Text: text, ImageURL: e.ImageURL(text)}
}

// Text builds only the payload text.
func (e *Encoder) Text(key pix.Key, amount, description string) string {
	var b strings.Builder

	b.WriteString(field(idPayloadFormat, payloadFormat))
	b.WriteString(field(idPointOfInitiation, singleUse))
	b.WriteString(field(idMerchantAccount, merchantAccount(keyValue(key))))
	b.WriteString(field(idMerchantCategory, genericCategory))
	b.WriteString(field(idCurrency, currencyBRL))
	if amount = strings.TrimSpace(amount); !isZeroAmount(amount) {
		b.WriteString(field(idAmount, amount))
	}
	b.WriteString(field(idCountry, countryBR))
	b.WriteString(field(idMerchantName, merchantName(key.Name)))
	b.WriteString(field(idMerchantCity, truncateBytes(clean(e.cfg.City), MaxMerchantCity)))
	if desc := truncateBytes(clean(description), MaxDescription); desc != "" {
		b.WriteString(field(idAdditionalData, field(idReference, desc)))
	}

	b.WriteString(crcHeader)
	body := b.String()
	return body + checksum(body)
}

// ImageURL points the render service at the payload.
func (e *Encoder) ImageURL(text string) string {
	size := strconv.Itoa(e.cfg.Size)
	return e.cfg.RenderURL + "?data=" + encodeURIComponent(text) + "&size=" + size + "x" + size
}

// Size is the configured rendering size in pixels.
func (e *Encoder) Size() int {
	return e.cfg.Size
}

// keyValue is the key as the payment network expects it. National phone
// numbers get the Brazilian country code.
func keyValue(key pix.Key) string {
	if key.Type == pix.KeyTypePhone && !strings.HasPrefix(key.Value, "+") {
		return countryCallingCode + key.Value
	}
	return key.Value
}

// merchantAccount nests the GUI and key sub-fields. The key is cut first
// so the composite never exceeds its own length prefix.
func merchantAccount(keyValue string) string {
	return field(idGUI, pixGUI) + field(idPixKey, truncateBytes(keyValue, MaxKeyValue))
}

func merchantName(name string) string {
	n := truncateBytes(clean(name), MaxMerchantName)
	if n == "" {
		return fallbackName
	}
	return n
}

// isZeroAmount treats blank and numerically zero amounts as absent.
// Anything unparseable is passed through untouched.
func isZeroAmount(amount string) bool {
	if amount == "" {
		return true
	}
	d, err := decimal.NewFromString(amount)
	return err == nil && d.IsZero()
}

// encodeURIComponent percent-encodes s for a query value. Unlike the JS
// function of the same name it also escapes !'()*, so URLs are equivalent
// after decoding but not byte-identical.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Verify reports whether the trailing checksum of payload matches.
func Verify(payload string) bool {
	if len(payload) < len(crcHeader)+4 {
		return false
	}
	body, sum := payload[:len(payload)-4], payload[len(payload)-4:]
	if !strings.HasSuffix(body, crcHeader) {
		return false
	}
	return checksum(body) == sum
}
