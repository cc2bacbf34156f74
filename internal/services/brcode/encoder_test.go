package brcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixfacil/internal/domain/pix"
)

func emailKey() pix.Key {
	return pix.Key{ID: "k1", Type: pix.KeyTypeEmail, Value: "user@example.com", Name: "Loja"}
}

func TestCRC16(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), CRC16("123456789"))
	assert.Equal(t, uint16(0xFFFF), CRC16(""))
	assert.Equal(t, "29B1", checksum("123456789"))
}

func TestEncode_KnownVectors(t *testing.T) {
	enc := NewEncoder(Config{})

	tests := []struct {
		name        string
		key         pix.Key
		amount      string
		description string
		want        string
	}{
		{
			name:        "email key with description",
			key:         emailKey(),
			amount:      "25.50",
			description: "Pedido 1",
			want:        "00020101021226380014br.gov.bcb.pix0116user@example.com520400005303986540525.505802BR5904Loja6009SAO PAULO62120508Pedido 16304E851",
		},
		{
			name:   "accented name without description",
			key:    pix.Key{Type: pix.KeyTypeCPF, Value: "52998224725", Name: "João da Silva"},
			amount: "10.00",
			want:   "00020101021226330014br.gov.bcb.pix011152998224725520400005303986540510.005802BR5913Joao da Silva6009SAO PAULO6304E005",
		},
		{
			name: "open amount and blank name",
			key:  pix.Key{Type: pix.KeyTypePhone, Value: "+5511999998888", Name: "  "},
			want: "00020101021226360014br.gov.bcb.pix0114+55119999988885204000053039865802BR5903PIX6009SAO PAULO63043777",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Encode(tt.key, tt.amount, tt.description)
			assert.Equal(t, tt.want, got.Text)
			assert.True(t, Verify(got.Text))
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	enc := NewEncoder(Config{})
	a := enc.Encode(emailKey(), "25.50", "Pedido 1")
	b := enc.Encode(emailKey(), "25.50", "Pedido 1")
	assert.Equal(t, a, b)
}

func TestEncode_CRCRoundTrip(t *testing.T) {
	enc := NewEncoder(Config{City: "Florianópolis"})
	inputs := []struct{ amount, desc string }{
		{"0.01", ""},
		{"25.50", "Pedido 1"},
		{"49999.99", "Mensalidade de março"},
		{"", "sem valor"},
	}

	for _, in := range inputs {
		text := enc.Text(emailKey(), in.amount, in.desc)
		require.True(t, strings.HasSuffix(text[:len(text)-4], "6304"))
		trailer := text[len(text)-4:]
		assert.Equal(t, trailer, checksum(text[:len(text)-4]))
		assert.Equal(t, strings.ToUpper(trailer), trailer)
		assert.Len(t, trailer, 4)
		assert.NotContains(t, text, "\n")
	}
}

func TestEncode_EdgeCases(t *testing.T) {
	enc := NewEncoder(Config{})

	t.Run("empty description omits additional data", func(t *testing.T) {
		fields, err := Parse(enc.Text(emailKey(), "1.00", ""))
		require.NoError(t, err)
		_, ok := fields.Get(idAdditionalData)
		assert.False(t, ok)
	})

	t.Run("whitespace description omits additional data", func(t *testing.T) {
		fields, err := Parse(enc.Text(emailKey(), "1.00", "   "))
		require.NoError(t, err)
		_, ok := fields.Get(idAdditionalData)
		assert.False(t, ok)
	})

	t.Run("zero amount is omitted", func(t *testing.T) {
		fields, err := Parse(enc.Text(emailKey(), "0.00", ""))
		require.NoError(t, err)
		_, ok := fields.Get(idAmount)
		assert.False(t, ok)
	})

	t.Run("long merchant name is truncated", func(t *testing.T) {
		key := emailKey()
		key.Name = "Padaria e Confeitaria Pão Quente Ltda"
		text := enc.Text(key, "1.00", "")
		assert.Contains(t, text, "5925Padaria e Confeitaria Pao")
	})

	t.Run("long description is truncated to its field", func(t *testing.T) {
		desc := strings.Repeat("x", 140)
		fields, err := Parse(enc.Text(emailKey(), "1.00", desc))
		require.NoError(t, err)
		extra, ok := fields.Get(idAdditionalData)
		require.True(t, ok)
		assert.Len(t, extra, maxFieldLength)
	})

	t.Run("invalid key value still encodes", func(t *testing.T) {
		key := pix.Key{Type: pix.KeyTypeCPF, Value: "not-a-cpf", Name: "Loja"}
		assert.True(t, Verify(enc.Text(key, "5.00", "")))
	})

	t.Run("city is cleaned and truncated", func(t *testing.T) {
		text := NewEncoder(Config{City: "São José dos Campos"}).Text(emailKey(), "1.00", "")
		assert.Contains(t, text, "6015Sao Jose dos Ca")
	})
}

func TestImageURL(t *testing.T) {
	enc := NewEncoder(Config{})
	got := enc.Encode(emailKey(), "25.50", "Pedido 1")
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?data=00020101021226380014br.gov.bcb.pix0116user%40example.com520400005303986540525.505802BR5904Loja6009SAO%20PAULO62120508Pedido%2016304E851&size=256x256",
		got.ImageURL)

	custom := NewEncoder(Config{RenderURL: "https://render.local/qr", Size: 512})
	assert.True(t, strings.HasPrefix(custom.ImageURL("x"), "https://render.local/qr?data=x&size=512x512"))
}

func TestVerify(t *testing.T) {
	text := NewEncoder(Config{}).Text(emailKey(), "25.50", "Pedido 1")
	assert.True(t, Verify(text))
	assert.False(t, Verify(strings.Replace(text, "25.50", "95.50", 1)))
	assert.False(t, Verify(text[:len(text)-4]+"0000"))
	assert.False(t, Verify("6304"))
	assert.False(t, Verify(""))
}

func TestEncode_LongKeyKeepsMerchantAccountWellFormed(t *testing.T) {
	enc := NewEncoder(Config{})
	key := pix.Key{Type: pix.KeyTypeManual, Value: strings.Repeat("a", 90), Name: "Loja"}

	text := enc.Encode(key, "1.00", "").Text
	require.True(t, Verify(text))

	fields, err := Parse(text)
	require.NoError(t, err)
	account := fields[2]
	require.Equal(t, idMerchantAccount, account.ID)
	assert.LessOrEqual(t, len(account.Value), maxFieldLength)

	sub, err := account.Children()
	require.NoError(t, err)
	require.Len(t, sub, 2)
	assert.Equal(t, pixGUI, sub[0].Value)
	assert.Equal(t, strings.Repeat("a", MaxKeyValue), sub[1].Value)

	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, sub[1].Value, decoded.KeyValue)
}

func TestEncode_NationalPhoneGetsCountryCode(t *testing.T) {
	enc := NewEncoder(Config{})
	key := pix.Key{Type: pix.KeyTypePhone, Value: "11999998888", Name: "Loja"}

	decoded, err := Decode(enc.Encode(key, "", "").Text)
	require.NoError(t, err)
	assert.Equal(t, "+5511999998888", decoded.KeyValue)
}
