package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractWhatsAppFormats - Formatos comuns de anúncio viram o canônico 55DDDNÚMERO
func TestExtractWhatsAppFormats(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"com código do país", "+55 (81) 99999-1234", []string{"5581999991234"}},
		{"sem o mais", "55 81 99999 1234", []string{"5581999991234"}},
		{"sem espaços", "5581999991234", []string{"5581999991234"}},
		{"fixo de 8 dígitos ganha o 9", "+55 (81) 3333-4444", []string{"5581933334444"}},
		{"no meio de texto", "Pedidos: +55 (81) 98888-7777, falar com Ana", []string{"5581988887777"}},
		{"sem número", "Rua das Flores, 123 - Centro", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractWhatsApp(tc.text))
		})
	}
}

// TestExtractWhatsAppDedup - Mesmo número repetido aparece uma vez, na ordem
func TestExtractWhatsAppDedup(t *testing.T) {
	text := "+55 81 99999-1234 / 55 (81) 99999-1234 / +55 (81) 98888-0000"

	got := ExtractWhatsApp(text)

	assert.Equal(t, []string{"5581999991234", "5581988880000"}, got)
}

// TestValidProspectNumber - Só celular brasileiro completo serve para prospecção
func TestValidProspectNumber(t *testing.T) {
	valid := []string{
		"5581999991234",
		"5511987654321",
	}
	invalid := []string{
		"",
		"5581333344445",  // não começa com 9 depois do DDD
		"81999991234",    // sem código do país
		"558199999123",   // curto demais
		"55081999991234", // DDD com zero
	}

	for _, num := range valid {
		assert.True(t, ValidProspectNumber(num), "deveria aceitar %s", num)
	}
	for _, num := range invalid {
		assert.False(t, ValidProspectNumber(num), "deveria rejeitar %s", num)
	}
}
