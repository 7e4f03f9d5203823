package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============ NOME ============

// TestIsPlaceholderName - Painel que não carregou mostra "Resultados" no lugar do nome
func TestIsPlaceholderName(t *testing.T) {
	assert.True(t, IsPlaceholderName("Resultados"))
	assert.True(t, IsPlaceholderName("  results "))
	assert.True(t, IsPlaceholderName("RESULTADO"))
	assert.False(t, IsPlaceholderName("Padaria Resultados de Ouro"))
	assert.False(t, IsPlaceholderName("Padaria Sol"))
}

// ============ NOTA ============

// TestParseRating - Aria-label brasileiro usa vírgula decimal
func TestParseRating(t *testing.T) {
	cases := []struct {
		aria string
		want *float64
	}{
		{"4,7 estrelas", ptr(4.7)},
		{"5,0 estrelas", ptr(5.0)},
		{"4.2 stars", ptr(4.2)},
		{"0 estrelas", ptr(0.0)},
		{"9,9 estrelas", nil}, // fora da escala do Maps
		{"sem nota", nil},
		{"", nil},
	}

	for _, tc := range cases {
		got := ParseRating(tc.aria)
		if tc.want == nil {
			assert.Nil(t, got, "aria %q", tc.aria)
		} else {
			assert.NotNil(t, got, "aria %q", tc.aria)
			assert.InDelta(t, *tc.want, *got, 0.001)
		}
	}
}

// ============ BAIRRO ============

// TestParseNeighborhood - Endereços reais do Maps em Pernambuco
func TestParseNeighborhood(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"R. do Sol, 123 - Carmo, Olinda - PE, 53020-140", "Carmo"},
		{"Av. Getúlio Vargas, 456 - Bairro Novo, Olinda - PE", "Bairro Novo"},
		{"Rua das Flores, 80, Timbi, Camaragibe - PE", "Timbi"},
		{"Estrada de Aldeia, km 13, Aldeia dos Camarás", "Aldeia dos Camarás"},
		{"Olinda - PE, 53000-000", ""},
		{"53020-140", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseNeighborhood(tc.address), "address %q", tc.address)
	}
}

// ============ CANDIDATO ============

// TestBuildCandidateFull - Snapshot completo vira candidato com todos os campos
func TestBuildCandidateFull(t *testing.T) {
	snap := entrySnapshot{
		AriaName:    "Padaria Sol",
		DetailNames: []string{"Padaria Sol"},
		RatingAria:  "4,7 estrelas",
		Address:     "R. do Sol, 123 - Carmo, Olinda - PE, 53020-140",
		PhoneText:   "+55 (81) 99999-1234",
	}

	cand, ok := buildCandidate("padaria", snap)

	assert.True(t, ok)
	assert.Equal(t, "Padaria Sol", cand.BusinessName)
	assert.Equal(t, "padaria", cand.Category)
	assert.Equal(t, "5581999991234", cand.WhatsApp)
	assert.Equal(t, "Carmo", cand.Neighborhood)
	assert.NotNil(t, cand.GoogleRating)
	assert.InDelta(t, 4.7, *cand.GoogleRating, 0.001)
}

// TestBuildCandidatePlaceholderFallsBack - Nome genérico no painel cai para o aria da lista
func TestBuildCandidatePlaceholderFallsBack(t *testing.T) {
	snap := entrySnapshot{
		AriaName:    "Mercadinho Boa Vista",
		DetailNames: []string{"Resultados"},
	}

	cand, ok := buildCandidate("mercadinho", snap)

	assert.True(t, ok)
	assert.Equal(t, "Mercadinho Boa Vista", cand.BusinessName)
}

// TestBuildCandidateNoUsableName - Sem nome utilizável a entrada é descartada
func TestBuildCandidateNoUsableName(t *testing.T) {
	snap := entrySnapshot{
		AriaName:    "Resultados",
		DetailNames: []string{"", "results"},
	}

	_, ok := buildCandidate("padaria", snap)

	assert.False(t, ok)
}

// TestBuildCandidatePhoneFromTelHref - Sem botão de telefone, o link tel: resolve
func TestBuildCandidatePhoneFromTelHref(t *testing.T) {
	snap := entrySnapshot{
		DetailNames: []string{"Açaí da Praça"},
		TelHrefs:    []string{"tel:+5581988887777"},
	}

	cand, ok := buildCandidate("açaiteria", snap)

	assert.True(t, ok)
	assert.Equal(t, "5581988887777", cand.WhatsApp)
}

// TestBuildCandidateMissingFieldsAreEmpty - Campos ausentes ficam vazios, não inventados
func TestBuildCandidateMissingFieldsAreEmpty(t *testing.T) {
	snap := entrySnapshot{
		DetailNames: []string{"Barbearia Central"},
	}

	cand, ok := buildCandidate("barbearia", snap)

	assert.True(t, ok)
	assert.Empty(t, cand.WhatsApp)
	assert.Empty(t, cand.Neighborhood)
	assert.Nil(t, cand.GoogleRating)
}

func ptr(f float64) *float64 { return &f }
