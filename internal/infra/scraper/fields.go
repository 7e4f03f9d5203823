package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zappyhq/maisleads/internal/entity"
)

// Estratégias de seletor para o nome no painel de detalhe, em ordem de
// preferência. O layout do Maps muda com frequência: drift de markup se
// resolve editando esta lista, não o fluxo do extractor.
var nameSelectors = []string{
	"h1.DUwDvf",
	`div[role="main"] h1.fontHeadlineLarge`,
	`div[role="main"] h1`,
}

// Nomes genéricos que indicam que o painel de detalhe não carregou o
// negócio de fato.
var placeholderNames = map[string]bool{
	"resultados": true,
	"results":    true,
	"resultado":  true,
	"result":     true,
}

func IsPlaceholderName(name string) bool {
	return placeholderNames[strings.ToLower(strings.TrimSpace(name))]
}

var ratingTokenRe = regexp.MustCompile(`[\d,\.]+`)

// ParseRating extrai a nota do aria-label de estrelas ("4,7 estrelas").
// Fora da faixa plausível do Maps (0–5) vira ausente.
func ParseRating(aria string) *float64 {
	token := ratingTokenRe.FindString(aria)
	if token == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil || v < 0 || v > 5 {
		return nil
	}
	return &v
}

var (
	cepRe         = regexp.MustCompile(`(?i)^(?:CEP\s*)?\d{2}\.?\d{3}-?\d{3}$`)
	stateSuffixRe = regexp.MustCompile(`\s*-\s*[A-Z]{2}$`)
	numberDashRe  = regexp.MustCompile(`^\d+\s*-\s*(.+)$`)
	digitsOnlyRe  = regexp.MustCompile(`[\s\.\-]`)
	allDigitsRe   = regexp.MustCompile(`^\d+$`)
)

var streetPrefixes = []string{
	"r.", "rua ", "av.", "av ", "rod.", "rod ", "travessa", "tv.",
	"estrada", "alameda", "al.", "praça", "pç.", "largo ", "beco ",
	"vila ", "conj.", "conjunto ", "lot.", "loteamento ",
}

var knownCities = map[string]bool{
	"olinda": true, "recife": true, "camaragibe": true,
	"são lourenço da mata": true, "jaboatão": true,
	"jaboatão dos guararapes": true, "paulista": true,
	"brasil": true, "brazil": true,
}

// ParseNeighborhood tenta achar o bairro num endereço brasileiro
// ("Rua X, 123 - Bairro, Olinda - PE, 53020-140"), descartando CEPs,
// números de porta, prefixos de logradouro e nomes de cidade.
func ParseNeighborhood(address string) string {
	neighborhood := ""
	for _, part := range strings.Split(address, ",") {
		cleaned := strings.TrimSpace(part)
		if cleaned == "" {
			continue
		}
		if cepRe.MatchString(cleaned) {
			continue
		}
		digits := digitsOnlyRe.ReplaceAllString(cleaned, "")
		if allDigitsRe.MatchString(digits) && len(digits) >= 5 {
			continue
		}
		if stateSuffixRe.MatchString(cleaned) {
			continue
		}
		if allDigitsRe.MatchString(cleaned) {
			continue
		}
		lower := strings.ToLower(cleaned)
		if hasStreetPrefix(lower) {
			continue
		}
		if knownCities[lower] {
			continue
		}
		// "123 - Bairro" é o sinal mais forte; encerra a busca.
		if m := numberDashRe.FindStringSubmatch(cleaned); m != nil {
			return strings.TrimSpace(m[1])
		}
		if len([]rune(cleaned)) > 2 {
			neighborhood = cleaned
		}
	}
	return neighborhood
}

func hasStreetPrefix(lower string) bool {
	for _, p := range streetPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// entrySnapshot é o que o JavaScript injetado devolve para uma entrada já
// aberta no painel de detalhe. Os campos crus são interpretados em Go.
type entrySnapshot struct {
	AriaName    string   `json:"ariaName"`
	DetailNames []string `json:"detailNames"`
	RatingAria  string   `json:"ratingAria"`
	Address     string   `json:"address"`
	PhoneText   string   `json:"phoneText"`
	TelHrefs    []string `json:"telHrefs"`
}

// buildCandidate transforma o snapshot cru em candidato. Retorna false
// quando nenhum nome utilizável foi extraído (entrada descartada).
func buildCandidate(category string, snap entrySnapshot) (entity.Candidate, bool) {
	name := ""
	for _, n := range snap.DetailNames {
		n = strings.TrimSpace(n)
		if n != "" && !IsPlaceholderName(n) {
			name = n
			break
		}
	}
	if name == "" {
		// Fallback: aria-label da entrada na lista de resultados.
		aria := strings.TrimSpace(snap.AriaName)
		if aria == "" || IsPlaceholderName(aria) {
			return entity.Candidate{}, false
		}
		name = aria
	}

	cand := entity.Candidate{
		BusinessName: name,
		Category:     category,
		GoogleRating: ParseRating(snap.RatingAria),
		Neighborhood: ParseNeighborhood(snap.Address),
	}

	// Só o telefone do próprio negócio: botão de contato primeiro, links
	// tel: como fallback.
	if nums := ExtractWhatsApp(snap.PhoneText); len(nums) > 0 {
		cand.WhatsApp = nums[0]
	} else {
		for _, href := range snap.TelHrefs {
			if nums := ExtractWhatsApp(href); len(nums) > 0 {
				cand.WhatsApp = nums[0]
				break
			}
		}
	}
	return cand, true
}
