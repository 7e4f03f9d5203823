package scraper

import "regexp"

// Padrão WhatsApp brasileiro: 55 + DDD de 2 dígitos + celular de 9 dígitos
// (começa com 9). Também casa fixos de 8 dígitos que alguns negócios
// anunciam no WhatsApp Business.
var whatsappRe = regexp.MustCompile(`(?:\+?55)\s*\(?(\d{2})\)?\s*(9?\d{4})[\s\-]?(\d{4})`)

// Celular BR válido para prospecção: 55 + DDD (sem zero) + 9 + 8 dígitos.
var brMobileRe = regexp.MustCompile(`^55[1-9][0-9]9\d{8}$`)

// ExtractWhatsApp retorna os números em formato canônico 55DDDNÚMERO
// encontrados no texto, sem repetição e na ordem de aparição.
func ExtractWhatsApp(text string) []string {
	matches := whatsappRe.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var out []string
	for _, m := range matches {
		num := normalizeWhatsApp(m[1], m[2]+m[3])
		if !seen[num] {
			seen[num] = true
			out = append(out, num)
		}
	}
	return out
}

func normalizeWhatsApp(ddd, number string) string {
	// Celulares têm 9 dígitos depois do DDD; fixos de 8 ganham o 9 na frente.
	if len(number) == 8 {
		number = "9" + number
	}
	return "55" + ddd + number
}

// ValidProspectNumber diz se o número serve para prospecção via WhatsApp
// (somente celulares brasileiros completos).
func ValidProspectNumber(num string) bool {
	return len(num) >= 12 && len(num) <= 13 && brMobileRe.MatchString(num)
}
