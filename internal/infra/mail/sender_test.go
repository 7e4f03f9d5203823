package mail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestReportTemplateRenders - O corpo do resumo traz todos os números do ciclo
func TestReportTemplateRenders(t *testing.T) {
	data := RunReportData{
		RunID:         "run-123",
		Mode:          "zappy",
		Extracted:     40,
		Deduplicated:  35,
		AlreadyKnown:  20,
		NewLeads:      15,
		Delivered:     14,
		FailedQueries: []string{"Pizzarias @ Olinda, PE"},
		Duration:      "12m30s",
	}

	var body bytes.Buffer
	assert.NoError(t, reportTmpl.Execute(&body, data))

	out := body.String()
	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, "zappy")
	assert.Contains(t, out, "Leads novos:      15")
	assert.Contains(t, out, "Pizzarias @ Olinda, PE")
}

// TestReportTemplateOmitsEmptyFailures - Sem falhas, a seção nem aparece
func TestReportTemplateOmitsEmptyFailures(t *testing.T) {
	var body bytes.Buffer
	assert.NoError(t, reportTmpl.Execute(&body, RunReportData{RunID: "run-456", Mode: "lojaky"}))

	assert.NotContains(t, body.String(), "Buscas com falha")
}
