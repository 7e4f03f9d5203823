package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var reportTmpl = template.Must(template.New("report").Parse(`Resumo da prospecção ({{.Mode}})
Execução: {{.RunID}}
Duração: {{.Duration}}

Extraídos:        {{.Extracted}}
Dedup na rodada:  {{.Deduplicated}}
Já conhecidos:    {{.AlreadyKnown}}
Leads novos:      {{.NewLeads}}
Webhook entregue: {{.Delivered}}
{{if .FailedQueries}}
Buscas com falha:
{{range .FailedQueries}}  - {{.}}
{{end}}{{end}}`))

// SendRunReport envia o resumo do ciclo para o time comercial.
func (s *EmailSender) SendRunReport(to string, data RunReportData) error {
	var body bytes.Buffer
	if err := reportTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Prospecção %s: %d leads novos 🚀", data.Mode, data.NewLeads))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
