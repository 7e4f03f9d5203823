package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// RunReportData alimenta o email de resumo enviado ao fim de cada ciclo de
// prospecção.
type RunReportData struct {
	RunID         string
	Mode          string
	Extracted     int
	Deduplicated  int
	AlreadyKnown  int
	NewLeads      int
	Delivered     int
	FailedQueries []string
	Duration      string
}
