package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/zappyhq/maisleads/internal/entity"
)

type ExportHandler struct {
	leadRepo entity.LeadRepositoryInterface
}

func NewExportHandler(leadRepo entity.LeadRepositoryInterface) *ExportHandler {
	return &ExportHandler{leadRepo: leadRepo}
}

// Handle responde GET /api/export/csv. Separador ponto-e-vírgula para o
// Excel pt-BR abrir direto, mesmos filtros da listagem.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	filter := entity.LeadFilter{
		Status:     r.URL.Query().Get("status"),
		Category:   r.URL.Query().Get("category"),
		TargetSaaS: r.URL.Query().Get("target"),
	}

	leads, err := h.leadRepo.List(r.Context(), filter)
	if err != nil {
		log.Printf("❌ Erro ao exportar leads: %v", err)
		writeError(w, http.StatusInternalServerError, "falha ao exportar leads")
		return
	}

	filename := fmt.Sprintf("leads_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	cw.Write([]string{"Nome", "WhatsApp", "Bairro", "Categoria", "Avaliação", "Status", "Produto", "Criado em"})
	for _, lead := range leads {
		rating := ""
		if lead.GoogleRating != nil {
			rating = strings.Replace(fmt.Sprintf("%.1f", *lead.GoogleRating), ".", ",", 1)
		}
		cw.Write([]string{
			lead.BusinessName,
			formatPhone(lead.WhatsApp),
			lead.Neighborhood,
			lead.Category,
			rating,
			lead.Status,
			lead.TargetSaaS,
			lead.CreatedAt.Format("02/01/2006 15:04"),
		})
	}
	cw.Flush()
}

// formatPhone exibe 5581999999999 como (81) 99999-9999.
func formatPhone(phone string) string {
	digits := strings.TrimPrefix(phone, "+")
	digits = strings.TrimPrefix(digits, "55")
	if len(digits) < 10 {
		return phone
	}
	ddd := digits[:2]
	number := digits[2:]
	return fmt.Sprintf("(%s) %s-%s", ddd, number[:len(number)-4], number[len(number)-4:])
}
