package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/zappyhq/maisleads/internal/entity"
)

type StatsHandler struct {
	leadRepo entity.LeadRepositoryInterface
}

func NewStatsHandler(leadRepo entity.LeadRepositoryInterface) *StatsHandler {
	return &StatsHandler{leadRepo: leadRepo}
}

// Handle responde GET /api/stats. O filtro ?target=Zappy restringe a um
// produto; sem ele o resumo cobre a base inteira.
func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leadRepo.Stats(r.Context(), r.URL.Query().Get("target"))
	if err != nil {
		log.Printf("❌ Erro ao calcular estatísticas: %v", err)
		writeError(w, http.StatusInternalServerError, "falha ao calcular estatísticas")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}
