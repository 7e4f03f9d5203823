package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/zappyhq/maisleads/internal/entity"
)

const defaultListLimit = 200

type LeadHandler struct {
	leadRepo entity.LeadRepositoryInterface
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{leadRepo: leadRepo}
}

type ListLeadsResponse struct {
	Count int           `json:"count"`
	Leads []entity.Lead `json:"leads"`
}

// List responde GET /api/leads com filtros via query string:
// ?status=Pending&category=pizzaria&target=Zappy&limit=50
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := entity.LeadFilter{
		Status:     r.URL.Query().Get("status"),
		Category:   r.URL.Query().Get("category"),
		TargetSaaS: r.URL.Query().Get("target"),
		Limit:      defaultListLimit,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit inválido")
			return
		}
		filter.Limit = n
	}

	leads, err := h.leadRepo.List(ctx, filter)
	if err != nil {
		log.Printf("❌ Erro ao listar leads: %v", err)
		writeError(w, http.StatusInternalServerError, "falha ao consultar leads")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListLeadsResponse{
		Count: len(leads),
		Leads: leads,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
