package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zappyhq/maisleads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// InsertIfAbsent faz o insert condicional em cima do índice único
// (business_name, category). Conflito não é erro: é o sinal normal de
// deduplicação, e a linha existente nunca é sobrescrita.
func (r *LeadRepository) InsertIfAbsent(ctx context.Context, lead *entity.Lead) (bool, error) {
	query := `
		INSERT INTO leads (business_name, whatsapp, neighborhood, category, google_rating, status, target_saas)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (business_name, category) DO NOTHING
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.BusinessName,
		nullString(lead.WhatsApp),
		nullString(lead.Neighborhood),
		lead.Category,
		lead.GoogleRating,
		entity.StatusPending,
		lead.TargetSaaS,
	).Scan(&lead.ID, &lead.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Já conhecido: (business_name, category) existe.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert de lead falhou: %w", err)
	}
	lead.Status = entity.StatusPending
	return true, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	query := `
		SELECT id, business_name, whatsapp, neighborhood, category,
		       google_rating, status, target_saas, created_at, sent_at
		FROM leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR category = $2)
		  AND ($3 = '' OR target_saas = $3)
		ORDER BY created_at DESC
		LIMIT $4
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.DB.QueryContext(ctx, query, filter.Status, filter.Category, filter.TargetSaaS, limit)
	if err != nil {
		return nil, fmt.Errorf("listagem de leads falhou: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// FetchPendingProspects busca leads Pending com celular BR válido para a
// fila de prospecção, pulando números que já receberam mensagem em outra
// linha (o mesmo telefone pode aparecer em mais de uma categoria).
func (r *LeadRepository) FetchPendingProspects(ctx context.Context, targetSaaS string, limit int) ([]entity.Lead, error) {
	query := `
		SELECT id, business_name, whatsapp, neighborhood, category,
		       google_rating, status, target_saas, created_at, sent_at
		FROM leads l
		WHERE status = 'Pending'
		  AND whatsapp IS NOT NULL
		  AND LENGTH(whatsapp) BETWEEN 12 AND 13
		  AND whatsapp ~ '^55[1-9][0-9]9'
		  AND ($1 = '' OR target_saas = $1)
		  AND NOT EXISTS (
		      SELECT 1 FROM leads dup
		      WHERE dup.whatsapp = l.whatsapp
		        AND dup.id != l.id
		        AND dup.status IN ('Sent', 'Quente', 'Frio', 'Convertido')
		  )
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, targetSaaS, limit)
	if err != nil {
		return nil, fmt.Errorf("busca de leads pendentes falhou: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) MarkSent(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE leads SET status = 'Sent', sent_at = NOW() WHERE id = $1
	`, id)
	return err
}

// MarkCold marca como Frio os leads enviados há mais de olderThan sem
// resposta (ainda em Sent). Retorna quantas linhas mudaram.
func (r *LeadRepository) MarkCold(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET status = 'Frio'
		WHERE status = 'Sent'
		  AND sent_at IS NOT NULL
		  AND sent_at < NOW() - ($1 * INTERVAL '1 second')
	`, int64(olderThan.Seconds()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LeadRepository) Stats(ctx context.Context, targetSaaS string) (*entity.LeadStats, error) {
	stats := &entity.LeadStats{
		ByStatus:   make(map[string]int64),
		ByCategory: make(map[string]int64),
		ByTarget:   make(map[string]int64),
	}

	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(whatsapp)
		FROM leads
		WHERE ($1 = '' OR target_saas = $1)
	`, targetSaaS).Scan(&stats.Total, &stats.WithPhone)
	if err != nil {
		return nil, fmt.Errorf("totais falharam: %w", err)
	}

	if err := r.countInto(ctx, stats.ByStatus, "status", targetSaaS); err != nil {
		return nil, err
	}
	if err := r.countInto(ctx, stats.ByCategory, "category", targetSaaS); err != nil {
		return nil, err
	}
	if err := r.countInto(ctx, stats.ByTarget, "target_saas", targetSaaS); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *LeadRepository) countInto(ctx context.Context, dest map[string]int64, column, targetSaaS string) error {
	// column vem de chamadas internas com valores fixos, nunca do usuário.
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM leads
		WHERE ($1 = '' OR target_saas = $1)
		GROUP BY %s
	`, column, column)

	rows, err := r.DB.QueryContext(ctx, query, targetSaaS)
	if err != nil {
		return fmt.Errorf("agregação por %s falhou: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key sql.NullString
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key.String] = count
	}
	return rows.Err()
}

func scanLead(rows *sql.Rows) (entity.Lead, error) {
	var lead entity.Lead
	var whatsapp, neighborhood sql.NullString
	var rating sql.NullFloat64
	var sentAt sql.NullTime

	err := rows.Scan(
		&lead.ID,
		&lead.BusinessName,
		&whatsapp,
		&neighborhood,
		&lead.Category,
		&rating,
		&lead.Status,
		&lead.TargetSaaS,
		&lead.CreatedAt,
		&sentAt,
	)
	if err != nil {
		return entity.Lead{}, fmt.Errorf("scan de lead falhou: %w", err)
	}

	lead.WhatsApp = whatsapp.String
	lead.Neighborhood = neighborhood.String
	if rating.Valid {
		lead.GoogleRating = &rating.Float64
	}
	if sentAt.Valid {
		lead.SentAt = &sentAt.Time
	}
	return lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
