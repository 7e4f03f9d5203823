package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Migrate garante o schema. A unicidade de (business_name, category) é a
// chave de deduplicação do pipeline inteiro; o insert condicional do
// repositório depende desse índice.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id            BIGSERIAL PRIMARY KEY,
			business_name TEXT NOT NULL,
			whatsapp      TEXT,
			neighborhood  TEXT,
			category      TEXT NOT NULL,
			google_rating DOUBLE PRECISION,
			status        TEXT NOT NULL DEFAULT 'Pending',
			target_saas   TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			sent_at       TIMESTAMPTZ
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_name_category
			ON leads (business_name, category)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_whatsapp ON leads (whatsapp)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_sent_at ON leads (sent_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migração falhou: %w", err)
		}
	}

	// Limpeza pontual: CEPs que entraram como bairro em versões antigas do
	// parser de endereço.
	res, err := db.ExecContext(ctx, `
		UPDATE leads
		SET neighborhood = NULL
		WHERE neighborhood ~ '^\d{2}\.?\d{3}-?\d{3}$'
		   OR neighborhood ~ '^\d{5}'
		   OR neighborhood ~ '^\d+\s*-\s*\d'
	`)
	if err != nil {
		log.Printf("⚠️ Limpeza de CEPs falhou: %v", err)
	} else if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("Limpeza de CEPs: %d bairros zerados", n)
	}

	log.Println("✅ Schema do banco pronto")
	return nil
}
