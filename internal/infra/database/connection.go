package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	_ "github.com/lib/pq" // Driver do Postgres
)

const (
	maxConnectRetries = 5
	retryBackoffBase  = 2 // segundos
)

// NewDBConnection abre a conexão, configura o pool e testa o Ping com
// retentativas; no deploy o Postgres costuma subir depois do app.
func NewDBConnection(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	var lastErr error
	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			log.Printf("Conectado ao PostgreSQL (tentativa %d)", attempt)
			return db, nil
		}

		wait := time.Duration(math.Pow(retryBackoffBase, float64(attempt))) * time.Second
		log.Printf("⚠️ Conexão com o banco falhou (tentativa %d): %v. Nova tentativa em %s", attempt, lastErr, wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		}
	}

	db.Close()
	return nil, fmt.Errorf("não conectou ao PostgreSQL após %d tentativas: %w", maxConnectRetries, lastErr)
}
