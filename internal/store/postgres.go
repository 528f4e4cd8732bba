package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendaflow/app-inventario-search/internal/models"
)

// PostgresStore persiste os descriptors em Postgres. Os blocos
// estruturados (endpoint, auth, paginação, schema, rolemap, param_map)
// ficam em colunas JSONB; a normalização das formas históricas de
// paginação acontece na desserialização, nunca no banco.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore conecta no banco e garante o schema
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no banco: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("erro ao pingar o banco: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close libera o pool de conexões
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// ensureSchema cria a tabela quando não existe; idempotente
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS integrations (
			id            TEXT NOT NULL,
			company_id    TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			category_hint TEXT NOT NULL DEFAULT '',
			ativo         BOOLEAN NOT NULL DEFAULT TRUE,
			endpoint      JSONB NOT NULL DEFAULT '{}',
			auth          JSONB NOT NULL DEFAULT '{}',
			pagination    JSONB NOT NULL DEFAULT '{}',
			schema        JSONB NOT NULL DEFAULT '{}',
			rolemap       JSONB NOT NULL DEFAULT '{}',
			param_map     JSONB NOT NULL DEFAULT '{}',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (company_id, id)
		);
		CREATE INDEX IF NOT EXISTS idx_integrations_company_ativo
			ON integrations (company_id, ativo);
	`)
	if err != nil {
		return fmt.Errorf("erro ao criar schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, d *models.IntegrationDescriptor) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	endpoint, auth, pagination, schema, rolemap, paramMap, err := marshalBlocks(d)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO integrations
			(id, company_id, name, category_hint, ativo,
			 endpoint, auth, pagination, schema, rolemap, param_map,
			 created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, d.ID, d.CompanyID, d.Name, d.CategoryHint, d.Ativo,
		endpoint, auth, pagination, schema, rolemap, paramMap,
		d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir integração: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, companyID, id string) (*models.IntegrationDescriptor, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, company_id, name, category_hint, ativo,
		       endpoint, auth, pagination, schema, rolemap, param_map,
		       created_at, updated_at
		FROM integrations
		WHERE company_id = $1 AND id = $2
	`, companyID, id)

	d, err := scanDescriptor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrIntegrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar integração: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*models.IntegrationDescriptor, error) {
	query := `
		SELECT id, company_id, name, category_hint, ativo,
		       endpoint, auth, pagination, schema, rolemap, param_map,
		       created_at, updated_at
		FROM integrations
		WHERE company_id = $1
	`
	if onlyActive {
		query += " AND ativo"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar integrações: %w", err)
	}
	defer rows.Close()

	var out []*models.IntegrationDescriptor
	for rows.Next() {
		d, err := scanDescriptor(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler integração: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, d *models.IntegrationDescriptor) error {
	d.UpdatedAt = time.Now().UTC()

	endpoint, auth, pagination, schema, rolemap, paramMap, err := marshalBlocks(d)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE integrations
		SET name = $3, category_hint = $4, ativo = $5,
		    endpoint = $6, auth = $7, pagination = $8,
		    schema = $9, rolemap = $10, param_map = $11,
		    updated_at = $12
		WHERE company_id = $1 AND id = $2
	`, d.CompanyID, d.ID, d.Name, d.CategoryHint, d.Ativo,
		endpoint, auth, pagination, schema, rolemap, paramMap,
		d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar integração: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrIntegrationNotFound
	}
	return nil
}

func marshalBlocks(d *models.IntegrationDescriptor) (endpoint, auth, pagination, schema, rolemap, paramMap []byte, err error) {
	if endpoint, err = json.Marshal(d.Endpoint); err != nil {
		return
	}
	if auth, err = json.Marshal(d.Auth); err != nil {
		return
	}
	if pagination, err = json.Marshal(d.Pagination); err != nil {
		return
	}
	if schema, err = json.Marshal(d.Schema); err != nil {
		return
	}
	if rolemap, err = json.Marshal(d.Rolemap); err != nil {
		return
	}
	paramMap, err = json.Marshal(d.ParamMap)
	return
}

func scanDescriptor(row pgx.Row) (*models.IntegrationDescriptor, error) {
	var d models.IntegrationDescriptor
	var endpoint, auth, pagination, schema, rolemap, paramMap []byte

	err := row.Scan(&d.ID, &d.CompanyID, &d.Name, &d.CategoryHint, &d.Ativo,
		&endpoint, &auth, &pagination, &schema, &rolemap, &paramMap,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// O UnmarshalJSON de Pagination normaliza as formas históricas aqui
	if err := json.Unmarshal(endpoint, &d.Endpoint); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(auth, &d.Auth); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(pagination, &d.Pagination); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(schema, &d.Schema); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rolemap, &d.Rolemap); err != nil {
		return nil, err
	}
	if len(paramMap) > 0 {
		if err := json.Unmarshal(paramMap, &d.ParamMap); err != nil {
			return nil, err
		}
	}
	return &d, nil
}
