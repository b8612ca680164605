package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// DraftSchema creates the table used by the postgres draft repository.
const DraftSchema = `
CREATE TABLE IF NOT EXISTS order_drafts (
	id           UUID PRIMARY KEY,
	order_number TEXT        NOT NULL DEFAULT '',
	lines        JSONB       NOT NULL DEFAULT '[]',
	catalog      JSONB       NOT NULL DEFAULT '[]',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type postgresDrafts struct{ db *sql.DB }

func NewPostgresDraftRepository(db *sql.DB) DraftRepository { return &postgresDrafts{db: db} }

// MigrateDrafts applies DraftSchema.
func MigrateDrafts(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, DraftSchema); err != nil {
		return fmt.Errorf("migrate order_drafts: %w", err)
	}
	return nil
}

func (r *postgresDrafts) Create(ctx context.Context, d *Draft) error {
	lines, catalog, err := encodeDraft(d)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO order_drafts (id, order_number, lines, catalog, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.OrderNumber, lines, catalog, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order_draft: %w", err)
	}
	return nil
}

func (r *postgresDrafts) Get(ctx context.Context, id string) (*Draft, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrDraftNotFound
	}
	var (
		d              Draft
		lines, catalog []byte
	)
	err = r.db.QueryRowContext(ctx, `
		SELECT id, order_number, lines, catalog, created_at, updated_at
		FROM order_drafts WHERE id=$1`, uid).
		Scan(&d.ID, &d.OrderNumber, &lines, &catalog, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select order_draft: %w", err)
	}
	if err := json.Unmarshal(lines, &d.Lines); err != nil {
		return nil, fmt.Errorf("decode draft lines: %w", err)
	}
	if err := json.Unmarshal(catalog, &d.Catalog); err != nil {
		return nil, fmt.Errorf("decode draft catalog: %w", err)
	}
	return &d, nil
}

func (r *postgresDrafts) Update(ctx context.Context, d *Draft) error {
	lines, catalog, err := encodeDraft(d)
	if err != nil {
		return err
	}
	d.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE order_drafts SET order_number=$2, lines=$3, catalog=$4, updated_at=$5
		WHERE id=$1`,
		d.ID, d.OrderNumber, lines, catalog, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order_draft: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

func (r *postgresDrafts) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_drafts WHERE id=$1`, uid); err != nil {
		return fmt.Errorf("delete order_draft: %w", err)
	}
	return nil
}

func encodeDraft(d *Draft) (lines, catalog []byte, err error) {
	if d.Lines == nil {
		lines = []byte("[]")
	} else if lines, err = json.Marshal(d.Lines); err != nil {
		return nil, nil, fmt.Errorf("encode draft lines: %w", err)
	}
	if d.Catalog == nil {
		catalog = []byte("[]")
	} else if catalog, err = json.Marshal(d.Catalog); err != nil {
		return nil, nil, fmt.Errorf("encode draft catalog: %w", err)
	}
	return lines, catalog, nil
}
