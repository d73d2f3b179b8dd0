// Package sqlite implements the repository interfaces over a single SQLite
// file via database/sql. Schema is applied at Open so callers never
// coordinate migrations themselves.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/seoulstyle/storefront/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	cust_id         TEXT PRIMARY KEY,
	cust_pwd        TEXT NOT NULL,
	cust_name       TEXT NOT NULL,
	phone           TEXT NOT NULL DEFAULT '',
	agree_terms     INTEGER NOT NULL DEFAULT 0,
	agree_privacy   INTEGER NOT NULL DEFAULT 0,
	agree_marketing INTEGER NOT NULL DEFAULT 0,
	created_at      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	prod_cd    TEXT PRIMARY KEY,
	prod_name  TEXT NOT NULL,
	price      INTEGER NOT NULL,
	prod_type  TEXT NOT NULL DEFAULT '',
	material   TEXT NOT NULL DEFAULT '',
	prod_img   TEXT NOT NULL DEFAULT '',
	prod_intro TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS carts (
	cart_seq_no TEXT PRIMARY KEY,
	cust_id     TEXT NOT NULL REFERENCES customers(cust_id),
	prod_cd     TEXT NOT NULL,
	prod_size   TEXT NOT NULL,
	ord_qty     INTEGER NOT NULL,
	ord_yn      INTEGER NOT NULL DEFAULT 0,
	ord_no      INTEGER,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_carts_cust ON carts(cust_id, ord_yn);

CREATE TABLE IF NOT EXISTS orders (
	ord_no     INTEGER PRIMARY KEY,
	cust_id    TEXT NOT NULL,
	ord_date   INTEGER NOT NULL,
	ord_amount INTEGER NOT NULL,
	ord_status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_cust ON orders(cust_id, ord_date DESC);

CREATE TABLE IF NOT EXISTS ord_items (
	ord_item_no    TEXT PRIMARY KEY,
	ord_no         INTEGER NOT NULL REFERENCES orders(ord_no),
	cart_seq_no    TEXT NOT NULL,
	prod_cd        TEXT NOT NULL,
	prod_name      TEXT NOT NULL,
	prod_size      TEXT NOT NULL,
	ord_qty        INTEGER NOT NULL,
	price          INTEGER NOT NULL,
	review_written INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_ord_items_ord ON ord_items(ord_no);

CREATE TABLE IF NOT EXISTS prod_evals (
	eval_seq_no  TEXT PRIMARY KEY,
	cust_id      TEXT NOT NULL,
	cust_name    TEXT NOT NULL,
	prod_cd      TEXT NOT NULL,
	ord_no       INTEGER NOT NULL,
	ord_item_no  TEXT NOT NULL UNIQUE,
	eval_score   INTEGER NOT NULL,
	eval_comment TEXT NOT NULL DEFAULT '',
	eval_date    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evals_prod ON prod_evals(prod_cd, eval_date DESC);
`

// Store owns the database handle shared by every repository.
type Store struct {
	db *sql.DB
}

// Open opens the storefront SQLite store and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Stores exposes the repository bundle backed by this handle.
func (s *Store) Stores() store.Stores {
	return store.Stores{
		Customers: &Customers{db: s.db},
		Products:  &Products{db: s.db},
		Carts:     &Carts{db: s.db},
		Orders:    &Orders{db: s.db, nowFunc: time.Now},
		Reviews:   &Reviews{db: s.db, nowFunc: time.Now},
	}
}

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
