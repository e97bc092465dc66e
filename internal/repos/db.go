package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"bludify/internal/content"
	applog "bludify/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	// Seed the sample catalog if the products table is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog (read-only while the server runs)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  price INTEGER NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT '',
  specs TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL CHECK (condition IN ('Excellent','Good','Fair')),
  category TEXT NOT NULL DEFAULT '',
  verified INTEGER NOT NULL DEFAULT 1,
  escrow_secured INTEGER NOT NULL DEFAULT 1,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);

-- Seller listings awaiting verification
CREATE TABLE IF NOT EXISTS listings(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  specs TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  condition TEXT NOT NULL CHECK (condition IN ('Excellent','Good','Fair')),
  asking INTEGER NOT NULL CHECK (asking > 0),
  fee INTEGER NOT NULL CHECK (fee >= 0),
  payout INTEGER NOT NULL,
  tier TEXT NOT NULL,
  email TEXT NOT NULL,
  claim_hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING_VERIFICATION',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_listings_email ON listings(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	ps, err := content.SeedProducts()
	if err != nil {
		return err
	}
	applog.Info(nil, "seed.products", map[string]any{"count": len(ps)})
	_, err = NewProductRepo(db).Upsert(ps)
	return err
}
