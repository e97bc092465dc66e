package repos

import (
	"github.com/jmoiron/sqlx"

	"bludify/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// All returns every product in catalog order.
func (r *ProductRepo) All() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, title, price, image, specs, condition, category, verified, escrow_secured
	  FROM products
	  ORDER BY position, id
	`)
	return out, err
}

// Upsert inserts new products at the end of the catalog and updates existing
// ones in place, keeping their position. It reports how many rows were new.
func (r *ProductRepo) Upsert(ps []domain.Product) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.Get(&next, `SELECT COALESCE(MAX(position), 0) + 1 FROM products`); err != nil {
		return 0, err
	}
	added := 0
	for _, p := range ps {
		var exists int
		if err := tx.Get(&exists, `SELECT COUNT(*) FROM products WHERE id = ?`, p.ID); err != nil {
			return 0, err
		}
		if exists == 0 {
			added++
		}
		if _, err := tx.Exec(`
		  INSERT INTO products(id, position, title, price, image, specs, condition, category, verified, escrow_secured)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		  ON CONFLICT(id) DO UPDATE SET
		    title = excluded.title, price = excluded.price, image = excluded.image,
		    specs = excluded.specs, condition = excluded.condition, category = excluded.category,
		    verified = excluded.verified, escrow_secured = excluded.escrow_secured,
		    updated_at = CURRENT_TIMESTAMP
		`, p.ID, next, p.Title, p.Price, p.Image, p.Specs, p.Condition, p.Category, p.Verified, p.EscrowSecured); err != nil {
			return 0, err
		}
		next++
	}
	return added, tx.Commit()
}
