package repos

import (
	"github.com/jmoiron/sqlx"

	"bludify/internal/domain"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const insertListing = `
  INSERT INTO listings(id, title, specs, category, condition, asking, fee, payout, tier, email, claim_hash, status)
  VALUES (:id, :title, :specs, :category, :condition, :asking, :fee, :payout, :tier, :email, :claim_hash, :status)`

func (r *ListingRepo) Create(l domain.Listing) error {
	_, err := r.db.NamedExec(insertListing, l)
	return err
}

// CreateBatch stores all listings or none.
func (r *ListingRepo) CreateBatch(ls []domain.Listing) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, l := range ls {
		if _, err := tx.NamedExec(insertListing, l); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns sql.ErrNoRows when id is unknown.
func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `
	  SELECT id, title, specs, category, condition, asking, fee, payout, tier, email, claim_hash, status,
	         COALESCE(created_at, '') AS created_at
	  FROM listings
	  WHERE id = ?
	`, id)
	return l, err
}

func (r *ListingRepo) Exists(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM listings WHERE id = ?`, id)
	return n > 0, err
}
