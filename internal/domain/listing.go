package domain

type ListingStatus string

const (
	StatusPending  ListingStatus = "PENDING_VERIFICATION"
	StatusVerified ListingStatus = "VERIFIED"
	StatusRejected ListingStatus = "REJECTED"
)

// Listing is a seller's request to put a device on the marketplace. It only
// reaches the public catalog after verification, which happens offline.
type Listing struct {
	ID        string        `db:"id"`
	Title     string        `db:"title"`
	Specs     string        `db:"specs"`
	Category  string        `db:"category"`
	Condition Condition     `db:"condition"`
	Asking    Rupees        `db:"asking"`
	Fee       Rupees        `db:"fee"`
	Payout    Rupees        `db:"payout"`
	Tier      string        `db:"tier"`
	Email     string        `db:"email"`
	ClaimHash string        `db:"claim_hash"`
	Status    ListingStatus `db:"status"`
	CreatedAt string        `db:"created_at"`
}
