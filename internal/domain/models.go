package domain

// Condition is the graded state of a listed device.
type Condition string

const (
	Excellent Condition = "Excellent"
	Good      Condition = "Good"
	Fair      Condition = "Fair"
)

// Conditions lists every accepted condition, best first.
var Conditions = []Condition{Excellent, Good, Fair}

func (c Condition) Valid() bool {
	switch c {
	case Excellent, Good, Fair:
		return true
	}
	return false
}

// AllCategories is the sentinel label that disables category filtering.
const AllCategories = "All"

// Categories is the fixed tab order shown on the marketplace.
var Categories = []string{AllCategories, "Phones", "Laptops", "Tablets", "Audio", "Cameras", "Wearables", "Gaming"}

type Product struct {
	ID            string    `db:"id" csv:"id" json:"id"`
	Title         string    `db:"title" csv:"title" json:"title"`
	Price         Rupees    `db:"price" csv:"price" json:"price"`
	Image         string    `db:"image" csv:"image" json:"image"`
	Specs         string    `db:"specs" csv:"specs" json:"specs"`
	Condition     Condition `db:"condition" csv:"condition" json:"condition"`
	Category      string    `db:"category" csv:"category" json:"category"`
	Verified      bool      `db:"verified" csv:"verified" json:"verified"`
	EscrowSecured bool      `db:"escrow_secured" csv:"escrow_secured" json:"escrowSecured"`
}
