package domain

// Step is one numbered stage of a process shown on a page.
type Step struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Wide        bool   `yaml:"wide"`
	Tall        bool   `yaml:"tall"`
}

type PricingTier struct {
	Key        string      `yaml:"key"`
	Name       string      `yaml:"name"`
	FeeBps     BasisPoints `yaml:"fee_bps"`
	Features   []string    `yaml:"features"`
	CTA        string      `yaml:"cta"`
	Popular    bool        `yaml:"popular"`
	BulkUpload bool        `yaml:"bulk_upload"`
}

type Checkpoint struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Checks      []string `yaml:"checks"`
}

type VerificationLevel struct {
	Level       string `yaml:"level"`
	Score       string `yaml:"score"`
	Badge       string `yaml:"badge"`
	Description string `yaml:"description"`
}

// TickerItem is a recent market price shown on the home page strip.
type TickerItem struct {
	Name     string  `yaml:"name"`
	Price    Rupees  `yaml:"price"`
	TrendPct float64 `yaml:"trend_pct"`
}

func (t TickerItem) Up() bool { return t.TrendPct >= 0 }

type Hero struct {
	Badge    string `yaml:"badge"`
	Headline string `yaml:"headline"`
	Subline  string `yaml:"subline"`
	CTA      string `yaml:"cta"`
}
