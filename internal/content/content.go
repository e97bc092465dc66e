// Package content loads the marketing copy and sample catalog that ship
// inside the binary.
package content

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
	"gopkg.in/yaml.v3"

	"bludify/internal/domain"
)

//go:embed data/site.yaml data/products.csv
var files embed.FS

// Site is everything the static sections of the pages render.
type Site struct {
	Hero        domain.Hero                `yaml:"hero"`
	Ticker      []domain.TickerItem        `yaml:"ticker"`
	Protocol    []domain.Step              `yaml:"protocol"`
	Features    []domain.Feature           `yaml:"features"`
	SellerSteps []domain.Step              `yaml:"seller_steps"`
	SellerPerks []domain.Feature           `yaml:"seller_perks"`
	Tiers       []domain.PricingTier       `yaml:"tiers"`
	Checkpoints []domain.Checkpoint        `yaml:"checkpoints"`
	Levels      []domain.VerificationLevel `yaml:"levels"`
	Accepted    []string                   `yaml:"accepted"`
	Rejected    []string                   `yaml:"rejected"`
}

// Tier looks a seller tier up by key.
func (s *Site) Tier(key string) (domain.PricingTier, bool) {
	for _, t := range s.Tiers {
		if t.Key == key {
			return t, true
		}
	}
	return domain.PricingTier{}, false
}

// LoadSite parses the embedded site.yaml.
func LoadSite() (*Site, error) {
	b, err := files.ReadFile("data/site.yaml")
	if err != nil {
		return nil, err
	}
	return ParseSite(b)
}

func ParseSite(b []byte) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	if len(s.Tiers) == 0 {
		return nil, fmt.Errorf("parse site content: no seller tiers")
	}
	seen := map[string]bool{}
	for _, t := range s.Tiers {
		if t.Key == "" || seen[t.Key] {
			return nil, fmt.Errorf("parse site content: bad tier key %q", t.Key)
		}
		if t.FeeBps < 0 || t.FeeBps > 10000 {
			return nil, fmt.Errorf("parse site content: tier %s fee out of range", t.Key)
		}
		seen[t.Key] = true
	}
	return &s, nil
}

// SeedProducts decodes the embedded sample catalog.
func SeedProducts() ([]domain.Product, error) {
	f, err := files.Open("data/products.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeProducts(f)
}

// DecodeProducts reads a header-first CSV of products, rejecting rows with an
// unknown condition or a missing id/title.
func DecodeProducts(r io.Reader) ([]domain.Product, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if err == io.EOF {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	var out []domain.Product
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode products CSV: %w", err)
	}
	for i, p := range out {
		row := i + 2 // header is line 1
		if p.ID == "" || p.Title == "" {
			return nil, fmt.Errorf("products CSV line %d: id and title are required", row)
		}
		if !p.Condition.Valid() {
			return nil, fmt.Errorf("products CSV line %d: unknown condition %q", row, p.Condition)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("products CSV line %d: negative price", row)
		}
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}
