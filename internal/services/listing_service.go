package services

import (
	"database/sql"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jszwec/csvutil"
	"golang.org/x/crypto/bcrypt"

	"bludify/internal/domain"
	"bludify/internal/repos"
	"bludify/internal/validate"
)

const MaxBulkRows = 100

// TierLookup resolves a seller tier key.
type TierLookup interface {
	Tier(key string) (domain.PricingTier, bool)
}

type ListingService struct {
	Repo  *repos.ListingRepo
	Tiers TierLookup
	// Cost is the bcrypt cost for claim codes.
	Cost int

	dummyOnce sync.Once
	dummy     []byte
}

func NewListingService(repo *repos.ListingRepo, tiers TierLookup) *ListingService {
	return &ListingService{Repo: repo, Tiers: tiers, Cost: bcrypt.DefaultCost}
}

type ListingInput struct {
	Title     string `csv:"title"`
	Specs     string `csv:"specs"`
	Category  string `csv:"category"`
	Condition string `csv:"condition"`
	Asking    string `csv:"asking"`
	Email     string `csv:"-"`
	Tier      string `csv:"-"`
}

// Receipt is what the seller gets back once: the claim code is never stored
// in clear text.
type Receipt struct {
	Listing domain.Listing
	Code    string
}

// Quote estimates the fee and payout for an asking price under a tier.
func Quote(tier domain.PricingTier, asking domain.Rupees) (fee, payout domain.Rupees) {
	fee = tier.FeeBps.Of(asking)
	return fee, asking - fee
}

func (s *ListingService) build(in ListingInput, line int) (domain.Listing, error) {
	bad := func(field string) error { return &ValidationError{Line: line, Field: field} }

	tierKey, ok := validate.Tier(in.Tier)
	if !ok {
		return domain.Listing{}, bad("tier")
	}
	tier, ok := s.Tiers.Tier(tierKey)
	if !ok {
		return domain.Listing{}, bad("tier")
	}
	title, ok := validate.Title(in.Title)
	if !ok {
		return domain.Listing{}, bad("title")
	}
	specs, ok := validate.Specs(in.Specs)
	if !ok {
		return domain.Listing{}, bad("specs")
	}
	category, ok := validate.ListingCategory(in.Category)
	if !ok {
		return domain.Listing{}, bad("category")
	}
	cond, ok := validate.Condition(in.Condition)
	if !ok {
		return domain.Listing{}, bad("condition")
	}
	asking, ok := validate.Price(in.Asking)
	if !ok {
		return domain.Listing{}, bad("price")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Listing{}, bad("email")
	}
	fee, payout := Quote(tier, asking)
	return domain.Listing{
		Title:     title,
		Specs:     specs,
		Category:  category,
		Condition: cond,
		Asking:    asking,
		Fee:       fee,
		Payout:    payout,
		Tier:      tier.Key,
		Email:     email,
		Status:    domain.StatusPending,
	}, nil
}

// issue assigns a reference and claim code. taken holds refs already used in
// the same batch.
func (s *ListingService) issue(l *domain.Listing, taken map[string]bool) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		ref := newRef()
		if taken[ref] {
			continue
		}
		exists, err := s.Repo.Exists(ref)
		if err != nil {
			return "", err
		}
		if exists {
			continue
		}
		code := newCode()
		hash, err := bcrypt.GenerateFromPassword([]byte(code), s.Cost)
		if err != nil {
			return "", err
		}
		l.ID = ref
		l.ClaimHash = string(hash)
		taken[ref] = true
		return code, nil
	}
	return "", errors.New("could not allocate a listing reference")
}

// Submit validates and stores one listing.
func (s *ListingService) Submit(in ListingInput) (Receipt, error) {
	l, err := s.build(in, 0)
	if err != nil {
		return Receipt{}, err
	}
	code, err := s.issue(&l, map[string]bool{})
	if err != nil {
		return Receipt{}, err
	}
	if err := s.Repo.Create(l); err != nil {
		return Receipt{}, fmt.Errorf("store listing: %w", err)
	}
	return Receipt{Listing: l, Code: code}, nil
}

// SubmitBulk reads a header-first CSV (title,specs,category,condition,asking)
// and stores every row or none. Only tiers with bulk upload may use it.
func (s *ListingService) SubmitBulk(tierKey, email string, r io.Reader) ([]Receipt, error) {
	key, ok := validate.Tier(tierKey)
	if !ok {
		return nil, &ValidationError{Field: "tier"}
	}
	tier, ok := s.Tiers.Tier(key)
	if !ok {
		return nil, &ValidationError{Field: "tier"}
	}
	if !tier.BulkUpload {
		return nil, ErrBulkNotAllowed
	}

	cr := csv.NewReader(r)
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyUpload
		}
		return nil, &ValidationError{Line: 1, Field: "header"}
	}
	for _, h := range []string{"title", "category", "condition", "asking"} {
		if !hasHeader(dec.Header(), h) {
			return nil, &ValidationError{Line: 1, Field: "header"}
		}
	}

	var rows []ListingInput
	var lines []int
	for {
		var in ListingInput
		if err := dec.Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ValidationError{Line: errorLine(err), Field: "row"}
		}
		// quoted fields may span lines, so take the position from the reader
		line, _ := cr.FieldPos(0)
		rows = append(rows, in)
		lines = append(lines, line)
		if len(rows) > MaxBulkRows {
			return nil, ErrTooManyRows
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyUpload
	}

	taken := map[string]bool{}
	listings := make([]domain.Listing, 0, len(rows))
	receipts := make([]Receipt, 0, len(rows))
	for i, in := range rows {
		in.Email, in.Tier = email, key
		l, err := s.build(in, lines[i])
		if err != nil {
			return nil, err
		}
		code, err := s.issue(&l, taken)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
		receipts = append(receipts, Receipt{Listing: l, Code: code})
	}
	if err := s.Repo.CreateBatch(listings); err != nil {
		return nil, fmt.Errorf("store listings: %w", err)
	}
	return receipts, nil
}

// Status returns the listing when code matches. An unknown reference and a
// wrong code give the same error.
func (s *ListingService) Status(ref, code string) (domain.Listing, error) {
	l, err := s.Repo.Get(ref)
	if errors.Is(err, sql.ErrNoRows) {
		// same bcrypt work as a wrong code, so timing does not reveal which refs exist
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(code))
		return domain.Listing{}, ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(l.ClaimHash), []byte(code)) != nil {
		return domain.Listing{}, ErrNotFound
	}
	return l, nil
}

// dummyHash is a hash of a random code at the service's cost, compared
// against when a reference is unknown.
func (s *ListingService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(newCode()), s.Cost)
		if err != nil {
			h = []byte{}
		}
		s.dummy = h
	})
	return s.dummy
}

// errorLine is the line a malformed record starts on, or 0 when the error
// does not carry one.
func errorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.StartLine
	}
	return 0
}

func hasHeader(hs []string, want string) bool {
	for _, h := range hs {
		if h == want {
			return true
		}
	}
	return false
}

const refAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newRef builds a BLD-NNNN-XX reference from a random UUID.
func newRef() string {
	u := uuid.New()
	n := binary.BigEndian.Uint16(u[0:2]) % 10000
	return fmt.Sprintf("BLD-%04d-%c%c", n, refAlphabet[int(u[2])%len(refAlphabet)], refAlphabet[int(u[3])%len(refAlphabet)])
}

func newCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
