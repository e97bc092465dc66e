package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bludify/internal/domain"
	"bludify/internal/validate"
)

func TestQ(t *testing.T) {
	q, ok := validate.Q("  iPhone 14 ")
	assert.True(t, ok)
	assert.Equal(t, "iPhone 14", q)

	q, ok = validate.Q("")
	assert.True(t, ok)
	assert.Equal(t, "", q)

	_, ok = validate.Q("Deep Purple • 256GB")
	assert.True(t, ok)

	for _, bad := range []string{"<script>", "a\x00b", "tab\there", strings.Repeat("x", validate.MaxQueryRunes+1)} {
		_, ok := validate.Q(bad)
		assert.False(t, ok, "%q", bad)
	}
	_, ok = validate.Q(strings.Repeat("é", validate.MaxQueryRunes))
	assert.True(t, ok)
}

func TestCategory(t *testing.T) {
	c, ok := validate.Category("")
	assert.True(t, ok)
	assert.Equal(t, domain.AllCategories, c)

	c, ok = validate.Category(" Phones ")
	assert.True(t, ok)
	assert.Equal(t, "Phones", c)

	_, ok = validate.Category("Drones")
	assert.True(t, ok)

	for _, bad := range []string{"Phones;DROP", "a b", "x1", strings.Repeat("a", 21)} {
		_, ok := validate.Category(bad)
		assert.False(t, ok, bad)
	}

	_, ok = validate.ListingCategory("All")
	assert.False(t, ok)
	_, ok = validate.ListingCategory("Gaming")
	assert.True(t, ok)
}

func TestPrice(t *testing.T) {
	for in, want := range map[string]domain.Rupees{
		"82000":    82000,
		"1,85,000": 185000,
		"₹ 45,000": 45000,
		"10000000": 10000000,
	} {
		got, ok := validate.Price(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "0", "-5", "12.50", "abc", "10000001"} {
		_, ok := validate.Price(bad)
		assert.False(t, ok, bad)
	}
}

func TestListingFields(t *testing.T) {
	_, ok := validate.Title("iPhone 14 Pro")
	assert.True(t, ok)
	_, ok = validate.Title("x")
	assert.False(t, ok)
	_, ok = validate.Title("<b>bold</b>")
	assert.False(t, ok)

	_, ok = validate.Specs("")
	assert.True(t, ok)

	c, ok := validate.Condition("Fair")
	assert.True(t, ok)
	assert.Equal(t, domain.Fair, c)
	_, ok = validate.Condition("Broken")
	assert.False(t, ok)

	_, ok = validate.Email("seller@bludify.test")
	assert.True(t, ok)
	_, ok = validate.Email("nope")
	assert.False(t, ok)

	r, ok := validate.Ref("bld-1234-ab")
	assert.True(t, ok)
	assert.Equal(t, "BLD-1234-AB", r)
	_, ok = validate.Ref("BLD-12-AB")
	assert.False(t, ok)

	_, ok = validate.Code("3f9a0c12d4e5")
	assert.True(t, ok)
	_, ok = validate.Code("zz")
	assert.False(t, ok)

	tier, ok := validate.Tier("Power")
	assert.True(t, ok)
	assert.Equal(t, "power", tier)
}
