package content_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bludify/internal/content"
	"bludify/internal/domain"
)

func TestLoadSite(t *testing.T) {
	s, err := content.LoadSite()
	require.NoError(t, err)

	assert.Len(t, s.Protocol, 3)
	assert.Len(t, s.SellerSteps, 4)
	assert.Len(t, s.Checkpoints, 6)
	assert.Len(t, s.Levels, 3)
	assert.NotEmpty(t, s.Ticker)

	power, ok := s.Tier("power")
	require.True(t, ok)
	assert.Equal(t, domain.BasisPoints(300), power.FeeBps)
	assert.True(t, power.Popular)
	assert.True(t, power.BulkUpload)

	guest, ok := s.Tier("guest")
	require.True(t, ok)
	assert.False(t, guest.BulkUpload)

	_, ok = s.Tier("platinum")
	assert.False(t, ok)
}

func TestParseSiteRejectsBadContent(t *testing.T) {
	_, err := content.ParseSite([]byte("tiers: []\n"))
	assert.Error(t, err)

	_, err = content.ParseSite([]byte("tiers:\n  - {key: a, fee_bps: 20000}\n"))
	assert.Error(t, err)

	_, err = content.ParseSite([]byte("tiers:\n  - {key: a}\n  - {key: a}\n"))
	assert.Error(t, err)

	_, err = content.ParseSite([]byte("tiers:\n  - {key: a}\nunknown: 1\n"))
	assert.Error(t, err)
}

func TestSeedProducts(t *testing.T) {
	ps, err := content.SeedProducts()
	require.NoError(t, err)
	require.Len(t, ps, 9)

	iphone := ps[1]
	assert.Equal(t, "BLD-9921-AB", iphone.ID)
	assert.Equal(t, "iPhone 14 Pro", iphone.Title)
	assert.Equal(t, "Deep Purple • 256GB", iphone.Specs)
	assert.Equal(t, domain.Rupees(82000), iphone.Price)
	assert.Equal(t, domain.Good, iphone.Condition)
	assert.Equal(t, "Phones", iphone.Category)
	assert.True(t, iphone.Verified)
	assert.True(t, iphone.EscrowSecured)

	for _, p := range ps {
		assert.Contains(t, domain.Categories, p.Category, p.ID)
	}
}

func TestDecodeProductsValidation(t *testing.T) {
	const header = "id,title,price,image,specs,condition,category,verified,escrow_secured\n"

	ps, err := content.DecodeProducts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ps)

	_, err = content.DecodeProducts(strings.NewReader(header + "X-1,Thing,10,,,Mint,Phones,true,true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = content.DecodeProducts(strings.NewReader(header + ",Thing,10,,,Good,Phones,true,true\n"))
	assert.Error(t, err)

	_, err = content.DecodeProducts(strings.NewReader(header + "X-1,Thing,ten,,,Good,Phones,true,true\n"))
	assert.Error(t, err)
}
