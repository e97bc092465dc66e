package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCatalogImportThenExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DSN", filepath.Join(dir, "bludify.db"))
	t.Setenv("LOG_FILE", "")

	csvPath := filepath.Join(dir, "more.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"id,title,price,image,specs,condition,category,verified,escrow_secured\n"+
			"BLD-4040-PX,Pixel 8 Pro,61000,https://picsum.photos/400/400,Obsidian • 128GB,Good,Phones,true,false\n"+
			"BLD-9921-AB,iPhone 14 Pro,79000,https://picsum.photos/400/400?grayscale&random=2,Deep Purple • 256GB,Good,Phones,true,true\n",
	), 0o644))

	out := run(t, "catalog", "import", csvPath)
	assert.Contains(t, out, "imported 2 products (1 new)")

	xlsxPath := filepath.Join(dir, "phones.xlsx")
	out = run(t, "catalog", "export", xlsxPath, "--category", "Phones")
	assert.Contains(t, out, "wrote 3 of 10 products")

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Catalog")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	// seeded order first, imports after
	assert.Equal(t, "BLD-9921-AB", rows[1][0])
	assert.Equal(t, "BLD-9900-KL", rows[2][0])
	assert.Equal(t, "BLD-4040-PX", rows[3][0])
}

func TestCatalogExportRejectsBadFilter(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DSN", filepath.Join(dir, "bludify.db"))

	rootCmd.SetArgs([]string{"catalog", "export", filepath.Join(dir, "x.xlsx"), "--q", "<b>", "--category", "All"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
	exportQuery = ""
}
