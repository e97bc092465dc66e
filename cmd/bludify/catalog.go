package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bludify/internal/catalog"
	"bludify/internal/content"
	applog "bludify/internal/log"
	"bludify/internal/repos"
	"bludify/internal/services"
	"bludify/internal/validate"
)

var (
	exportQuery    string
	exportCategory string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog",
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Add or update products from a CSV file",
	Long:  "Add or update products from a CSV file with the header id,title,price,image,specs,condition,category,verified,escrow_secured. A running server picks the changes up on restart.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write the (optionally filtered) catalog to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportQuery, "q", "", "Search text matched against title and specs")
	exportCmd.Flags().StringVar(&exportCategory, "category", "All", "Category to keep")
	catalogCmd.AddCommand(importCmd, exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ps, err := content.DecodeProducts(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := repos.NewProductRepo(db).Upsert(ps)
	if err != nil {
		return err
	}
	applog.Audit(nil, "catalog.import", map[string]any{"file": args[0], "rows": len(ps), "added": added})
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d products (%d new)\n", len(ps), added)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	q, ok := validate.Q(exportQuery)
	if !ok {
		return fmt.Errorf("invalid --q %q", exportQuery)
	}
	category, ok := validate.Category(exportCategory)
	if !ok {
		return fmt.Errorf("invalid --category %q", exportCategory)
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	all, err := repos.NewProductRepo(db).All()
	if err != nil {
		return err
	}
	ps := catalog.Filter(all, q, category)

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := services.WriteXLSX(f, ps); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	applog.Audit(nil, "catalog.export", map[string]any{"file": args[0], "count": len(ps)})
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d of %d products to %s\n", len(ps), len(all), args[0])
	return nil
}
