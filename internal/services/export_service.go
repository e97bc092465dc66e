package services

import (
	"io"

	"github.com/xuri/excelize/v2"

	"bludify/internal/domain"
)

const exportSheet = "Catalog"

var exportHeader = []any{"ID", "Title", "Category", "Specs", "Condition", "Price (INR)", "Verified", "Escrow Secured", "Image"}

// WriteXLSX writes products as a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return err
	}
	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{p.ID, p.Title, p.Category, p.Specs, string(p.Condition), int64(p.Price), p.Verified, p.EscrowSecured, p.Image}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "B", 24); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
