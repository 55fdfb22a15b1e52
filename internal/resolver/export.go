package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"datanorm/internal"
)

// ExportResolutionToXLSX writes one resolution as a review sheet: one
// row per supplier part, the shared part and manufacturer fields
// repeated, ambiguities appended below.
func ExportResolutionToXLSX(res internal.Resolution, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"code", "status", "part_name", "part_description", "category_path", "keywords", "units",
		"manufacturer", "mpn",
		"supplier", "sku", "unit", "price", "price_unit", "currency", "pack_quantity", "link",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	writeRow := func(supplier *internal.SupplierPartDraft) {
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, res.Code)
		set(2, string(res.Status))
		if res.Part != nil {
			set(3, res.Part.Name)
			set(4, res.Part.Description)
			set(5, strings.Join(res.Part.CategoryPath, "/"))
			set(6, strings.Join(res.Part.Keywords, ","))
			set(7, res.Part.Units)
		}
		if res.Manufacturer != nil {
			set(8, res.Manufacturer.Name)
		}
		if res.ManufacturerPart != nil {
			set(9, res.ManufacturerPart.MPN)
		}
		if supplier != nil {
			set(10, supplier.SupplierName)
			set(11, supplier.SKU)
			set(12, supplier.Unit)
			if supplier.Price != nil {
				set(13, *supplier.Price)
			}
			set(14, supplier.PriceUnit)
			set(15, supplier.Currency)
			set(16, supplier.PackQuantity)
			set(17, supplier.Link)
		}
		row++
	}

	if len(res.SupplierParts) == 0 {
		writeRow(nil)
	}
	for i := range res.SupplierParts {
		writeRow(&res.SupplierParts[i])
	}

	for _, amb := range res.Ambiguous {
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, amb.EAN)
		set(2, "AMBIGUOUS_IN_GROUP")
		set(10, amb.Comment)
		set(11, strings.Join(amb.ArticleNumbers, ","))
		row++
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
