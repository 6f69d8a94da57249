package reports

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/granjalabs/granjapos/internal/domain"
)

// WriteXLSX renders a summary plus its daily series as a spreadsheet.
func WriteXLSX(w io.Writer, summary Summary, series []DayBucket) error {
	f := excelize.NewFile()
	sheet := "Reporte"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Ingresos")
	f.SetCellValue(sheet, "B1", Round2(summary.Revenue))
	f.SetCellValue(sheet, "A2", "Costo de ventas")
	f.SetCellValue(sheet, "B2", Round2(summary.COGS))
	f.SetCellValue(sheet, "A3", "Ganancia neta")
	f.SetCellValue(sheet, "B3", Round2(summary.NetProfit))
	f.SetCellValue(sheet, "A4", "Margen %")
	f.SetCellValue(sheet, "B4", Round2(summary.MarginPct))
	f.SetCellValue(sheet, "A5", "Valor de inventario")
	f.SetCellValue(sheet, "B5", Round2(summary.InventoryValue))
	f.SetCellValue(sheet, "A6", "Pedidos")
	f.SetCellValue(sheet, "B6", summary.OrderCount)

	f.SetCellValue(sheet, "A8", "Día")
	f.SetCellValue(sheet, "B8", "Ingresos")
	f.SetCellValue(sheet, "C8", "Ganancia")
	for i, b := range series {
		row := 9 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), Round2(b.Revenue))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), Round2(b.Profit))
	}

	return f.Write(w)
}

// catalogRow is the CSV shape of a product for import/export.
type catalogRow struct {
	ID       string  `csv:"id"`
	Name     string  `csv:"name"`
	Category string  `csv:"category"`
	Unit     string  `csv:"unit"`
	Price    float64 `csv:"price"`
	Cost     float64 `csv:"cost"`
	Stock    float64 `csv:"stock"`
	MinStock float64 `csv:"min_stock"`
}

// WriteCatalogCSV exports the product catalog.
func WriteCatalogCSV(w io.Writer, products []domain.Product) error {
	rows := make([]catalogRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, catalogRow{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Unit:     p.Unit,
			Price:    p.Price,
			Cost:     p.Cost,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// ReadCatalogCSV parses a catalog export back into products. Ids may be
// empty; the caller assigns fresh ones for new rows.
func ReadCatalogCSV(r io.Reader) ([]domain.Product, error) {
	var rows []catalogRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.Product{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Unit:     row.Unit,
			Price:    row.Price,
			Cost:     row.Cost,
			Stock:    row.Stock,
			MinStock: row.MinStock,
		})
	}
	return products, nil
}
