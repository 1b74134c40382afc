package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/marketplace-admin-api/internal/models"
	"github.com/xuri/excelize/v2"
)

var statLabels = map[models.StatField]string{
	models.FieldOrders:      "Orders",
	models.FieldSales:       "Sales",
	models.FieldRevenue:     "Revenue",
	models.FieldProducts:    "Products",
	models.FieldCustomers:   "Customers",
	models.FieldVisitors:    "Visitors",
	models.FieldFollowers:   "Followers",
	models.FieldRating:      "Rating",
	models.FieldCreditScore: "Credit Score",
}

// ExportService renders effective stats snapshots as downloadable files
type ExportService struct {
	resolver *StatsResolver
}

func NewExportService(resolver *StatsResolver) *ExportService {
	return &ExportService{resolver: resolver}
}

// Export resolves the seller's stats and renders them in the requested format (csv, xlsx, pdf)
func (s *ExportService) Export(ctx context.Context, sellerID string, timeframe models.Timeframe, format string) ([]byte, string, error) {
	stats, err := s.resolver.Resolve(ctx, sellerID, timeframe)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case "csv":
		return s.ExportCSV(ctx, stats)
	case "xlsx":
		return s.ExportXLSX(ctx, stats)
	case "pdf":
		return s.ExportPDF(ctx, stats)
	}
	return nil, "", fmt.Errorf("unsupported export format %q", format)
}

// formatStat renders a value the way the dashboard shows it
func formatStat(f models.StatField, st models.EffectiveStat) string {
	if st.Value == nil {
		return "n/a"
	}
	d := decimal.NewFromFloat(*st.Value)
	switch f.Kind() {
	case models.KindCurrency:
		return d.StringFixed(2)
	case models.KindDecimal:
		return d.StringFixed(1)
	}
	return d.StringFixed(0)
}

func exportFilename(stats *models.EffectiveStats, ext string) string {
	return fmt.Sprintf("seller_%s_stats_%s_%s.%s", stats.SellerID, stats.Timeframe, time.Now().Format("2006-01-02"), ext)
}

func (s *ExportService) ExportCSV(ctx context.Context, stats *models.EffectiveStats) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Seller Stats", stats.SellerID, string(stats.Timeframe), stats.ResolvedAt.Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Metric", "Value", "Source"})
	for _, f := range models.AllStatFields() {
		st := stats.Get(f)
		_ = writer.Write([]string{statLabels[f], formatStat(f, st), string(st.Source)})
	}
	for _, w := range stats.Warnings {
		_ = writer.Write([]string{"Warning", w})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), exportFilename(stats, "csv"), nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, stats *models.EffectiveStats) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Stats"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Seller %s (%s)", stats.SellerID, stats.Timeframe))
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Metric")
	_ = f.SetCellValue(sheet, "B3", "Value")
	_ = f.SetCellValue(sheet, "C3", "Source")

	row := 4
	for _, field := range models.AllStatFields() {
		st := stats.Get(field)
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), statLabels[field])
		if st.Value != nil {
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), *st.Value)
		} else {
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "n/a")
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(st.Source))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), exportFilename(stats, "xlsx"), nil
}

func (s *ExportService) ExportPDF(ctx context.Context, stats *models.EffectiveStats) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Seller Stats: %s", stats.SellerID))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("Timeframe: %s  Generated: %s", stats.Timeframe, stats.ResolvedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Metric", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Value", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Source", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, f := range models.AllStatFields() {
		st := stats.Get(f)
		pdf.CellFormat(60, 7, statLabels[f], "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 7, formatStat(f, st), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, string(st.Source), "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), exportFilename(stats, "pdf"), nil
}
