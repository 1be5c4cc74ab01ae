// Package pdf renders already-computed ledger data into paginated PDF
// reports. It is a pure consumer: it never touches the store and derives
// nothing beyond layout.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/pkg/dates"
)

const (
	pageBreakY  = 270.0
	topMargin   = 20.0
	tableLeft   = 15.0
	tableRight  = 190.0
	rowHeight   = 7.0
	currencyTag = "LKR"
)

// Header band and row border colors, matching the admin dashboard palette.
var (
	headerColor = [3]int{37, 99, 235}   // #2563eb
	borderColor = [3]int{229, 231, 235} // #e5e7eb
)

// Exporter renders worker statements and the all-workers summary.
type Exporter struct {
	logger *zap.Logger
}

// New wires a PDF exporter.
func New(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

type page struct {
	doc *fpdf.Fpdf
	y   float64
}

func newPage() *page {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	return &page{doc: doc, y: topMargin}
}

func (p *page) breakIfNeeded() {
	if p.y > pageBreakY {
		p.doc.AddPage()
		p.y = topMargin
	}
}

func (p *page) titleBand(title string) {
	p.doc.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	p.doc.Rect(10, p.y, 190, 15, "F")
	p.doc.SetTextColor(255, 255, 255)
	p.doc.SetFont("Helvetica", "B", 18)
	p.doc.Text(tableLeft, p.y+10, title)
	p.y += 25
}

func (p *page) sectionTitle(title string) {
	p.breakIfNeeded()
	p.doc.SetTextColor(0, 0, 0)
	p.doc.SetFont("Helvetica", "B", 12)
	p.doc.Text(tableLeft, p.y, title)
	p.y += 8
}

func (p *page) tableHeader(cols []string, xs []float64) {
	p.breakIfNeeded()
	p.doc.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	p.doc.Rect(tableLeft, p.y, tableRight-tableLeft, 8, "F")
	p.doc.SetTextColor(255, 255, 255)
	p.doc.SetFont("Helvetica", "B", 10)
	for i, col := range cols {
		p.doc.Text(xs[i], p.y+5.5, col)
	}
	p.y += 8
	p.doc.SetTextColor(0, 0, 0)
}

func (p *page) tableRow(cells []string, xs []float64) {
	p.breakIfNeeded()
	p.doc.SetDrawColor(borderColor[0], borderColor[1], borderColor[2])
	p.doc.SetLineWidth(0.1)
	p.doc.Line(tableLeft, p.y, tableRight, p.y)
	p.doc.SetFont("Helvetica", "", 9)
	for i, cell := range cells {
		p.doc.Text(xs[i], p.y+5, cell)
	}
	p.y += rowHeight
}

func (p *page) tableEnd() {
	p.doc.SetDrawColor(borderColor[0], borderColor[1], borderColor[2])
	p.doc.Line(tableLeft, p.y, tableRight, p.y)
	p.y += 10
}

func (p *page) keyValue(label, value string) {
	p.breakIfNeeded()
	p.doc.SetFont("Helvetica", "", 11)
	p.doc.Text(tableLeft, p.y, fmt.Sprintf("%s: %s", label, value))
	p.y += 6
}

// WorkerStatement renders a single worker's report: profile, work history,
// payment history, and the derived totals.
func (e *Exporter) WorkerStatement(st models.WorkerStatement) ([]byte, error) {
	p := newPage()
	p.titleBand("Worker Report")

	p.doc.SetTextColor(0, 0, 0)
	p.doc.SetFont("Helvetica", "B", 14)
	p.doc.Text(tableLeft, p.y, "Worker Profile")
	p.y += 8
	p.keyValue("Worker ID", st.Worker.ID)
	p.keyValue("Name", st.Worker.Name)
	p.keyValue("Job Role", st.Worker.JobRole)
	p.y += 4

	if len(st.WorkRecords) > 0 {
		xs := []float64{18, 55, 140}
		p.sectionTitle("Work History")
		p.tableHeader([]string{"Date", "Work Type", "Earned Amount"}, xs)
		for _, r := range st.WorkRecords {
			p.tableRow([]string{
				dates.ToDisplay(r.Date),
				r.WorkType,
				formatCurrency(decimal.NewFromFloat(r.EarnedAmount).StringFixed(2)),
			}, xs)
		}
		p.tableEnd()
	}

	if len(st.PaymentRecords) > 0 {
		xs := []float64{18, 55, 100, 140}
		p.sectionTitle("Payment History")
		p.tableHeader([]string{"Date", "Payment Type", "Note", "Amount"}, xs)
		for _, r := range st.PaymentRecords {
			p.tableRow([]string{
				dates.ToDisplay(r.Date),
				r.PaymentType,
				r.Note,
				formatCurrency(decimal.NewFromFloat(r.Amount).StringFixed(2)),
			}, xs)
		}
		p.tableEnd()
	}

	p.sectionTitle("Summary")
	p.keyValue("Total Earned", formatCurrency(st.TotalEarned))
	p.keyValue("Total Paid", formatCurrency(st.TotalPaid))
	p.keyValue("Balance", formatCurrency(st.Balance))

	return output(p.doc)
}

// Summary renders the all-workers report with one row per worker and a
// grand-total row.
func (e *Exporter) Summary(sum models.LedgerSummary) ([]byte, error) {
	p := newPage()
	p.titleBand("All Workers Report")

	xs := []float64{18, 50, 95, 130, 162}
	p.tableHeader([]string{"Worker", "Job Role", "Total Earned", "Total Paid", "Balance"}, xs)
	for _, row := range sum.Rows {
		p.tableRow([]string{
			fmt.Sprintf("%s (%s)", row.Worker.Name, row.Worker.ID),
			row.Worker.JobRole,
			formatCurrency(row.TotalEarned),
			formatCurrency(row.TotalPaid),
			formatCurrency(row.Balance),
		}, xs)
	}

	p.breakIfNeeded()
	p.doc.SetFont("Helvetica", "B", 9)
	p.doc.Line(tableLeft, p.y, tableRight, p.y)
	p.doc.Text(xs[0], p.y+5, "Grand Total")
	p.doc.Text(xs[2], p.y+5, formatCurrency(sum.GrandTotalEarned))
	p.doc.Text(xs[3], p.y+5, formatCurrency(sum.GrandTotalPaid))
	p.doc.Text(xs[4], p.y+5, formatCurrency(sum.GrandBalance))
	p.y += rowHeight
	p.tableEnd()

	return output(p.doc)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// formatCurrency renders a plain decimal string as "LKR 1,234.56".
func formatCurrency(amount string) string {
	sign := ""
	if strings.HasPrefix(amount, "-") {
		sign = "-"
		amount = amount[1:]
	}

	whole, frac := amount, ""
	if i := strings.Index(amount, "."); i >= 0 {
		whole, frac = amount[:i], amount[i:]
	}

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return fmt.Sprintf("%s %s%s%s", currencyTag, sign, grouped.String(), frac)
}
