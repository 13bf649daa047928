package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

// watermark is the status stamp overlaid on the rendered receipt.
type watermark struct {
	text    string
	r, g, b int
}

// watermarks maps each status to its stamp. Unknown statuses fall back to
// the pending appearance.
var watermarks = map[models.Status]watermark{
	models.StatusPending:      {text: "PENDING", r: 128, g: 128, b: 128},
	models.StatusProcessing:   {text: "PROCESSING", r: 0, g: 0, b: 255},
	models.StatusLoanReleased: {text: "RELEASED", r: 0, g: 128, b: 0},
	models.StatusCancelled:    {text: "FAILED", r: 255, g: 0, b: 0},
}

func watermarkFor(status models.Status) watermark {
	if w, ok := watermarks[status]; ok {
		return w
	}
	return watermarks[models.StatusPending]
}

// Renderer renders a receipt snapshot as a PDF document.
type Renderer struct {
	title string
}

// NewRenderer creates a receipt PDF renderer
func NewRenderer() receipts.ReceiptRenderer {
	return &Renderer{title: "PayNecta Loan Receipt"}
}

// Render writes the PDF document for the receipt to w.
func (rd *Renderer) Render(receipt *models.Receipt, w io.Writer) error {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(50, 50, 50)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()

	// Header band
	doc.SetFillColor(33, 150, 243)
	doc.Rect(0, 0, pageWidth, 80, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 24)
	doc.Text(50, 50, rd.title)

	// Detail block
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "BU", 14)
	doc.SetXY(50, 120)
	doc.CellFormat(0, 18, "Receipt Details", "", 1, "L", false, 0, "")
	doc.Ln(8)

	details := [][2]string{
		{"Reference", receipt.Reference},
		{"Amount", fmt.Sprintf("KSH %d", receipt.Amount)},
		{"Loan Amount", fmt.Sprintf("KSH %s", receipt.LoanAmount)},
		{"Phone", receipt.Phone},
		{"Status", strings.ToUpper(string(receipt.Status))},
		{"Time", receipt.Timestamp.Format("02 Jan 2006 15:04:05 MST")},
	}

	doc.SetFont("Helvetica", "", 12)
	for _, row := range details {
		doc.SetX(50)
		doc.CellFormat(0, 18, fmt.Sprintf("%s: %s", row[0], row[1]), "", 1, "L", false, 0, "")
	}

	if receipt.StatusNote != "" {
		doc.Ln(12)
		doc.SetX(50)
		doc.SetTextColor(85, 85, 85)
		doc.MultiCell(0, 16, receipt.StatusNote, "", "L", false)
	}

	// Status watermark
	wm := watermarkFor(receipt.Status)
	doc.SetFont("Helvetica", "B", 50)
	doc.SetTextColor(wm.r, wm.g, wm.b)
	doc.SetAlpha(0.2, "Normal")
	doc.Text(150, 420, wm.text)
	doc.SetAlpha(1, "Normal")

	return doc.Output(w)
}
