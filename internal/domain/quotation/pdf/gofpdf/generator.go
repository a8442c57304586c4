package gofpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"quotedesk/go_backend/internal/domain/quotation"
)

const (
	pageWidth  = 210.0 // A4 portrait, mm
	pageHeight = 297.0
	margin     = 15.0

	brandStripY      = 285.0
	brandStripHeight = 6.0

	signerName  = "Authorized Signatory"
	signerTitle = "Sales Department"
)

// Generator renders one A4 page per page descriptor. It trusts the
// allocator's chunking and footer placement completely and makes no layout
// decisions of its own.
type Generator struct {
	Layout quotation.Layout
}

func New() *Generator {
	return &Generator{Layout: quotation.DefaultLayout()}
}

func (g *Generator) Generate(doc quotation.Document) ([]byte, error) {
	if err := g.Layout.Validate(); err != nil {
		return nil, err
	}

	totals := quotation.ComputeTotals(doc.Items, doc.VATRate, doc.TaxRate)
	pages := quotation.Paginate(doc.Items, g.Layout, len(doc.Notes), doc.SignatureSpacing)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quotation", false)
	pdf.SetAutoPageBreak(false, 0)

	r := &renderer{
		pdf:     pdf,
		doc:     doc,
		totals:  totals,
		layout:  g.Layout,
		printer: message.NewPrinter(language.English),
		// Core fonts are cp1252; document text arrives as UTF-8 and must be
		// translated before drawing or it comes out as mojibake.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	r.registerImages()

	for _, p := range pages {
		r.renderPage(p, p.Index == len(pages)-1)
	}

	if err := pdf.Error(); err != nil {
		log.Printf("quotation pdf: render failed: %v", err)
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("quotation pdf: output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf     *gofpdf.Fpdf
	doc     quotation.Document
	totals  quotation.Totals
	layout  quotation.Layout
	printer *message.Printer
	tr      func(string) string

	logoName      string
	watermarkName string
	signatureName string
}

// registerImages decodes the document's base64 data-URI assets into the PDF
// image cache. Assets that fail to decode are skipped, not fatal.
func (r *renderer) registerImages() {
	r.logoName = r.registerDataURI("logo", r.doc.LogoImage)
	r.watermarkName = r.registerDataURI("watermark", r.doc.WatermarkImage)
	r.signatureName = r.registerDataURI("signature", r.doc.SignatureImage)
}

func (r *renderer) registerDataURI(name, uri string) string {
	if uri == "" {
		return ""
	}
	imgType, raw, err := decodeDataURI(uri)
	if err != nil {
		log.Printf("quotation pdf: skip %s image: %v", name, err)
		return ""
	}
	opts := gofpdf.ImageOptions{ImageType: imgType}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if err := r.pdf.Error(); err != nil {
		// A broken asset must not poison the whole document.
		log.Printf("quotation pdf: skip %s image: %v", name, err)
		r.pdf.ClearError()
		return ""
	}
	return name
}

func decodeDataURI(uri string) (imgType string, raw []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding")
	}
	switch strings.TrimSuffix(meta, ";base64") {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	case "image/gif":
		imgType = "GIF"
	default:
		return "", nil, fmt.Errorf("unsupported image type %q", meta)
	}
	raw, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}
	return imgType, raw, nil
}

func (r *renderer) renderPage(p quotation.Page, last bool) {
	r.pdf.AddPage()

	r.renderWatermark()
	r.renderBrandStrip()

	if p.Kind == quotation.PageFirst {
		r.renderLetterhead()
		r.renderRecipientBlock()
	} else {
		r.renderContinuationHeader(p.Index)
	}

	r.renderItemTable(p)

	if last {
		r.renderFooter()
	}
}

// renderWatermark draws the watermark image (or the logo as fallback)
// behind the page content at the configured vertical offset.
func (r *renderer) renderWatermark() {
	name := r.watermarkName
	width := r.doc.WatermarkWidth
	if name == "" {
		name = r.logoName
	}
	if name == "" {
		return
	}
	if width <= 0 {
		width = 120
	}
	x := (pageWidth - width) / 2
	opts := gofpdf.ImageOptions{}
	r.pdf.ImageOptions(name, x, r.doc.WatermarkY, width, 0, false, opts, 0, "")
}

func (r *renderer) renderBrandStrip() {
	r.pdf.SetFillColor(32, 56, 100)
	r.pdf.Rect(0, brandStripY, pageWidth, brandStripHeight, "F")
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "", 7)
	r.pdf.SetXY(margin, brandStripY+1)
	r.pdf.CellFormat(pageWidth-2*margin, 4, "This quotation is valid for 30 days from the date of issue.", "", 0, "C", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) renderLetterhead() {
	if r.logoName != "" {
		w := r.doc.LogoWidth
		if w <= 0 {
			w = 40
		}
		opts := gofpdf.ImageOptions{}
		r.pdf.ImageOptions(r.logoName, margin, 12, w, 0, false, opts, 0, "")
	}

	r.pdf.SetXY(margin, 14)
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.CellFormat(pageWidth-2*margin, 10, "QUOTATION", "", 1, "R", false, 0, "")

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetX(margin)
	r.pdf.CellFormat(pageWidth-2*margin, 6, r.tr("Date: "+r.doc.Date), "", 1, "R", false, 0, "")

	r.pdf.SetDrawColor(32, 56, 100)
	r.pdf.SetLineWidth(0.6)
	r.pdf.Line(margin, 34, pageWidth-margin, 34)
	r.pdf.SetY(38)
}

func (r *renderer) renderContinuationHeader(index int) {
	r.pdf.SetXY(margin, 12)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.CellFormat((pageWidth-2*margin)/2, 6, "Quotation (continued)", "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.CellFormat((pageWidth-2*margin)/2, 6, fmt.Sprintf("Page %d", index+1), "", 1, "R", false, 0, "")

	r.pdf.SetDrawColor(32, 56, 100)
	r.pdf.SetLineWidth(0.4)
	r.pdf.Line(margin, 20, pageWidth-margin, 20)
	r.pdf.SetY(25)
}

// renderRecipientBlock writes the addressee lines and the subject. The
// hide-recipient flag suppresses only the addressee lines, never the date
// (the date lives in the letterhead).
func (r *renderer) renderRecipientBlock() {
	r.pdf.SetY(40)
	if !r.doc.HideRecipient {
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetX(margin)
		r.pdf.Cell(0, 5, "To:")
		r.pdf.Ln(5)
		for _, line := range []string{r.doc.RecipientName, r.doc.RecipientCompany, r.doc.RecipientAddress} {
			if line == "" {
				continue
			}
			r.pdf.SetX(margin)
			r.pdf.MultiCell(pageWidth-2*margin, 5, r.tr(line), "", "L", false)
		}
		r.pdf.Ln(2)
	}

	if r.doc.Subject != "" {
		r.pdf.SetX(margin)
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.MultiCell(pageWidth-2*margin, 6, r.tr("Subject: "+r.doc.Subject), "", "L", false)
	}
	r.pdf.Ln(3)
}

var tableCols = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Description", 80, "L"},
	{"Unit", 18, "C"},
	{"Qty", 16, "R"},
	{"Unit Cost", 28, "R"},
	{"Amount", 28, "R"},
}

func (r *renderer) renderItemTable(p quotation.Page) {
	if p.Kind == quotation.PageFooterOnly {
		return
	}

	r.pdf.SetX(margin)
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(32, 56, 100)
	r.pdf.SetTextColor(255, 255, 255)
	for _, col := range tableCols {
		r.pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetTextColor(0, 0, 0)

	offset := r.layout.StartOffset(p.Index)
	r.pdf.SetFont("Arial", "", 10)
	for i, it := range p.Items {
		cells := []string{
			fmt.Sprintf("%d", offset+i+1),
			r.tr(truncate(it.Description, 60)),
			r.tr(it.Unit),
			r.printer.Sprintf("%v", it.Quantity),
			r.money(it.UnitCost),
			r.money(it.LineTotal()),
		}
		for c, col := range tableCols {
			r.pdf.CellFormat(col.width, 7, cells[c], "1", 0, col.align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

// renderFooter draws the totals table, the notes box and the signature block
// on whichever descriptor is last in the sequence.
func (r *renderer) renderFooter() {
	r.pdf.Ln(6)
	top := r.pdf.GetY()
	contentWidth := pageWidth - 2*margin
	notesWidth := contentWidth * float64(r.doc.NotesBoxWidth) / 100
	totalsWidth := contentWidth * float64(r.doc.TotalBoxWidth) / 100

	if r.doc.Notes != "" && notesWidth > 0 {
		r.pdf.SetXY(margin, top)
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.CellFormat(notesWidth, 6, "Notes", "", 1, "L", false, 0, "")
		r.pdf.SetX(margin)
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.MultiCell(notesWidth-4, 5, r.tr(r.doc.Notes), "", "L", false)
	}
	notesBottom := r.pdf.GetY()

	totalsX := margin + contentWidth - totalsWidth
	r.pdf.SetXY(totalsX, top)
	r.totalRow(totalsX, totalsWidth, "Subtotal", r.money(r.totals.Subtotal), false)
	if r.doc.VATRate > 0 {
		r.totalRow(totalsX, totalsWidth, fmt.Sprintf("VAT (%s%%)", trimRate(r.doc.VATRate)), r.money(r.totals.VATAmount), false)
	}
	if r.doc.TaxRate > 0 {
		r.totalRow(totalsX, totalsWidth, fmt.Sprintf("Tax (%s%%)", trimRate(r.doc.TaxRate)), r.money(r.totals.TaxAmount), false)
	}
	r.totalRow(totalsX, totalsWidth, "Grand Total", r.money(r.totals.GrandTotal), true)

	r.pdf.SetX(totalsX)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.MultiCell(totalsWidth, 4, r.totals.GrandTotalWords, "", "R", false)
	totalsBottom := r.pdf.GetY()

	r.renderSignature(maxY(notesBottom, totalsBottom))
}

func (r *renderer) totalRow(x, width float64, label, value string, grand bool) {
	r.pdf.SetX(x)
	if grand {
		r.pdf.SetFont("Arial", "B", 10)
	} else {
		r.pdf.SetFont("Arial", "", 10)
	}
	r.pdf.CellFormat(width*0.55, 6, label, "1", 0, "L", false, 0, "")
	r.pdf.CellFormat(width*0.45, 6, value, "1", 1, "R", false, 0, "")
}

func (r *renderer) renderSignature(top float64) {
	scale := r.doc.SignatureScale
	if scale <= 0 {
		scale = 100
	}

	y := top + 8 + float64(r.doc.SignatureSpacing)/10
	blockWidth := 60 * scale / 100

	if r.signatureName != "" {
		opts := gofpdf.ImageOptions{}
		r.pdf.ImageOptions(r.signatureName, pageWidth-margin-blockWidth, y, blockWidth*0.7, 0, false, opts, 0, "")
		y += 18 * scale / 100
	} else {
		y += 14
	}

	r.pdf.SetXY(pageWidth-margin-blockWidth, y)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.2)
	r.pdf.Line(pageWidth-margin-blockWidth, y, pageWidth-margin, y)

	r.pdf.SetXY(pageWidth-margin-blockWidth, y+1)
	r.pdf.SetFont("Arial", "B", 9*scale/100)
	r.pdf.CellFormat(blockWidth, 5, signerName, "", 2, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 8*scale/100)
	r.pdf.CellFormat(blockWidth, 4, signerTitle, "", 1, "C", false, 0, "")

	size := r.doc.ThankYouSize
	if size <= 0 {
		size = 11
	}
	r.pdf.SetXY(margin, y+12)
	r.pdf.SetFont("Arial", "I", size)
	r.pdf.CellFormat(pageWidth-2*margin, 7, "Thank you for your business!", "", 1, "C", false, 0, "")
}

func (r *renderer) money(v float64) string {
	return r.printer.Sprintf("%.2f", v)
}

func trimRate(rate float64) string {
	s := fmt.Sprintf("%.2f", rate)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func maxY(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
