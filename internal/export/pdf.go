package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	pdfMarginLeft   = 20.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 15.0
	pdfLineHeight   = 6.0
	pdfCellLine     = 5.0
	pdfMetaSplit    = 120.0
)

// Fractions of the printable width given to each procedure column.
var pdfColumnShares = [3]float64{0.2, 0.4, 0.4}

var procedureHeaderFill = [3]int{76, 175, 80}

// PDF renders the plan as an A4 PDF. The core Helvetica font has no
// Vietnamese glyphs, so text is folded to plain Latin letters.
func PDF(plan lessonplan.LessonPlan, now time.Time) ([]byte, error) {
	return renderPDF(buildDocument(plan, now), now, true)
}

func renderPDF(doc document, now time.Time, compress bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(fold(s)) }

	pdf.SetTitle(text(doc.PlainTitle), false)
	pdf.SetCreator("lessonplan", false)

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	width := pageW - pdfMarginLeft - pdfMarginRight

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(width, 8, text(doc.Title), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	y := pdf.GetY()
	for i := range doc.MetaLeft {
		rowY := y + float64(i)*(pdfLineHeight+1)
		pdf.SetXY(pdfMarginLeft, rowY)
		pdf.CellFormat(pdfMetaSplit-pdfMarginLeft-2, pdfLineHeight, text(doc.MetaLeft[i].String()), "", 0, "L", false, 0, "")
		if i < len(doc.MetaRight) {
			pdf.SetXY(pdfMetaSplit, rowY)
			pdf.CellFormat(pageW-pdfMetaSplit-pdfMarginRight, pdfLineHeight, text(doc.MetaRight[i].String()), "", 0, "L", false, 0, "")
		}
	}
	pdf.SetXY(pdfMarginLeft, y+float64(len(doc.MetaLeft))*(pdfLineHeight+1)+6)

	for _, sec := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(width, pdfLineHeight+1, text(sec.Heading), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 12)
		for _, g := range sec.Groups {
			items := placeholder
			if len(g.Items) > 0 {
				items = strings.Join(g.Items, ", ")
			}
			pdf.SetX(pdfMarginLeft + 5)
			pdf.MultiCell(width-5, pdfLineHeight+1, text("- "+g.Label+": "+items), "", "L", false)
		}
		if sec.Table {
			pdfProcedureTable(pdf, sec, width, text)
		}
		pdf.Ln(4)
	}

	pdfSignature(pdf, doc.Signature, width, text)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfProcedureTable(pdf *fpdf.Fpdf, sec section, width float64, text func(string) string) {
	var cols [3]float64
	for i, share := range pdfColumnShares {
		cols[i] = width * share
	}
	_, pageH := pdf.GetPageSize()
	limit := pageH - pdfMarginBottom

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(procedureHeaderFill[0], procedureHeaderFill[1], procedureHeaderFill[2])
		pdf.SetTextColor(255, 255, 255)
		for i, h := range procedureHeader {
			pdf.CellFormat(cols[i], pdfLineHeight+2, text(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.Ln(1)
	header()

	// Line capacity of a page that starts with the header row.
	pageLines := int((limit - pdfMarginTop - (pdfLineHeight + 2) - 2) / pdfCellLine)

	for _, st := range sec.Steps {
		var split [3][][]byte
		lines := 1
		for i, c := range [3]string{st.Step, st.TeacherActivity, st.StudentActivity} {
			split[i] = pdf.SplitLines([]byte(text(c)), cols[i])
			lines = max(lines, len(split[i]))
		}

		// A row that fits on one page moves to the next page whole. Taller
		// rows are cut at the page boundary and continue under a new header.
		for from := 0; from < lines; {
			left := lines - from
			fit := int((limit - pdf.GetY() - 2) / pdfCellLine)
			if fit < left && (fit < 1 || (from == 0 && left <= pageLines)) {
				pdf.AddPage()
				header()
				continue
			}
			n := min(fit, left)
			h := float64(n)*pdfCellLine + 2

			x, y := pdfMarginLeft, pdf.GetY()
			for i := range cols {
				pdf.Rect(x, y, cols[i], h, "D")
				for j := from; j < from+n && j < len(split[i]); j++ {
					pdf.SetXY(x, y+1+float64(j-from)*pdfCellLine)
					pdf.CellFormat(cols[i], pdfCellLine, string(split[i][j]), "", 0, "L", false, 0, "")
				}
				x += cols[i]
			}
			pdf.SetXY(pdfMarginLeft, y+h)
			from += n
		}
	}
}

func pdfSignature(pdf *fpdf.Fpdf, sig signature, width float64, text func(string) string) {
	half := width / 2
	rows := max(len(sig.Left), len(sig.Right))
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+float64(rows)*pdfLineHeight+20 > pageH-pdfMarginBottom {
		pdf.AddPage()
	}

	pdf.Ln(6)
	y := pdf.GetY()
	for i := 0; i < rows; i++ {
		for col, lines := range [][]string{sig.Left, sig.Right} {
			if i >= len(lines) {
				continue
			}
			style := "B"
			if (col == 0 && i > 0) || (col == 1 && i == 0) {
				style = "I"
			}
			pdf.SetFont("Helvetica", style, 11)
			pdf.SetXY(pdfMarginLeft+float64(col)*half, y+float64(i)*pdfLineHeight)
			pdf.CellFormat(half, pdfLineHeight, text(lines[i]), "", 0, "C", false, 0, "")
		}
	}
	pdf.SetXY(pdfMarginLeft, y+float64(rows)*pdfLineHeight)
}

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// fold strips diacritics so Vietnamese text survives the core fonts.
func fold(s string) string {
	s = dStroke.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
