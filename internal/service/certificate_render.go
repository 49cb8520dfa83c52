package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// renderSpec carries everything the renderer needs to draw a learner's name
// onto a certificate template.
type renderSpec struct {
	Name      string
	Placement model.NamePlacement
	Defaults  config.CertificateConfig
}

// renderCertificatePDF overlays the learner name on the stored template and
// returns the finished PDF bytes. PDF templates keep every page; image
// templates become a single-page PDF sized to the image.
func renderCertificatePDF(tplBytes []byte, mimeType string, spec renderSpec) ([]byte, error) {
	switch mimeType {
	case util.MimePDF:
		return renderOnPDFTemplate(tplBytes, spec)
	case util.MimePNG, util.MimeJPEG:
		return renderOnImageTemplate(tplBytes, mimeType, spec)
	}
	return nil, util.ErrUnsupportedTemplateType
}

func renderOnPDFTemplate(tplBytes []byte, spec renderSpec) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	imp := gofpdi.NewImporter()

	rs := io.ReadSeeker(bytes.NewReader(tplBytes))
	firstTpl := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	pageCount := len(sizes)
	if pageCount == 0 {
		return nil, errors.New("certificate template has no pages")
	}

	targetPage := clampPage(spec.Placement.Page, pageCount)

	for pageNo := 1; pageNo <= pageCount; pageNo++ {
		box, ok := sizes[pageNo]["/MediaBox"]
		if !ok {
			return nil, fmt.Errorf("certificate template page %d has no media box", pageNo)
		}
		pageW, pageH := box["w"], box["h"]

		orientation := "P"
		if pageW > pageH {
			orientation = "L"
		}
		pdf.AddPageFormat(orientation, gofpdf.SizeType{Wd: pageW, Ht: pageH})

		tplID := firstTpl
		if pageNo > 1 {
			// The importer consumes the stream; rewind before each page.
			if _, err := rs.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
			tplID = imp.ImportPageFromStream(pdf, &rs, pageNo, "/MediaBox")
		}
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pageW, pageH)

		if pageNo == targetPage {
			drawName(pdf, pageW, pageH, spec)
		}
	}

	return outputPDF(pdf)
}

func renderOnImageTemplate(tplBytes []byte, mimeType string, spec renderSpec) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})

	imageType := "PNG"
	if mimeType == util.MimeJPEG {
		imageType = "JPG"
	}
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	info := pdf.RegisterImageOptionsReader("certificate-template", opts, bytes.NewReader(tplBytes))
	if pdf.Err() {
		return nil, pdf.Error()
	}

	pageW, pageH := info.Extent()
	orientation := "P"
	if pageW > pageH {
		orientation = "L"
	}
	pdf.AddPageFormat(orientation, gofpdf.SizeType{Wd: pageW, Ht: pageH})
	pdf.ImageOptions("certificate-template", 0, 0, pageW, pageH, false, opts, 0, "")

	drawName(pdf, pageW, pageH, spec)

	return outputPDF(pdf)
}

// drawName paints the learner name at the placement's normalized coordinates.
// Percentages are measured from the top-left corner; the text baseline sits
// half a font size below the anchor so the glyphs straddle it vertically.
func drawName(pdf *gofpdf.Fpdf, pageW, pageH float64, spec renderSpec) {
	fontSize := spec.Placement.FontSize
	if fontSize <= 0 {
		fontSize = spec.Defaults.DefaultFontSize
	}

	color := spec.Placement.Color
	if color == "" {
		color = spec.Defaults.DefaultColor
	}
	r, g, b, ok := parseHexColor(color)
	if !ok {
		r, g, b, _ = parseHexColor(spec.Defaults.DefaultColor)
	}

	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetTextColor(r, g, b)

	anchorX := spec.Placement.XPct * pageW
	y := baselineY(spec.Placement.YPct, pageH, fontSize)
	x := alignX(anchorX, pdf.GetStringWidth(spec.Name), spec.Placement.Align)

	pdf.Text(x, y, spec.Name)
}

// clampPage keeps a 1-based page index inside the template's page range.
func clampPage(page, pageCount int) int {
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// baselineY converts a top-anchored vertical percentage into a text baseline
// in the top-left coordinate system gofpdf draws in.
func baselineY(yPct, pageH, fontSize float64) float64 {
	return yPct*pageH + fontSize/2
}

// alignX shifts the drawing origin so the anchor lands on the left edge,
// middle or right edge of the rendered text.
func alignX(anchorX, textWidth float64, align string) float64 {
	switch align {
	case model.AlignRight:
		return anchorX - textWidth
	case model.AlignCenter:
		return anchorX - textWidth/2
	}
	return anchorX
}

// parseHexColor parses #RGB and #RRGGBB colors.
func parseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
