package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDefaults() config.CertificateConfig {
	return config.CertificateConfig{
		SignedURLExpireMinutes: 10,
		DefaultFontSize:        32,
		DefaultColor:           "#121212",
	}
}

func TestBaselineY(t *testing.T) {
	// On a 400pt tall page, an anchor 10% from the top with a 32pt font puts
	// the baseline at 56pt from the top, i.e. 344pt above the bottom edge.
	pageH := 400.0
	y := baselineY(0.1, pageH, 32)
	assert.InDelta(t, 56.0, y, 0.001)
	assert.InDelta(t, 344.0, pageH-y, 0.001)
}

func TestAlignX(t *testing.T) {
	tests := []struct {
		name  string
		align string
		want  float64
	}{
		{name: "left anchors the start", align: model.AlignLeft, want: 300},
		{name: "center splits the width", align: model.AlignCenter, want: 250},
		{name: "right anchors the end", align: model.AlignRight, want: 200},
		{name: "unknown falls back to left", align: "top", want: 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, alignX(300, 100, tt.align), 0.001)
		})
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, clampPage(0, 3))
	assert.Equal(t, 1, clampPage(-2, 3))
	assert.Equal(t, 2, clampPage(2, 3))
	assert.Equal(t, 3, clampPage(9, 3))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		r, g, b int
		ok      bool
	}{
		{name: "long form", in: "#121212", r: 0x12, g: 0x12, b: 0x12, ok: true},
		{name: "no hash", in: "ff8000", r: 0xff, g: 0x80, b: 0x00, ok: true},
		{name: "short form", in: "#fff", r: 0xff, g: 0xff, b: 0xff, ok: true},
		{name: "whitespace trimmed", in: " #000000 ", r: 0, g: 0, b: 0, ok: true},
		{name: "garbage", in: "red", ok: false},
		{name: "wrong length", in: "#12345", ok: false},
		{name: "empty", in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, ok := parseHexColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.r, r)
				assert.Equal(t, tt.g, g)
				assert.Equal(t, tt.b, b)
			}
		})
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderCertificatePDFFromImage(t *testing.T) {
	tpl := testPNG(t, 600, 400)

	out, err := renderCertificatePDF(tpl, util.MimePNG, renderSpec{
		Name: "Ada Lovelace",
		Placement: model.NamePlacement{
			Page:     1,
			XPct:     0.5,
			YPct:     0.1,
			FontSize: 32,
			Color:    "#121212",
			Align:    model.AlignCenter,
		},
		Defaults: renderDefaults(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF")
	assert.Greater(t, len(out), len(tpl)/2)
}

func TestRenderCertificatePDFDefaultsApplied(t *testing.T) {
	tpl := testPNG(t, 200, 100)

	// Zero font size and an invalid color fall back to the configured defaults.
	out, err := renderCertificatePDF(tpl, util.MimePNG, renderSpec{
		Name: "Ada",
		Placement: model.NamePlacement{
			Page:  1,
			XPct:  0.5,
			YPct:  0.5,
			Color: "not-a-color",
		},
		Defaults: renderDefaults(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderCertificatePDFRejectsUnsupportedType(t *testing.T) {
	_, err := renderCertificatePDF([]byte("RIFFxxxxWEBPVP8 "), "image/webp", renderSpec{
		Name:      "Ada",
		Placement: model.NamePlacement{Page: 1},
		Defaults:  renderDefaults(),
	})
	assert.ErrorIs(t, err, util.ErrUnsupportedTemplateType)
}

func TestSupportedTemplateMime(t *testing.T) {
	assert.True(t, supportedTemplateMime(util.MimePDF))
	assert.True(t, supportedTemplateMime(util.MimePNG))
	assert.True(t, supportedTemplateMime(util.MimeJPEG))
	assert.False(t, supportedTemplateMime(util.MimeWebP))
	assert.False(t, supportedTemplateMime("text/plain"))
}

func TestCertificateObjectNameIsDeterministic(t *testing.T) {
	cert := &model.Certificate{
		OrganizationID: 3,
		UserID:         7,
		CourseID:       11,
	}
	cert.ID = "abc-123"

	name := certificateObjectName(cert)
	assert.Equal(t, "certificates/org/3/course/11/user/7/abc-123.pdf", name)
	assert.Equal(t, name, certificateObjectName(cert))
}
