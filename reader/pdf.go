package reader

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfoutline/model"
)

const (
	// fontFlagForceBold is bit 19 of the font descriptor /Flags entry.
	fontFlagForceBold = 1 << 18

	// boldWeight is the lowest /FontWeight treated as bold.
	boldWeight = 600

	// baselineTolerance is the fraction of the font size two glyphs may
	// differ vertically and still share a baseline.
	baselineTolerance = 0.3

	// wordGap is the fraction of the font size of horizontal gap that
	// is read as a word space.
	wordGap = 0.2

	// blockGap is the vertical distance, in font sizes, that starts a
	// new block.
	blockGap = 1.8
)

// Ensure PDFDocument implements Document
var _ Document = (*PDFDocument)(nil)

// PDFDocument is a Document backed by a PDF file.
type PDFDocument struct {
	file *os.File
	r    *pdf.Reader
	meta model.Metadata
}

// Open opens the PDF file at path.
func Open(path string) (doc *PDFDocument, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("failed to open %s: malformed PDF: %v", path, rec)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	doc = &PDFDocument{file: f, r: r}
	doc.meta = readInfo(r)
	return doc, nil
}

// readInfo reads the /Info dictionary from the trailer.
func readInfo(r *pdf.Reader) (meta model.Metadata) {
	defer func() {
		if recover() != nil {
			meta = model.Metadata{}
		}
	}()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return model.Metadata{}
	}
	return model.Metadata{
		Title:    info.Key("Title").Text(),
		Author:   info.Key("Author").Text(),
		Subject:  info.Key("Subject").Text(),
		Creator:  info.Key("Creator").Text(),
		Producer: info.Key("Producer").Text(),
	}
}

// PageCount returns the number of pages.
func (d *PDFDocument) PageCount() int {
	return d.r.NumPage()
}

// Metadata returns the /Info entries.
func (d *PDFDocument) Metadata() model.Metadata {
	return d.meta
}

// Close closes the underlying file.
func (d *PDFDocument) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Page extracts the text of the page at the 0-based index. A page without
// a content stream yields an empty Page.
func (d *PDFDocument) Page(index int) (page Page, err error) {
	if index < 0 || index >= d.PageCount() {
		return Page{}, fmt.Errorf("page %d of %d: %w", index, d.PageCount(), ErrPageOutOfRange)
	}

	defer func() {
		if rec := recover(); rec != nil {
			page = Page{}
			err = fmt.Errorf("failed to read page %d: %v", index+1, rec)
		}
	}()

	p := d.r.Page(index + 1)
	if p.V.IsNull() {
		return Page{Index: index}, nil
	}

	bold := boldFonts(p)
	content := p.Content()
	return Page{Index: index, Blocks: groupGlyphs(content.Text, bold)}, nil
}

// boldFonts maps the base font names used on p to whether their
// descriptor declares them bold.
func boldFonts(p pdf.Page) map[string]bool {
	bold := make(map[string]bool)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		desc := f.V.Key("FontDescriptor")
		if desc.IsNull() {
			// Composite fonts keep the descriptor on the descendant.
			desc = f.V.Key("DescendantFonts").Index(0).Key("FontDescriptor")
		}
		if desc.IsNull() {
			continue
		}
		if desc.Key("Flags").Int64()&fontFlagForceBold != 0 || desc.Key("FontWeight").Float64() >= boldWeight {
			bold[f.BaseFont()] = true
		}
	}
	return bold
}

// spanBuilder accumulates glyphs into one RawSpan.
type spanBuilder struct {
	sb   strings.Builder
	font string
	size float64
	end  float64
}

func (b *spanBuilder) empty() bool {
	return b.sb.Len() == 0
}

func (b *spanBuilder) span(bold map[string]bool) RawSpan {
	s := RawSpan{Text: b.sb.String(), Size: b.size, Font: b.font}
	if bold[b.font] {
		s.Flags |= FlagBold
	}
	return s
}

// groupGlyphs turns per-glyph output into blocks of lines of spans,
// keeping content-stream order.
func groupGlyphs(glyphs []pdf.Text, bold map[string]bool) []Block {
	var (
		blocks []Block
		block  Block
		line   TextLine
		cur    spanBuilder
		lineY  float64
		haveY  bool
	)

	flushSpan := func() {
		if !cur.empty() {
			line.Spans = append(line.Spans, cur.span(bold))
		}
		cur = spanBuilder{}
	}
	flushLine := func() {
		flushSpan()
		if len(line.Spans) > 0 {
			block.Lines = append(block.Lines, line)
		}
		line = TextLine{}
	}
	flushBlock := func() {
		flushLine()
		if len(block.Lines) > 0 {
			blocks = append(blocks, block)
		}
		block = Block{}
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		size := math.Round(math.Abs(g.FontSize)*100) / 100
		tol := math.Max(size, 1) * baselineTolerance

		if haveY && math.Abs(g.Y-lineY) > tol {
			if math.Abs(g.Y-lineY) > math.Max(size, 1)*blockGap {
				flushBlock()
			} else {
				flushLine()
			}
			haveY = false
		}
		if !haveY {
			lineY = g.Y
			haveY = true
		}

		if !cur.empty() && (g.Font != cur.font || math.Abs(size-cur.size) > 0.1) {
			flushSpan()
		}
		if cur.empty() {
			cur.font = g.Font
			cur.size = size
		} else if g.X-cur.end > size*wordGap && g.S != " " && !strings.HasSuffix(cur.sb.String(), " ") {
			cur.sb.WriteByte(' ')
		}
		cur.sb.WriteString(g.S)
		cur.end = g.X + g.W
	}
	flushBlock()

	return blocks
}
