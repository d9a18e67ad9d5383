package dump

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylecascade/font"
	"stylecascade/sheet"
	"stylecascade/style"
	"stylecascade/wsys"
)

const fixture = `
styles:
  - name: Normal
    font:
      family: "<default font>"
      size: 11pt
    overrides:
      - lang: ar
        font:
          family: Amiri
          size: 14pt
    paragraph:
      align: justify
      space_after: 6pt
  - name: Heading 1
    based_on: Normal
    next: Normal
    usage: Top level heading
    user_level: 1
    font:
      bold: "true"
      size: 16pt
      color: "#800000"
    paragraph:
      space_before: 12pt
      line_spacing: 120%
      border: 0 0 1pt 0
      border_color: navy
  - name: Heading 10
    based_on: Heading 1
  - name: Heading 2
    based_on: Heading 1
    font:
      size: 14pt
      features: smcp
  - name: List
    based_on: Normal
    paragraph:
      leading_indent: 18pt
      bullet:
        scheme: roman-lower
        start: 2
        after: ")"
  - name: Emphasis
    kind: character
    font:
      italic: "true"
      underline: underline wavy
      super_sub: super
      offset: 1.5pt
`

func testDirectory(t *testing.T) *wsys.Directory {
	t.Helper()
	d := wsys.New("Charis SIL", zaptest.NewLogger(t))
	if err := d.Add(1, "en", "Times New Roman"); err != nil {
		t.Fatal(err)
	}
	if err := d.Add(2, "ar", "Amiri"); err != nil {
		t.Fatal(err)
	}
	return d
}

func buildCatalog(t *testing.T, defs []sheet.Definition, wss *wsys.Directory) *style.Catalog {
	t.Helper()
	cat, err := sheet.NewBuilder(wss, zaptest.NewLogger(t)).Build(defs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := cat.ConnectStyles(); err != nil {
		t.Fatalf("ConnectStyles() error = %v", err)
	}
	return cat
}

func fixtureCatalog(t *testing.T) (*style.Catalog, *wsys.Directory) {
	t.Helper()
	defs, err := sheet.LoadYAML(strings.NewReader(fixture), "fixture")
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	wss := testDirectory(t)
	return buildCatalog(t, defs, wss), wss
}

func TestTree(t *testing.T) {
	cat, _ := fixtureCatalog(t)

	want := `Styles: 6 (normal "Normal", connected true)
  Emphasis [character #6]
  Normal [paragraph #1]
    Heading 1 [paragraph #2] next=Normal
      Heading 2 [paragraph #4]
      Heading 10 [paragraph #3]
    List [paragraph #5]
`
	if got := Tree(cat, false); got != want {
		t.Errorf("Tree() =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeCells(t *testing.T) {
	cat, _ := fixtureCatalog(t)
	got := Tree(cat, true)

	for _, want := range []string{
		"      usage: \"Top level heading\"\n",
		"        *size: 16pt\n",
		"         family: <default font>\n",
		"    ws 2:\n",
		"      *family: Amiri\n",
		"        *line spacing: 120%\n",
		"        *bullet: roman-lower start=2 before=\"\" after=\")\"\n",
		"      *underline: squiggle\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Tree() missing %q in\n%s", want, got)
		}
	}
	if Tree(nil, true) != "<nil Catalog>" {
		t.Error("Tree(nil) unexpected output")
	}
}

func TestIonRoundTrip(t *testing.T) {
	cat, _ := fixtureCatalog(t)

	for _, binary := range []bool{false, true} {
		data, err := MarshalIon(cat, binary)
		if err != nil {
			t.Fatalf("MarshalIon(binary=%t) error = %v", binary, err)
		}
		recs, err := UnmarshalIon(data)
		if err != nil {
			t.Fatalf("UnmarshalIon(binary=%t) error = %v", binary, err)
		}
		if len(recs) != cat.Len() {
			t.Fatalf("got %d records, want %d", len(recs), cat.Len())
		}

		h := recs[1]
		if h.Name != "Heading 1" || h.BasedOn != "Normal" || h.Next != "Normal" || h.UserLevel != 1 {
			t.Errorf("record = %+v", h)
		}
		if h.Font.Size != 16000 || !h.Font.Bold || h.Font.ForeColor != "#800000" {
			t.Errorf("font = %+v", h.Font)
		}
		if !slices.Equal(h.Font.Explicit, []string{"bold", "fore-color", "size"}) {
			t.Errorf("explicit = %v", h.Font.Explicit)
		}
		s, _ := cat.Lookup("Heading 1")
		if !bytes.Equal(h.Font.Blob, font.Encode(s.DefaultFont)) {
			t.Error("font blob differs")
		}
		if h.Paragraph == nil || h.Paragraph.LineSpacing != "120%" || h.Paragraph.SpaceAfter != 6000 {
			t.Errorf("paragraph = %+v", h.Paragraph)
		}

		var fontInfo []byte
		for _, p := range h.Props {
			if p.Prop == style.PropFontInfo.String() {
				fontInfo = p.Text
			}
		}
		if !bytes.Equal(fontInfo, font.Encode(s.DefaultFont)) {
			t.Errorf("font-info prop = %x", fontInfo)
		}

		normal := recs[0]
		if len(normal.Overrides) != 1 || normal.Overrides[0].WS != 2 || normal.Overrides[0].Font.Family != "Amiri" {
			t.Errorf("overrides = %+v", normal.Overrides)
		}
		if recs[5].Paragraph != nil || recs[5].Kind != "character" {
			t.Errorf("Emphasis = %+v", recs[5])
		}
	}
}

func TestCSSRoundTrip(t *testing.T) {
	cat, wss := fixtureCatalog(t)

	out := CSS(cat, wss, zaptest.NewLogger(t))
	text := out.String()
	for _, want := range []string{
		".heading-1 {",
		".normal:lang(ar) {",
		"/* paragraph style #2 */",
		`-style-name: "Heading 1";`,
		"-style-bullet: roman-lower;",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("CSS missing %q in\n%s", want, text)
		}
	}

	path := filepath.Join(t.TempDir(), "styles.css")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := sheet.NewCSSLoader(zaptest.NewLogger(t)).Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	back := buildCatalog(t, defs, wss)

	if back.Len() != cat.Len() {
		t.Fatalf("reloaded %d styles, want %d", back.Len(), cat.Len())
	}
	for _, s := range cat.Styles() {
		r, ok := back.Lookup(s.Name())
		if !ok {
			t.Errorf("style %q lost", s.Name())
			continue
		}
		if r.Kind() != s.Kind() || r.Guid != s.Guid || r.Usage != s.Usage || r.UserLevel != s.UserLevel {
			t.Errorf("%s: attributes differ", s.Name())
		}
		if linkName(r.BasedOn()) != linkName(s.BasedOn()) || linkName(r.Next()) != linkName(s.Next()) {
			t.Errorf("%s: links differ", s.Name())
		}
		if !r.DefaultFont.Equal(s.DefaultFont) {
			t.Errorf("%s: font %v, want %v", s.Name(), r.DefaultFont, s.DefaultFont)
		}
		if r.Paragraph != s.Paragraph {
			t.Errorf("%s: paragraph differs", s.Name())
		}
		if !slices.Equal(r.WritingSystems(), s.WritingSystems()) {
			t.Errorf("%s: writing systems %v, want %v", s.Name(), r.WritingSystems(), s.WritingSystems())
			continue
		}
		for _, ws := range s.WritingSystems() {
			a, _ := s.OverrideFor(ws)
			b, _ := r.OverrideFor(ws)
			if !a.Equal(*b) {
				t.Errorf("%s: override %d = %v, want %v", s.Name(), ws, *b, *a)
			}
		}
	}
}

func TestCSSWithoutWritingSystems(t *testing.T) {
	cat, _ := fixtureCatalog(t)
	out := CSS(cat, nil, zaptest.NewLogger(t))
	for _, r := range out.Rules {
		if r.Selector.Lang != "" {
			t.Errorf("unexpected override rule %s", r.Selector.Raw)
		}
	}
}

func TestClassNames(t *testing.T) {
	used := make(map[string]bool)
	a, b, c := style.New("Block Quote", style.KindParagraph), style.New("block-quote", style.KindParagraph), style.New("***", style.KindParagraph)
	if got := className(a, used); got != "block-quote" {
		t.Errorf("className(a) = %q", got)
	}
	if got := className(b, used); got != "block-quote-2" {
		t.Errorf("className(b) = %q", got)
	}
	if got := className(c, used); got != "style-0" {
		t.Errorf("className(c) = %q", got)
	}
}

func TestFonts(t *testing.T) {
	cat, _ := fixtureCatalog(t)

	got := Fonts(cat, 2)
	for _, want := range []string{
		"Fonts for writing system 2:\n",
		"  Normal:\n    *family: Amiri\n",
		// no override, magic name resolved through the directory
		"  Emphasis:\n     family: Amiri\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Fonts() missing %q in\n%s", want, got)
		}
	}

	got = Fonts(cat, 1)
	if !strings.Contains(got, "  Heading 1:\n     family: Times New Roman\n") {
		t.Errorf("Fonts(1) =\n%s", got)
	}
}

func TestFont(t *testing.T) {
	src := font.NewProperties()
	src.Bold.SetExplicit(true)
	p := font.Decode(font.Encode(src))

	got := Font(&p)
	if !strings.Contains(got, "*bold: true\n") || !strings.Contains(got, " italic: false\n") {
		t.Errorf("Font() =\n%s", got)
	}
}
