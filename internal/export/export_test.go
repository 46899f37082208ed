package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

func testProject(t *testing.T) *models.Project {
	t.Helper()
	p := models.NewProject("Guide")
	p.Description = "A <test> guide"
	p.FileTree = filetree.DefaultTree()

	btn := models.NewComponentItem("Primary", "Button")
	btn.HTML = `<img data-asset="logo.png" alt="logo">`
	btn.CSS = ".primary { background: url(logo.png) }"
	btn.JS = "var src = getAsset('logo.png');"
	card := models.NewComponentItem("Card", "Card")
	card.CSS = ".card { border: 0 }"
	p.Components = append(p.Components, btn, card)
	models.SortComponents(p.Components)

	p.CommonFiles = []*models.CommonFile{
		models.NewCommonFile("base.css", "body { margin: 0 }", models.CommonFileCSS),
		models.NewCommonFile("component.css", "", models.CommonFileCSS),
		models.NewCommonFile("component.js", "", models.CommonFileJS),
	}
	p.CommonAssets = []*models.CommonAsset{
		{ID: "a1", Name: "logo.png", DataURI: "data:image/png;base64,iVBORw0KGgo="},
	}
	return p
}

func TestAssetFileName(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"logo", "data:image/png;base64,AA==", "logo.png"},
		{"photo", "data:image/jpeg;base64,AA==", "photo.jpg"},
		{"anim", "data:image/gif;base64,AA==", "anim.gif"},
		{"pic", "data:image/webp;base64,AA==", "pic.webp"},
		{"icon", "data:image/svg+xml;base64,AA==", "icon.svg"},
		{"font file", "data:font/woff2;base64,AA==", "font_file.woff2"},
		{"blob", "not-a-data-uri", "blob.bin"},
		{"logo.png", "data:image/png;base64,AA==", "logo.png"},
		{"my logo!", "data:image/png;base64,AA==", "my_logo_.png"},
	}
	for _, tt := range tests {
		got := AssetFileName(&models.CommonAsset{Name: tt.name, DataURI: tt.uri})
		if got != tt.want {
			t.Errorf("AssetFileName(%q, %q) = %q, want %q", tt.name, tt.uri, got, tt.want)
		}
	}
}

func TestMergedComponentCSS(t *testing.T) {
	p := testProject(t)
	got := MergedComponentCSS(p)
	if !strings.HasPrefix(got, "/* GUIDE_LAYOUT_CSS */") {
		t.Error("layout header missing")
	}
	btn := strings.Index(got, ".primary")
	card := strings.Index(got, ".card")
	if btn < 0 || card < 0 || card < btn {
		t.Errorf("category grouping order wrong:\n%s", got)
	}
}

func TestRewriteJSAssetRefs(t *testing.T) {
	paths := map[string]string{"logo.png": "img/logo.png"}
	got := RewriteJSAssetRefs(`var a = getAsset('logo.png'); var b = getAsset("missing.png");`, paths)
	if !strings.Contains(got, "var a = 'img/logo.png';") {
		t.Errorf("known ref not rewritten: %q", got)
	}
	if !strings.Contains(got, `getAsset("missing.png")`) {
		t.Errorf("unknown ref must survive: %q", got)
	}
}

func TestBuildIndexHTML(t *testing.T) {
	p := testProject(t)
	paths := map[string]string{"logo.png": "img/logo.png"}
	got := BuildIndexHTML(p, []string{"css/component.css"}, []string{"js/component.js"}, paths)

	if !strings.Contains(got, "A &lt;test&gt; guide") {
		t.Error("description not entity-escaped")
	}
	if !strings.Contains(got, `src="img/logo.png"`) {
		t.Error("data-asset not rewritten to src")
	}
	if strings.Contains(got, "data-asset=") {
		t.Error("data-asset attribute survived rewriting")
	}
	btnSection := strings.Index(got, "<h2>Button</h2>")
	cardSection := strings.Index(got, "<h2>Card</h2>")
	if btnSection < 0 || cardSection < 0 || cardSection < btnSection {
		t.Error("categories not grouped in first-appearance order")
	}
}

func TestFilesFlatLayout(t *testing.T) {
	p := testProject(t)
	files := Files(p)

	for _, want := range []string{FlatCSSPath, FlatJSPath, "index.html", FlatImagesPath + "logo.png"} {
		if _, ok := files[want]; !ok {
			t.Errorf("flat set missing %q", want)
		}
	}
	css := string(files[FlatCSSPath])
	if !strings.Contains(css, "body { margin: 0 }") {
		t.Error("common css not merged into the flat stylesheet")
	}
	if !strings.Contains(css, `url("assets/images/logo.png")`) {
		t.Errorf("css asset ref not rewritten to the flat path: %q", css)
	}
	idx := string(files["index.html"])
	if !strings.Contains(idx, FlatCSSPath) {
		t.Error("index does not reference the flat stylesheet")
	}
}

func TestArchiveRelativePaths(t *testing.T) {
	p := testProject(t)
	files := Archive(p)

	// index.html sits in WebContent, so everything resolves relative to it.
	for _, want := range []string{"index.html", "css/component.css", "js/component.js", "css/base.css", "img/logo.png"} {
		if _, ok := files[want]; !ok {
			t.Errorf("archive missing %q (have %v)", want, keys(files))
		}
	}
	css := string(files["css/component.css"])
	if !strings.Contains(css, `url("img/logo.png")`) {
		t.Errorf("archive css ref not rewritten: %q", css)
	}
	js := string(files["js/component.js"])
	if !strings.Contains(js, "'img/logo.png'") {
		t.Errorf("archive js ref not rewritten: %q", js)
	}
}

func TestArchivePathFallback(t *testing.T) {
	p := testProject(t)
	// Strip the conventional nodes entirely: resolution must fall back
	// to the documented defaults instead of failing.
	p.FileTree = []*models.FileNode{}
	files := Archive(p)
	if _, ok := files["css/component.css"]; !ok {
		t.Errorf("fallback css path missing (have %v)", keys(files))
	}
	if _, ok := files["index.html"]; !ok {
		t.Error("fallback index path missing")
	}
}

func TestRelativeTo(t *testing.T) {
	tests := []struct {
		dir, target, want string
	}{
		{"WebContent", "WebContent/css/a.css", "css/a.css"},
		{"WebContent", "Other/a.css", "../Other/a.css"},
		{".", "a.css", "a.css"},
		{"a/b", "a/c/d.css", "../c/d.css"},
	}
	for _, tt := range tests {
		if got := relativeTo(tt.dir, tt.target); got != tt.want {
			t.Errorf("relativeTo(%q, %q) = %q, want %q", tt.dir, tt.target, got, tt.want)
		}
	}
}

func TestWriteZipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := map[string][]byte{
		"index.html":  []byte("<html></html>"),
		"img/a.png":   {0x89, 0x50},
		"css/app.css": []byte("body{}"),
	}
	if err := WriteZip(&buf, in); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	if len(zr.File) != len(in) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(in))
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		var out bytes.Buffer
		if _, err := out.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		rc.Close()
		if !bytes.Equal(out.Bytes(), in[f.Name]) {
			t.Errorf("entry %s content mismatch", f.Name)
		}
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
