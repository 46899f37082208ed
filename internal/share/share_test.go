package share

import (
	"encoding/base64"
	"math/rand"
	"strings"
	"testing"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

func shareComponents(n int) []*models.ComponentItem {
	out := make([]*models.ComponentItem, 0, n)
	for i := 0; i < n; i++ {
		c := models.NewComponentItem("Button "+string(rune('A'+i)), "Button")
		c.HTML = `<button class="btn">go</button>`
		c.CSS = ".btn { color: red }"
		out = append(out, c)
	}
	return out
}

func TestShareRoundTrip(t *testing.T) {
	in := Input{
		Components:  shareComponents(2),
		ProjectName: "Demo",
		CommonFiles: []*models.CommonFile{
			models.NewCommonFile("base.css", "body { margin: 0 }", models.CommonFileCSS),
		},
	}
	token, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(token) > Budget {
		t.Fatalf("token over budget: %d", len(token))
	}
	if strings.ContainsAny(token, "+/= ") {
		t.Errorf("token not URL-safe: %q", token)
	}

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Version != models.ShareVersion {
		t.Errorf("version = %d, want %d", got.Version, models.ShareVersion)
	}
	if got.ProjectName != "Demo" || len(got.Components) != 2 || len(got.CommonFiles) != 1 {
		t.Errorf("payload mismatch: %+v", got)
	}
	if got.Components[0].Name != in.Components[0].Name {
		t.Errorf("component content lost: %+v", got.Components[0])
	}
}

func TestShareDegradationDropsAssets(t *testing.T) {
	// Incompressible asset data alone pushes the token over budget.
	huge := make([]byte, 64*1024)
	rand.New(rand.NewSource(1)).Read(huge)
	in := Input{
		Components:  shareComponents(1),
		ProjectName: "Demo",
		CommonAssets: []*models.CommonAsset{
			{ID: "a1", Name: "photo.png", DataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(huge)},
		},
	}
	token, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(token) > Budget {
		t.Fatalf("degraded token over budget: %d", len(token))
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.CommonAssets) != 0 {
		t.Error("assets survived degradation")
	}
	if len(got.Components) != 1 || got.ProjectName != "Demo" {
		t.Errorf("first degradation stage dropped too much: %+v", got)
	}
}

func TestShareDegradationComponentsOnly(t *testing.T) {
	files := []*models.CommonFile{}
	// Incompressible file contents force the second degradation stage.
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 4; i++ {
		content := make([]byte, 16*1024)
		rng.Read(content)
		files = append(files, models.NewCommonFile("f.css", base64.StdEncoding.EncodeToString(content), models.CommonFileCSS))
	}
	in := Input{Components: shareComponents(1), ProjectName: "Demo", CommonFiles: files}

	token, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.CommonFiles) != 0 || got.ProjectName != "" {
		t.Error("second degradation stage did not drop files and name")
	}
	if len(got.Components) != 1 {
		t.Error("components must survive every stage")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, token := range []string{
		"",
		"not-a-token",
		base64.RawURLEncoding.EncodeToString([]byte("not deflate")),
	} {
		if _, err := Decode(token); err != ErrInvalidToken {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	for _, doc := range []string{
		`{"components":[],"v":0}`,
		`{"components":[],"v":99}`,
		`{"components":[],"v":"2"}`,
		`{"v":2}`,
		`{"components":{},"v":2}`,
	} {
		compressed, err := deflate([]byte(doc))
		if err != nil {
			t.Fatalf("deflate: %v", err)
		}
		token := base64.RawURLEncoding.EncodeToString(compressed)
		if _, err := Decode(token); err != ErrInvalidToken {
			t.Errorf("Decode(%s) err = %v, want ErrInvalidToken", doc, err)
		}
	}
}

func TestDecodeAcceptsOlderVersion(t *testing.T) {
	compressed, err := deflate([]byte(`{"components":[],"v":1}`))
	if err != nil {
		t.Fatalf("deflate: %v", err)
	}
	got, err := Decode(base64.RawURLEncoding.EncodeToString(compressed))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want 1", got.Version)
	}
}

func TestDecodeRetriesSpaceMangling(t *testing.T) {
	compressed, err := deflate([]byte(`{"components":[],"v":2}`))
	if err != nil {
		t.Fatalf("deflate: %v", err)
	}
	token := base64.StdEncoding.EncodeToString(compressed)
	mangled := strings.ReplaceAll(token, "+", " ")
	if _, err := Decode(mangled); err != nil {
		t.Errorf("mangled token rejected: %v", err)
	}
}
