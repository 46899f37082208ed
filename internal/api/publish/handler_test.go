package publish

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/zip"

	"github.com/good-yellow-bee/liveguide/internal/guide"
	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/seed"
	"github.com/good-yellow-bee/liveguide/internal/storage"
)

func newTestSetup(t *testing.T) (*chi.Mux, *models.Project) {
	t.Helper()
	store := guide.NewStore(
		seed.NewLoader(""),
		storage.NewLocalStore(filepath.Join(t.TempDir(), "state.json")),
		nil,
	)
	if err := store.Open(); err != nil {
		t.Fatalf("open store: %v", err)
	}

	p, err := store.CreateProject("Demo", guide.CreateOptions{})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := store.AddComponent(p.ID, guide.ComponentInput{
		Name:     "Primary",
		Category: "Button",
		HTML:     `<button class="btn">go</button>`,
		CSS:      ".btn { color: red }",
	}); err != nil {
		t.Fatalf("add component: %v", err)
	}

	h := NewHandler(store)
	r := chi.NewRouter()
	r.Route("/projects/{id}", func(r chi.Router) {
		r.Post("/preview", h.Preview)
		r.Get("/export", h.ExportArchive)
		r.Get("/export/files", h.ExportFiles)
	})
	r.Post("/share", h.EncodeShare)
	r.Get("/share/{token}", h.DecodeShare)

	// Re-read so the component list is current.
	p, err = store.GetProject(p.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	return r, p
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestPreviewDocument(t *testing.T) {
	r, p := newTestSetup(t)

	rec := postJSON(t, r, "/projects/"+p.ID+"/preview", PreviewRequest{ComponentID: p.Components[0].ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp PreviewResponse
	decodeData(t, rec, &resp)
	if !strings.Contains(resp.Document, `<button class="btn">go</button>`) {
		t.Error("component html missing from document")
	}
	if !strings.Contains(resp.Document, resp.RootSelector) {
		t.Error("root selector missing from document")
	}
	if resp.HeightMessageType == "" {
		t.Error("height message type empty")
	}
}

func TestPreviewDraftOverride(t *testing.T) {
	r, p := newTestSetup(t)

	draft := "<em>draft</em>"
	rec := postJSON(t, r, "/projects/"+p.ID+"/preview", PreviewRequest{
		ComponentID: p.Components[0].ID,
		HTML:        &draft,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp PreviewResponse
	decodeData(t, rec, &resp)
	if !strings.Contains(resp.Document, draft) {
		t.Error("draft override not rendered")
	}
	if strings.Contains(resp.Document, `<button class="btn">go</button>`) {
		t.Error("stored html rendered despite override")
	}
}

func TestPreviewUnknownComponent(t *testing.T) {
	r, p := newTestSetup(t)

	rec := postJSON(t, r, "/projects/"+p.ID+"/preview", PreviewRequest{ComponentID: "nope"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestExportArchiveZip(t *testing.T) {
	r, p := newTestSetup(t)

	rec := getPath(t, r, "/projects/"+p.ID+"/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["index.html"] {
		t.Errorf("zip missing index.html (have %v)", names)
	}
}

func TestExportFilesFlat(t *testing.T) {
	r, p := newTestSetup(t)

	rec := getPath(t, r, "/projects/"+p.ID+"/export/files")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var files map[string]string
	decodeData(t, rec, &files)
	for _, want := range []string{"index.html", "assets/css/component.css", "assets/js/component.js"} {
		if _, ok := files[want]; !ok {
			t.Errorf("flat export missing %q", want)
		}
	}
}

func TestShareRoundTripOverHTTP(t *testing.T) {
	r, p := newTestSetup(t)

	rec := postJSON(t, r, "/share", ShareRequest{ProjectID: p.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("encode status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp ShareResponse
	decodeData(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	rec = getPath(t, r, "/share/"+resp.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("decode status = %d", rec.Code)
	}
	var payload models.SharePayload
	decodeData(t, rec, &payload)
	if len(payload.Components) != 1 || payload.ProjectName != "Demo" {
		t.Errorf("unexpected payload: %+v", payload)
	}

	rec = getPath(t, r, "/share/not-a-token")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("garbage token status = %d, want 400", rec.Code)
	}
}
