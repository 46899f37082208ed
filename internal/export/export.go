// Package export materializes a project into real bytes: merged
// component stylesheets/scripts, a guide index document, and asset
// files, either as a flat download set or as a tree-resolved archive.
package export

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/preview"
)

// guideLayoutCSS is the fixed layout layer heading the generated
// component.css. Component-authored rules follow it and win ordering.
const guideLayoutCSS = `/* GUIDE_LAYOUT_CSS */
.guide { margin: 0; padding: 0 24px 48px; font-family: -apple-system, 'Segoe UI', sans-serif; color: #1e2124; }
.guide-header { padding: 32px 0 16px; border-bottom: 1px solid #e5e7eb; }
.guide-category { margin-top: 40px; }
.guide-category > h2 { font-size: 20px; border-left: 4px solid #246beb; padding-left: 8px; }
.guide-component { margin: 24px 0; padding: 16px; border: 1px solid #e5e7eb; border-radius: 8px; }
.guide-component > h3 { margin: 0 0 8px; font-size: 16px; }
.guide-component-desc { margin: 0 0 12px; color: #6b7280; font-size: 13px; }`

// MergedComponentCSS renders the component.css artifact: the guide
// layout header followed by every component's CSS grouped by category.
// Components are already sorted by (category, name).
func MergedComponentCSS(p *models.Project) string {
	var b strings.Builder
	b.WriteString(guideLayoutCSS)
	lastCategory := ""
	for _, c := range p.Components {
		css := strings.TrimSpace(c.CSS)
		if css == "" {
			continue
		}
		if c.Category != lastCategory {
			b.WriteString("\n\n/* ==== " + c.Category + " ==== */")
			lastCategory = c.Category
		}
		b.WriteString("\n\n/* " + c.Name + " */\n" + css)
	}
	return b.String()
}

// MergedComponentJS renders the component.js artifact. Each component's
// script runs in its own function scope so top-level names never clash.
func MergedComponentJS(p *models.Project) string {
	var parts []string
	for _, c := range p.Components {
		js := strings.TrimSpace(c.JS)
		if js == "" {
			continue
		}
		parts = append(parts, "/* "+c.Category+" / "+c.Name+" */\n(function () {\n"+js+"\n})();")
	}
	return strings.Join(parts, "\n\n")
}

// RenderedCommonFiles returns the project's common files with the two
// component-derived entries filled from component data. Missing derived
// entries are appended so merges always see them.
func RenderedCommonFiles(p *models.Project) []*models.CommonFile {
	out := make([]*models.CommonFile, 0, len(p.CommonFiles)+2)
	haveCSS, haveJS := false, false
	for _, f := range p.CommonFiles {
		switch {
		case f.Name == "component.css" && f.Kind == models.CommonFileCSS:
			haveCSS = true
			out = append(out, &models.CommonFile{ID: f.ID, Name: f.Name, Kind: f.Kind, Content: MergedComponentCSS(p)})
		case f.Name == "component.js" && f.Kind == models.CommonFileJS:
			haveJS = true
			out = append(out, &models.CommonFile{ID: f.ID, Name: f.Name, Kind: f.Kind, Content: MergedComponentJS(p)})
		default:
			out = append(out, f)
		}
	}
	if !haveCSS {
		out = append(out, models.NewCommonFile("component.css", MergedComponentCSS(p), models.CommonFileCSS))
	}
	if !haveJS {
		out = append(out, models.NewCommonFile("component.js", MergedComponentJS(p), models.CommonFileJS))
	}
	return out
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFileName maps every unsafe character to an underscore.
func sanitizeFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}

// AssetFileName computes the exported file name of an asset: the
// sanitized name plus an extension derived from the data URI.
func AssetFileName(a *models.CommonAsset) string {
	base := sanitizeFileName(a.Name)
	ext := extFromDataURI(a.DataURI)
	if strings.HasSuffix(strings.ToLower(base), ext) {
		return base
	}
	return base + ext
}

// extFromDataURI derives a file extension from the data URI's declared
// MIME subtype. Unparseable URIs get a generic binary extension.
func extFromDataURI(uri string) string {
	if !strings.HasPrefix(uri, "data:") {
		return ".bin"
	}
	meta := uri[len("data:"):]
	if i := strings.IndexAny(meta, ";,"); i >= 0 {
		meta = meta[:i]
	}
	slash := strings.Index(meta, "/")
	if slash < 0 {
		return ".bin"
	}
	switch sub := meta[slash+1:]; sub {
	case "png":
		return ".png"
	case "jpeg":
		return ".jpg"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	case "svg+xml":
		return ".svg"
	default:
		s := sanitizeFileName(sub)
		if s == "" {
			return ".bin"
		}
		return "." + s
	}
}

// dataURIToBytes decodes a data URI payload. The second return is false
// when the URI has no recognizable payload at all.
func dataURIToBytes(uri string) ([]byte, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, false
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, false
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]
	if strings.Contains(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, false
		}
		return b, true
	}
	unescaped, err := url.QueryUnescape(payload)
	if err != nil {
		return []byte(payload), true
	}
	return []byte(unescaped), true
}

// RewriteCSSAssetRefs rewrites url() references naming a known asset to
// its exported relative path. Same matching as the preview's inlining,
// opposite direction.
func RewriteCSSAssetRefs(css string, paths map[string]string) string {
	return preview.ReplaceAssetURLsInCSS(css, paths)
}

var getAssetPattern = regexp.MustCompile(`getAsset\(\s*['"]([^'"]+)['"]\s*\)`)

// RewriteJSAssetRefs rewrites getAsset('name') calls to string literals
// holding the asset's exported path. Unknown names are left as calls.
func RewriteJSAssetRefs(js string, paths map[string]string) string {
	return getAssetPattern.ReplaceAllStringFunc(js, func(m string) string {
		name := getAssetPattern.FindStringSubmatch(m)[1]
		if p, ok := paths[name]; ok {
			return "'" + p + "'"
		}
		return m
	})
}

var dataAssetPattern = regexp.MustCompile(`data-asset="([^"]+)"`)

// RewriteHTMLAssetRefs rewrites data-asset attributes to src attributes
// pointing at the asset's exported path.
func RewriteHTMLAssetRefs(html string, paths map[string]string) string {
	return dataAssetPattern.ReplaceAllStringFunc(html, func(m string) string {
		name := dataAssetPattern.FindStringSubmatch(m)[1]
		if p, ok := paths[name]; ok {
			return `src="` + escapeAttr(p) + `"`
		}
		return m
	})
}
