// Package preview assembles the self-contained HTML document rendered
// inside the sandboxed preview frame, and tracks the frame's reported
// height on the host side.
package preview

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// RootSelector is the fixed container every scoped component selector
// is prefixed with. Common styles always lose specificity ties against
// it without needing !important.
const RootSelector = "#__preview-root"

// HeightMessageType tags the cross-document height report messages.
const HeightMessageType = "lg-iframe-height"

// MergeCommonCSS concatenates the css-kind common files. A file
// literally named component.css sorts last so the generated
// per-component layer wins ordering against project-wide files.
func MergeCommonCSS(files []*models.CommonFile) string {
	return mergeCommon(files, models.CommonFileCSS, "component.css")
}

// MergeCommonJS concatenates the js-kind common files with component.js
// sorted last.
func MergeCommonJS(files []*models.CommonFile) string {
	return mergeCommon(files, models.CommonFileJS, "component.js")
}

func mergeCommon(files []*models.CommonFile, kind models.CommonFileKind, derivedName string) string {
	var head, tail []string
	for _, f := range files {
		if f.Kind != kind {
			continue
		}
		content := strings.TrimSpace(f.Content)
		if content == "" {
			continue
		}
		if f.Name == derivedName {
			tail = append(tail, content)
			continue
		}
		head = append(head, content)
	}
	return strings.Join(append(head, tail...), "\n\n")
}

// ScopeComponentCSS prefixes every top-level selector with the preview
// root selector. Comma-separated compound selectors are prefixed
// independently. At-rules are left untouched, including their bodies:
// only the literal rule list at nesting depth zero is rewritten.
// Comments are copied through to the output but never count toward
// nesting depth; a comment inside a pending selector stays with it.
func ScopeComponentCSS(css string) string {
	var out, sel strings.Builder
	depth := 0
	for i := 0; i < len(css); i++ {
		ch := css[i]
		if ch == '/' && i+1 < len(css) && css[i+1] == '*' {
			comment := css[i:]
			if end := strings.Index(css[i+2:], "*/"); end >= 0 {
				comment = css[i : i+2+end+2]
				i += 2 + end + 1
			} else {
				i = len(css)
			}
			writeComment(&out, &sel, depth, comment)
			continue
		}
		if ch == '/' && i+1 < len(css) && css[i+1] == '/' && depth == 0 && lineCommentStart(css, i) {
			j := i
			for j < len(css) && css[j] != '\n' {
				j++
			}
			writeComment(&out, &sel, depth, css[i:j])
			i = j - 1
			continue
		}
		switch ch {
		case '{':
			if depth == 0 {
				out.WriteString(prefixSelectors(sel.String()))
				sel.Reset()
			}
			depth++
			out.WriteByte(ch)
		case '}':
			if depth > 0 {
				depth--
			}
			out.WriteByte(ch)
		default:
			if depth == 0 {
				sel.WriteByte(ch)
			} else {
				out.WriteByte(ch)
			}
		}
	}
	out.WriteString(sel.String())
	return out.String()
}

// writeComment emits a comment without disturbing rule parsing. Between
// rules it flushes any pending whitespace first so ordering is kept;
// mid-selector it rides along inside the selector text.
func writeComment(out, sel *strings.Builder, depth int, comment string) {
	if depth == 0 && strings.TrimSpace(sel.String()) != "" {
		sel.WriteString(comment)
		return
	}
	if depth == 0 {
		out.WriteString(sel.String())
		sel.Reset()
	}
	out.WriteString(comment)
}

func prefixSelectors(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "@") {
		return raw
	}
	lead := raw[:len(raw)-len(strings.TrimLeft(raw, " \t\r\n"))]
	parts := strings.Split(trimmed, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			parts[i] = p
			continue
		}
		parts[i] = RootSelector + " " + p
	}
	return lead + strings.Join(parts, ", ")
}

// lineCommentStart reports whether a // at i begins a line comment: only
// at the beginning of a line or after whitespace or a rule delimiter, so
// url(http://...) survives.
func lineCommentStart(css string, i int) bool {
	if i == 0 {
		return true
	}
	switch css[i-1] {
	case ' ', '\t', '\n', '\r', ';', '{', '}':
		return true
	}
	return false
}

var urlRefPattern = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

// ReplaceAssetURLsInCSS rewrites url(...) references whose value
// contains a known asset name to that asset's data URI. Matching is a
// filename string match, not path resolution; exports rewrite the same
// references to relative paths instead.
func ReplaceAssetURLsInCSS(css string, assets map[string]string) string {
	if len(assets) == 0 {
		return css
	}
	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}
	// Longest name first so logo@2x.png beats logo.png.
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	return urlRefPattern.ReplaceAllStringFunc(css, func(m string) string {
		inner := urlRefPattern.FindStringSubmatch(m)[1]
		for _, name := range names {
			if strings.Contains(inner, name) {
				return `url("` + assets[name] + `")`
			}
		}
		return m
	})
}

// escapeCSSForHTML defends inlined CSS against prematurely closing the
// enclosing style tag.
func escapeCSSForHTML(css string) string {
	return strings.ReplaceAll(css, "</style", `<\/style`)
}

// escapeJSForHTML defends inlined JS against prematurely closing the
// enclosing script tag.
func escapeJSForHTML(js string) string {
	return strings.ReplaceAll(js, "</script", `<\/script`)
}

// DocumentInput carries the pieces of one component preview.
type DocumentInput struct {
	ComponentHTML string
	ComponentCSS  string
	ComponentJS   string
	CommonCSS     string
	CommonJS      string
	// Assets maps asset name to data URI for url() inlining and the
	// in-document getAsset helper.
	Assets map[string]string
}

// BuildDocument assembles the complete preview document. The produced
// markup prevents navigation away from the sandbox and reports its
// rendered height to the host on load, on a short retrigger schedule,
// and continuously via mutation/resize observation.
func BuildDocument(in DocumentInput) string {
	commonCSS := escapeCSSForHTML(ReplaceAssetURLsInCSS(in.CommonCSS, in.Assets))
	componentCSS := escapeCSSForHTML(ScopeComponentCSS(ReplaceAssetURLsInCSS(in.ComponentCSS, in.Assets)))
	commonJS := escapeJSForHTML(in.CommonJS)
	componentJS := escapeJSForHTML(in.ComponentJS)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<style>\n" + commonCSS + "\n</style>\n")
	b.WriteString("<style>\n" + componentCSS + "\n</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(`<div id="__preview-root">` + "\n" + in.ComponentHTML + "\n</div>\n")
	b.WriteString("<script>\n" + assetScript(in.Assets) + "\n</script>\n")
	b.WriteString("<script>\n" + navigationGuardScript + "\n</script>\n")
	if commonJS != "" {
		b.WriteString("<script>\n" + commonJS + "\n</script>\n")
	}
	if componentJS != "" {
		b.WriteString("<script>\n" + componentJS + "\n</script>\n")
	}
	b.WriteString("<script>\n" + heightReportScript + "\n</script>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// assetScript exposes the asset map and a getAsset lookup inside the
// document.
func assetScript(assets map[string]string) string {
	data, err := json.Marshal(assets)
	if err != nil || assets == nil {
		data = []byte("{}")
	}
	return "window.__assets = " + escapeJSForHTML(string(data)) + ";\n" +
		"window.getAsset = function(name) { return window.__assets[name] || ''; };"
}

// navigationGuardScript intercepts link clicks and form submissions so
// the sandbox never navigates away.
const navigationGuardScript = `document.addEventListener('click', function (e) {
  var el = e.target;
  while (el && el.tagName !== 'A') { el = el.parentElement; }
  if (el) { e.preventDefault(); }
}, true);
document.addEventListener('submit', function (e) { e.preventDefault(); }, true);`

// heightReportScript measures the rendered height and posts it to the
// host. Immediate plus 200ms/800ms retriggers absorb async layout
// shifts such as font loading; observers cover everything after that.
const heightReportScript = `(function () {
  var root = document.getElementById('__preview-root');
  function measure() {
    var h = Math.max(
      root ? root.scrollHeight : 0,
      root ? root.offsetHeight : 0,
      document.body ? document.body.scrollHeight : 0,
      document.documentElement ? document.documentElement.scrollHeight : 0
    );
    parent.postMessage({ type: '` + HeightMessageType + `', height: h }, '*');
  }
  window.addEventListener('load', measure);
  measure();
  setTimeout(measure, 200);
  setTimeout(measure, 800);
  if (window.ResizeObserver && root) { new ResizeObserver(measure).observe(root); }
  if (window.MutationObserver && root) {
    new MutationObserver(measure).observe(root, { childList: true, subtree: true, attributes: true });
  }
})();`
