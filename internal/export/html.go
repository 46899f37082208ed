package export

import (
	"strings"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

func escapeAttr(s string) string { return htmlEscaper.Replace(s) }

// BuildIndexHTML renders the guide index document: components grouped
// by category in order of first appearance, each as a labeled block of
// its asset-rewritten markup. All literal text is entity-escaped.
func BuildIndexHTML(p *models.Project, cssRefs, jsRefs []string, assetPaths map[string]string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + escapeHTML(p.Name) + "</title>\n")
	for _, ref := range cssRefs {
		b.WriteString(`<link rel="stylesheet" href="` + escapeAttr(ref) + "\">\n")
	}
	b.WriteString("</head>\n<body class=\"guide\">\n")

	b.WriteString("<header class=\"guide-header\">\n<h1>" + escapeHTML(p.Name) + "</h1>\n")
	if p.Description != "" {
		b.WriteString("<p>" + escapeHTML(p.Description) + "</p>\n")
	}
	b.WriteString("</header>\n<main>\n")

	for _, group := range groupByCategory(p) {
		b.WriteString(`<section class="guide-category">` + "\n")
		b.WriteString("<h2>" + escapeHTML(group.category) + "</h2>\n")
		for _, c := range group.components {
			b.WriteString(`<article class="guide-component" id="c-` + escapeAttr(c.ID) + "\">\n")
			b.WriteString("<h3>" + escapeHTML(c.Name) + "</h3>\n")
			if c.Description != "" {
				b.WriteString(`<p class="guide-component-desc">` + escapeHTML(c.Description) + "</p>\n")
			}
			b.WriteString(`<div class="guide-component-body">` + "\n")
			b.WriteString(RewriteHTMLAssetRefs(c.HTML, assetPaths))
			b.WriteString("\n</div>\n</article>\n")
		}
		b.WriteString("</section>\n")
	}

	b.WriteString("</main>\n")
	for _, ref := range jsRefs {
		b.WriteString(`<script src="` + escapeAttr(ref) + "\"></script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

type categoryGroup struct {
	category   string
	components []*models.ComponentItem
}

// groupByCategory groups components by category in order of first
// appearance in the (sorted) component list.
func groupByCategory(p *models.Project) []categoryGroup {
	var groups []categoryGroup
	index := map[string]int{}
	for _, c := range p.Components {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, categoryGroup{category: c.Category})
		}
		groups[i].components = append(groups[i].components, c)
	}
	return groups
}
