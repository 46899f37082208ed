package guide

import (
	"fmt"
	"hash/fnv"

	"github.com/good-yellow-bee/liveguide/internal/models"
)

// viewCache memoizes derived system-template views per kind. The cache
// key is a hash of the overriding inputs, so a changed meta override
// misses and rebuilds the view instead of serving a stale one.
type viewCache struct {
	views map[models.TemplateKind]cachedView
}

type cachedView struct {
	key     uint64
	project *models.Project
}

func newViewCache() *viewCache {
	return &viewCache{views: make(map[models.TemplateKind]cachedView)}
}

func (c *viewCache) get(kind models.TemplateKind, key uint64) *models.Project {
	v, ok := c.views[kind]
	if !ok || v.key != key {
		return nil
	}
	return v.project
}

func (c *viewCache) put(kind models.TemplateKind, key uint64, p *models.Project) {
	c.views[kind] = cachedView{key: key, project: p}
}

func (c *viewCache) invalidate(kind models.TemplateKind) {
	delete(c.views, kind)
}

// viewKey hashes the meta override fields that feed a template view.
func viewKey(meta *models.TemplateMeta) uint64 {
	h := fnv.New64a()
	if meta != nil {
		fmt.Fprintf(h, "%s\x00%s\x00%s", meta.Name, meta.Description, meta.CoverImage)
	}
	return h.Sum64()
}
