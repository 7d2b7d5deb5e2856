package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"tasknote/internal/domain"
	"tasknote/internal/logging"
	"tasknote/internal/ports"
)

// Renderer converts notes to sanitized HTML. It implements ports.Renderer.
type Renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	cache     *lru.Cache[string, ports.RenderResult] // nil when disabled
	logger    *log.Logger
}

// NewRenderer creates a renderer caching up to cacheSize results.
// A cacheSize of 0 disables the cache; a nil logger discards output.
func NewRenderer(cacheSize int, logger *log.Logger) (*Renderer, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&taskIndexExtension{},
			&imageExtension{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // scrubbed by the sanitizer below
		),
	)

	r := &Renderer{
		md:        md,
		sanitizer: NewPolicy(),
		logger:    logger,
	}

	if cacheSize > 0 {
		cache, err := lru.New[string, ports.RenderResult](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create render cache: %w", err)
		}
		r.cache = cache
	}

	return r, nil
}

// Render converts req.Document to HTML. Leading frontmatter is dropped and
// every checkbox on a scanned task line carries its ordinal in
// data-task-index.
func (r *Renderer) Render(ctx context.Context, req ports.RenderRequest) (ports.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.RenderResult{}, err
	}

	// Resolved images depend on the filesystem, so only plain renders are cached
	cacheable := r.cache != nil && req.Images == nil
	var key string
	if cacheable {
		key = cacheKey(req.Document)
		if res, ok := r.cache.Get(key); ok {
			r.logger.Debug("render cache hit", "key", key[:12])
			return res, nil
		}
	}

	offset, lines := domain.BodyOffset(req.Document)
	body := req.Document[offset:]

	pc := parser.NewContext()
	pc.Set(tasksKey, domain.ScanTasks(req.Document))
	pc.Set(lineOffsetKey, lines)
	if req.Images != nil {
		pc.Set(imagesKey, req.Images)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf, parser.WithContext(pc)); err != nil {
		return ports.RenderResult{}, fmt.Errorf("failed to render markdown: %w", err)
	}

	indexed, _ := pc.Get(indexedKey).(int)
	res := ports.RenderResult{
		HTML:  string(r.sanitizer.SanitizeBytes(buf.Bytes())),
		Tasks: indexed,
	}

	if cacheable {
		r.cache.Add(key, res)
	}
	r.logger.Debug("rendered note", "bytes", len(req.Document), "tasks", indexed)

	return res, nil
}

func cacheKey(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}
