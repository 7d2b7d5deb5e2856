package filesystem

import (
	"encoding/base64"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tasknote/internal/ports"
)

// maxInlineImage caps the size of a file embedded as a data URI
const maxInlineImage = 8 << 20

// ImageResolver inlines local images referenced by a note as data URIs.
// It implements ports.ImageResolver.
type ImageResolver struct {
	repo *Repository
	dir  string // note directory, relative to the root
}

// ImageResolver returns a resolver for images referenced by the named note
func (r *Repository) ImageResolver(noteName string) ports.ImageResolver {
	return &ImageResolver{
		repo: r,
		dir:  path.Dir(filepath.ToSlash(noteName)),
	}
}

// ResolveImage maps a local image destination to a data URI.
// Remote and data URLs, missing files and paths leaving the notes
// directory are left untouched.
func (ir *ImageResolver) ResolveImage(dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", false
	}

	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}

	rel := u.Path
	if rel == "" {
		return "", false
	}
	if !strings.HasPrefix(rel, "/") {
		rel = path.Join(ir.dir, rel)
	}

	abs, err := ir.repo.resolve(strings.TrimPrefix(rel, "/"))
	if err != nil {
		return "", false
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(abs)))
	if !strings.HasPrefix(mimeType, "image/") {
		return "", false
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() || info.Size() > maxInlineImage {
		return "", false
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", false
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
