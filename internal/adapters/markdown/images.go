package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"tasknote/internal/ports"
)

var imagesKey = parser.NewContextKey()

// imageTransformer rewrites image destinations through the request's resolver
type imageTransformer struct{}

func (t *imageTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	resolver, _ := pc.Get(imagesKey).(ports.ImageResolver)
	if resolver == nil {
		return
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok {
			if dest, ok := resolver.ResolveImage(string(img.Destination)); ok {
				img.Destination = []byte(dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

type imageExtension struct{}

func (e *imageExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&imageTransformer{}, 200),
	))
}
