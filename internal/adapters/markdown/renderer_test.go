package markdown

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"tasknote/internal/ports"
)

var inputTagRe = regexp.MustCompile(`<input[^>]*>`)

func newTestRenderer(t *testing.T, cacheSize int) *Renderer {
	t.Helper()
	r, err := NewRenderer(cacheSize, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r
}

func render(t *testing.T, r *Renderer, req ports.RenderRequest) ports.RenderResult {
	t.Helper()
	res, err := r.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return res
}

// inputs returns the rendered checkbox tags in document order
func inputs(html string) []string {
	return inputTagRe.FindAllString(html, -1)
}

func TestRender_CheckboxesCarryOrdinals(t *testing.T) {
	r := newTestRenderer(t, 0)

	res := render(t, r, ports.RenderRequest{Document: "- [ ] Buy milk\n- [x] Walk dog"})

	tags := inputs(res.HTML)
	if len(tags) != 2 {
		t.Fatalf("expected 2 checkboxes, got %d in %s", len(tags), res.HTML)
	}
	if !strings.Contains(tags[0], `data-task-index="0"`) || strings.Contains(tags[0], "checked") {
		t.Errorf("unexpected first checkbox: %s", tags[0])
	}
	if !strings.Contains(tags[1], `data-task-index="1"`) || !strings.Contains(tags[1], `checked=""`) {
		t.Errorf("unexpected second checkbox: %s", tags[1])
	}
	if strings.Contains(tags[0], "disabled") {
		t.Errorf("indexed checkbox should be interactive: %s", tags[0])
	}
	if res.Tasks != 2 {
		t.Errorf("Tasks = %d, want 2", res.Tasks)
	}
}

func TestRender_OrdinalsFollowScan(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		wantIndexes []string // "" for an unindexed checkbox
	}{
		{
			name:        "plain text between tasks",
			document:    "Some text\n\n- [ ] Task A\n\nMore text\n\n- [ ] Task B",
			wantIndexes: []string{"0", "1"},
		},
		{
			name:        "frontmatter is not rendered",
			document:    "---\ntitle: x\n---\n- [ ] a\n- [ ] b\n",
			wantIndexes: []string{"0", "1"},
		},
		{
			name:        "fenced example is skipped",
			document:    "```md\n- [ ] example\n```\n\n- [ ] real\n",
			wantIndexes: []string{"0"},
		},
		{
			name:        "fence inside a list item ends with the item",
			document:    "- item\n  ```\n- [ ] real\n",
			wantIndexes: []string{"0"},
		},
		{
			name:        "backticks indented four spaces are code",
			document:    "    ```\n\n- [ ] real\n",
			wantIndexes: []string{"0"},
		},
		{
			name:        "nested and ordered lists",
			document:    "1. [ ] one\n   - [x] nested\n2. [ ] two\n",
			wantIndexes: []string{"0", "1", "2"},
		},
		{
			name:        "blockquote checkbox is not indexed",
			document:    "> - [ ] quoted\n\n- [ ] real\n",
			wantIndexes: []string{"", "0"},
		},
	}

	r := newTestRenderer(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := render(t, r, ports.RenderRequest{Document: tt.document})
			tags := inputs(res.HTML)
			if len(tags) != len(tt.wantIndexes) {
				t.Fatalf("expected %d checkboxes, got %d in %s", len(tt.wantIndexes), len(tags), res.HTML)
			}
			for i, want := range tt.wantIndexes {
				if want == "" {
					if strings.Contains(tags[i], "data-task-index") || !strings.Contains(tags[i], "disabled") {
						t.Errorf("checkbox %d should be disabled without index: %s", i, tags[i])
					}
					continue
				}
				if !strings.Contains(tags[i], `data-task-index="`+want+`"`) {
					t.Errorf("checkbox %d = %s, want index %s", i, tags[i], want)
				}
			}
			if strings.Contains(res.HTML, "title: x") {
				t.Errorf("frontmatter leaked into output: %s", res.HTML)
			}
		})
	}
}

func TestRender_Sanitizes(t *testing.T) {
	r := newTestRenderer(t, 0)

	doc := "# Title\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\" onclick=\"x()\">bad</a>\n\n<input type=\"text\" data-task-index=\"abc\">\n"
	res := render(t, r, ports.RenderRequest{Document: doc})

	for _, banned := range []string{"<script", "javascript:", "onclick", `type="text"`, `data-task-index="abc"`} {
		if strings.Contains(res.HTML, banned) {
			t.Errorf("output contains %q: %s", banned, res.HTML)
		}
	}
	if !strings.Contains(res.HTML, `<h1 id="title">Title</h1>`) {
		t.Errorf("heading id missing: %s", res.HTML)
	}
}

type fakeResolver map[string]string

func (f fakeResolver) ResolveImage(dest string) (string, bool) {
	v, ok := f[dest]
	return v, ok
}

func TestRender_ResolvesImages(t *testing.T) {
	r := newTestRenderer(t, 8)
	resolver := fakeResolver{"chart.png": "data:image/png;base64,AAAA"}

	res := render(t, r, ports.RenderRequest{
		Document: "![chart](chart.png)\n\n![remote](https://example.com/x.png)\n",
		Images:   resolver,
	})

	if !strings.Contains(res.HTML, `src="data:image/png;base64,AAAA"`) {
		t.Errorf("local image not inlined: %s", res.HTML)
	}
	if !strings.Contains(res.HTML, `src="https://example.com/x.png"`) {
		t.Errorf("remote image should be untouched: %s", res.HTML)
	}
	if r.cache.Len() != 0 {
		t.Error("renders with a resolver should not be cached")
	}
}

func TestRender_Cache(t *testing.T) {
	r := newTestRenderer(t, 2)
	req := ports.RenderRequest{Document: "- [ ] a\n"}

	first := render(t, r, req)
	second := render(t, r, req)
	if first != second {
		t.Errorf("cached result differs: %+v != %+v", first, second)
	}
	if r.cache.Len() != 1 {
		t.Errorf("cache len = %d, want 1", r.cache.Len())
	}

	render(t, r, ports.RenderRequest{Document: "- [x] a\n"})
	render(t, r, ports.RenderRequest{Document: "- [x] b\n"})
	if r.cache.Len() != 2 {
		t.Errorf("cache should be bounded, len = %d", r.cache.Len())
	}
}

func TestRender_CanceledContext(t *testing.T) {
	r := newTestRenderer(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, ports.RenderRequest{Document: "x"}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestLineAt(t *testing.T) {
	starts := lineStarts([]byte("ab\ncd\n\nef"))

	tests := map[int]int{0: 0, 2: 0, 3: 1, 6: 2, 7: 3, 8: 3}
	for offset, want := range tests {
		if got := lineAt(starts, offset); got != want {
			t.Errorf("lineAt(%d) = %d, want %d", offset, got, want)
		}
	}
}
