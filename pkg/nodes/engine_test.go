package nodes

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

func newTestEngine(reg *Registry) *Engine {
	r := lipgloss.NewRenderer(&strings.Builder{})
	return NewEngine(reg, DefaultStyles(r), 80)
}

func TestEngineRendersNil(t *testing.T) {
	e := newTestEngine(nil)
	if got := e.Render(nil); got != "" {
		t.Errorf("nil root should render empty, got %q", got)
	}
}

func TestEngineRecursiveRender(t *testing.T) {
	root := &model.Node{
		ID: "root", Type: model.NodeContainer, Variant: VariantFolder, Title: "Home",
		Children: []*model.Node{
			{ID: "t1", Type: model.NodeItem, Variant: VariantTaskRow, Title: "Water plants"},
			{ID: "t2", Type: model.NodeItem, Variant: VariantTaskRow, Title: "Take out trash",
				Metadata: model.MetaData{"status": "done"}},
		},
	}

	out := newTestEngine(nil).Render(root)
	for _, want := range []string{"Home", "Water plants", "Take out trash", "[ ]", "[x]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Children are indented under the folder header.
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d", len(lines))
	}
	for _, line := range lines[1:] {
		if line != "" && !strings.HasPrefix(line, "  ") {
			t.Errorf("child line not indented: %q", line)
		}
	}
}

func TestEngineDepthThreaded(t *testing.T) {
	reg := NewRegistry()
	var depths []int
	reg.Register("probe", RendererFunc(func(c Ctx) string {
		depths = append(depths, c.Depth)
		if c.Root.ID != "a" {
			t.Errorf("root not threaded, got %q", c.Root.ID)
		}
		return c.Node.ID
	}))

	root := &model.Node{ID: "a", Variant: "probe", Children: []*model.Node{
		{ID: "b", Variant: "probe", Children: []*model.Node{
			{ID: "c", Variant: "probe"},
		}},
	}}
	newTestEngine(reg).Render(root)

	if len(depths) != 3 || depths[0] != 0 || depths[1] != 1 || depths[2] != 2 {
		t.Errorf("unexpected depths: %v", depths)
	}
}

func TestEngineUnknownVariantUsesFallback(t *testing.T) {
	root := &model.Node{ID: "x", Variant: "definitely-not-registered"}
	out := newTestEngine(nil).Render(root)
	if !strings.Contains(out, "definitely-not-registered") {
		t.Errorf("fallback dump expected, got %q", out)
	}
}

func TestEngineDepthLimit(t *testing.T) {
	// Build a chain deeper than the render limit; rendering must not
	// blow the stack and must stop quietly.
	root := &model.Node{ID: "n0", Variant: VariantTaskRow, Title: "n0"}
	cur := root
	for i := 1; i < MaxRenderDepth+10; i++ {
		next := &model.Node{ID: "n", Variant: VariantTaskRow, Title: "n"}
		cur.Children = []*model.Node{next}
		cur = next
	}
	out := newTestEngine(nil).Render(root)
	if out == "" {
		t.Error("expected partial output")
	}
}
