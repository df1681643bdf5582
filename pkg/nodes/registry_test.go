package nodes

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

func testCtx(n *model.Node) Ctx {
	r := lipgloss.NewRenderer(&strings.Builder{})
	return Ctx{Node: n, Root: n, Width: 80, Styles: DefaultStyles(r)}
}

func TestRegistryResolveRegistered(t *testing.T) {
	r := NewRegistry()
	r.Register("greeting", RendererFunc(func(c Ctx) string { return "hello " + c.Node.Title }))

	renderer, ok := r.Resolve("greeting")
	if !ok {
		t.Fatal("expected greeting to be registered")
	}
	out := renderer.Render(testCtx(&model.Node{Title: "world"}))
	if out != "hello world" {
		t.Errorf("unexpected render output: %q", out)
	}
}

func TestRegistryUnknownVariantFallsBack(t *testing.T) {
	r := NewRegistry()
	renderer, ok := r.Resolve("no-such-variant")
	if ok {
		t.Error("unknown variant reported as registered")
	}
	if renderer == nil {
		t.Fatal("fallback renderer missing")
	}
	out := renderer.Render(testCtx(&model.Node{
		ID:      "n1",
		Type:    model.NodeItem,
		Variant: "no-such-variant",
	}))
	if !strings.Contains(out, "n1") || !strings.Contains(out, `"no-such-variant"`) {
		t.Errorf("debug fallback should dump id and variant, got %q", out)
	}
}

func TestRegistryAlias(t *testing.T) {
	r := NewRegistry()
	r.Register("target", RendererFunc(func(Ctx) string { return "target output" }))
	r.Alias("legacy", "target")

	renderer, ok := r.Resolve("legacy")
	if !ok {
		t.Fatal("alias not resolvable")
	}
	if got := renderer.Render(testCtx(&model.Node{})); got != "target output" {
		t.Errorf("alias rendered %q", got)
	}

	// Alias captures the binding at alias time.
	r.Register("target", RendererFunc(func(Ctx) string { return "replaced" }))
	renderer, _ = r.Resolve("legacy")
	if got := renderer.Render(testCtx(&model.Node{})); got != "target output" {
		t.Errorf("alias should keep original binding, rendered %q", got)
	}
}

func TestRegistryAliasUnknownTargetIgnored(t *testing.T) {
	r := NewRegistry()
	r.Alias("dangling", "missing")
	if _, ok := r.Resolve("dangling"); ok {
		t.Error("alias to unknown target should not register")
	}
}

func TestDefaultRegistryVariants(t *testing.T) {
	r := DefaultRegistry()
	for _, v := range []string{VariantFolder, VariantTaskRow, VariantNoteCard, VariantEventRow, VariantDebug, "todo", "card", "directory"} {
		if _, ok := r.Resolve(v); !ok {
			t.Errorf("variant %q missing from default registry", v)
		}
	}
}

func TestSetFallback(t *testing.T) {
	r := NewRegistry()
	r.SetFallback(RendererFunc(func(Ctx) string { return "custom fallback" }))
	renderer, _ := r.Resolve("whatever")
	if got := renderer.Render(testCtx(&model.Node{})); got != "custom fallback" {
		t.Errorf("custom fallback not used, got %q", got)
	}
}
