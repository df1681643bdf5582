package nodes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// MaxRenderDepth bounds recursion for pathological trees. The transform
// never produces cycles, but sandbox documents are hand-authored JSON and
// can nest arbitrarily deep.
const MaxRenderDepth = 64

// indentWidth is the per-level indent applied to child output.
const indentWidth = 2

// Styles carries the lipgloss styles renderers share. The UI layer builds
// one from its theme; tests use DefaultStyles against a plain renderer.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Done     lipgloss.Style
	Debug    lipgloss.Style
}

// DefaultStyles returns unadorned styles bound to the given renderer.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true),
		Subtitle: r.NewStyle(),
		Muted:    r.NewStyle().Faint(true),
		Badge:    r.NewStyle().Bold(true),
		Done:     r.NewStyle().Strikethrough(true).Faint(true),
		Debug:    r.NewStyle().Faint(true),
	}
}

// Ctx is the render context threaded through a render pass. Root and Depth
// let renderers vary output by position; Width is the usable column width
// at the current indent level.
type Ctx struct {
	Node   *model.Node
	Root   *model.Node
	Depth  int
	Width  int
	Styles Styles

	engine *Engine
}

// RenderChildren renders the node's children through the engine. Only
// meaningful for renderers that want to interleave children with their own
// output; most leaf renderers never call it.
func (c Ctx) RenderChildren() string {
	if c.engine == nil || c.Node == nil {
		return ""
	}
	return c.engine.renderChildren(c.Node, c.Root, c.Depth, c.Width)
}

// Engine renders node trees by resolving each node's variant against a
// registry and composing the output depth-first.
type Engine struct {
	registry *Registry
	styles   Styles
	width    int
}

// NewEngine creates an engine over the given registry. A nil registry gets
// the default built-in set.
func NewEngine(registry *Registry, styles Styles, width int) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if width <= 0 {
		width = 80
	}
	return &Engine{registry: registry, styles: styles, width: width}
}

// SetWidth updates the render width for subsequent passes.
func (e *Engine) SetWidth(width int) {
	if width > 0 {
		e.width = width
	}
}

// Render renders the tree rooted at root. A nil root renders to "".
func (e *Engine) Render(root *model.Node) string {
	if root == nil {
		return ""
	}
	return e.renderNode(root, root, 0, e.width)
}

func (e *Engine) renderNode(n, root *model.Node, depth, width int) string {
	if n == nil || depth > MaxRenderDepth {
		return ""
	}

	renderer, _ := e.registry.Resolve(n.Variant)
	ctx := Ctx{
		Node:   n,
		Root:   root,
		Depth:  depth,
		Width:  width,
		Styles: e.styles,
		engine: e,
	}
	out := renderer.Render(ctx)

	// Container-style renderers compose children themselves; everything
	// else gets children appended below, indented one level.
	if _, composes := renderer.(ContainerRenderer); composes {
		return out
	}
	children := e.renderChildren(n, root, depth, width)
	if children == "" {
		return out
	}
	return out + "\n" + children
}

func (e *Engine) renderChildren(n, root *model.Node, depth, width int) string {
	if len(n.Children) == 0 {
		return ""
	}
	indent := strings.Repeat(" ", indentWidth)
	childWidth := width - indentWidth
	if childWidth < 10 {
		childWidth = 10
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		rendered := e.renderNode(child, root, depth+1, childWidth)
		if rendered == "" {
			continue
		}
		lines := strings.Split(rendered, "\n")
		for i, line := range lines {
			lines[i] = indent + line
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}

// ContainerRenderer marks renderers that render their own children via
// Ctx.RenderChildren; the engine will not append child output for them.
type ContainerRenderer interface {
	Renderer
	composesChildren()
}

// containerFunc adapts a function into a ContainerRenderer.
type containerFunc func(n Ctx) string

func (f containerFunc) Render(n Ctx) string { return f(n) }
func (f containerFunc) composesChildren()   {}
