package nodes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// Built-in variant names. Panes and the transform refer to these by
// string; anything else falls through to the debug renderer.
const (
	VariantFolder   = "folder"
	VariantTaskRow  = "task-row"
	VariantNoteCard = "note-card"
	VariantEventRow = "event-row"
	VariantDebug    = "debug"
)

// DefaultRegistry returns a registry with every built-in renderer
// registered, plus the aliases the resource panes rely on.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(VariantFolder, containerFunc(renderFolder))
	r.Register(VariantTaskRow, RendererFunc(renderTaskRow))
	r.Register(VariantNoteCard, RendererFunc(renderNoteCard))
	r.Register(VariantEventRow, RendererFunc(renderEventRow))
	r.Register(VariantDebug, RendererFunc(renderDebug))

	// Legacy variant names from early metadata bags still in the wild.
	r.Alias("directory", VariantFolder)
	r.Alias("todo", VariantTaskRow)
	r.Alias("card", VariantNoteCard)
	return r
}

// renderFolder shows the folder title with a child count and composes its
// children itself so empty folders can show a placeholder line.
func renderFolder(c Ctx) string {
	n := c.Node
	header := c.Styles.Title.Render("▸ " + truncateTo(n.Title, c.Width-8))
	if len(n.Children) > 0 {
		header += " " + c.Styles.Muted.Render(fmt.Sprintf("(%d)", len(n.Children)))
	}
	children := c.RenderChildren()
	if children == "" {
		if len(n.Children) == 0 && c.Depth > 0 {
			return header
		}
		return header + "\n  " + c.Styles.Muted.Render("empty")
	}
	return header + "\n" + children
}

func renderTaskRow(c Ctx) string {
	n := c.Node
	box := "[ ]"
	style := c.Styles.Subtitle
	if n.Metadata.String("status") == string(model.StatusDone) {
		box = "[x]"
		style = c.Styles.Done
	}
	row := box + " " + truncateTo(n.Title, c.Width-10)
	if badge := n.Slot("badge"); badge != "" {
		row += " " + c.Styles.Badge.Render(badge)
	}
	return style.Render(row)
}

func renderNoteCard(c Ctx) string {
	n := c.Node
	out := c.Styles.Title.Render(truncateTo(n.Title, c.Width-2))
	if subtitle := n.Slot("subtitle"); subtitle != "" {
		out += "\n" + c.Styles.Subtitle.Render(truncateTo(subtitle, c.Width-2))
	}
	if body := n.Slot("body"); body != "" {
		// Cards show a one-line preview; the detail pane renders the
		// full body through glamour.
		preview := strings.SplitN(strings.TrimSpace(body), "\n", 2)[0]
		out += "\n" + c.Styles.Muted.Render(truncateTo(preview, c.Width-2))
	}
	return out
}

func renderEventRow(c Ctx) string {
	n := c.Node
	row := truncateTo(n.Title, c.Width-14)
	if when := n.Slot("when"); when != "" {
		row = c.Styles.Badge.Render(when) + " " + row
	}
	return c.Styles.Subtitle.Render(row)
}

// renderDebug is the fallback for unknown variants: a compact dump of the
// node's identity and metadata so a bad variant string is visible rather
// than silently dropped.
func renderDebug(c Ctx) string {
	n := c.Node
	var b strings.Builder
	fmt.Fprintf(&b, "?? %s type=%s variant=%q", n.ID, n.Type, n.Variant)
	if len(n.Metadata) > 0 {
		keys := make([]string, 0, len(n.Metadata))
		for k := range n.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, n.Metadata[k]))
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(pairs, " "))
	}
	return c.Styles.Debug.Render(b.String())
}

// truncateTo truncates s to the given display width with an ellipsis,
// counting wide runes correctly.
func truncateTo(s string, width int) string {
	if width < 4 {
		width = 4
	}
	return runewidth.Truncate(s, width, "…")
}
