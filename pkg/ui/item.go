package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// ResourceItem wraps model.Resource to implement list.Item.
type ResourceItem struct {
	Resource model.Resource
	Count    int // child count, shown for containers
}

func (i ResourceItem) Title() string {
	return i.Resource.Title
}

func (i ResourceItem) Description() string {
	return fmt.Sprintf("%s %s", i.Resource.Type, i.Resource.Status)
}

func (i ResourceItem) FilterValue() string {
	var sb strings.Builder
	sb.WriteString(i.Resource.Title)
	sb.WriteString(" ")
	sb.WriteString(string(i.Resource.Type))
	sb.WriteString(" ")
	sb.WriteString(string(i.Resource.Status))
	if v := i.Resource.Variant(); v != "" {
		sb.WriteString(" ")
		sb.WriteString(v)
	}
	if i.Resource.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(i.Resource.Description)
	}
	return sb.String()
}

// RenderStatusBadge renders a compact fixed-width status badge.
func RenderStatusBadge(t Theme, s model.ResourceStatus) string {
	var label string
	switch s {
	case model.StatusDone:
		label = "done"
	case model.StatusArchived:
		label = "arch"
	default:
		label = "actv"
	}
	return t.Renderer.NewStyle().
		Foreground(t.GetStatusColor(s)).
		Render(fmt.Sprintf("[%s]", label))
}
