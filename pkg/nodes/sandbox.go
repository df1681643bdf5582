package nodes

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// ErrEmptyDocument is returned when a sandbox document decodes to no root.
var ErrEmptyDocument = errors.New("sandbox document has no root node")

// DecodeDocument parses a hand-authored sandbox document into a node tree.
// The document is a single JSON object in Node shape. Nodes missing a
// variant get the debug variant so authoring mistakes render visibly;
// nodes missing a type default to item.
func DecodeDocument(data []byte) (*model.Node, error) {
	var root model.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing sandbox document: %w", err)
	}
	if root.ID == "" && root.Title == "" && len(root.Children) == 0 {
		return nil, ErrEmptyDocument
	}
	normalize(&root, 0)
	return &root, nil
}

func normalize(n *model.Node, depth int) {
	if depth > MaxRenderDepth {
		n.Children = nil
		return
	}
	if n.Variant == "" {
		n.Variant = VariantDebug
	}
	if n.Type == "" {
		if len(n.Children) > 0 {
			n.Type = model.NodeContainer
		} else {
			n.Type = model.NodeItem
		}
	}
	for _, c := range n.Children {
		normalize(c, depth+1)
	}
}
