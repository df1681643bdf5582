package nodes

import (
	"errors"
	"testing"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

func TestDecodeDocument(t *testing.T) {
	doc := []byte(`{
		"id": "demo",
		"variant": "folder",
		"title": "Demo",
		"children": [
			{"id": "c1", "title": "First", "variant": "task-row"},
			{"id": "c2", "title": "Second", "metadata": {"badge": "new"}}
		]
	}`)

	root, err := DecodeDocument(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root.Type != model.NodeContainer {
		t.Errorf("root type defaulted to %q", root.Type)
	}
	c2 := root.Find("c2")
	if c2 == nil {
		t.Fatal("c2 missing")
	}
	if c2.Variant != VariantDebug {
		t.Errorf("missing variant should default to debug, got %q", c2.Variant)
	}
	if c2.Type != model.NodeItem {
		t.Errorf("leaf type defaulted to %q", c2.Type)
	}
	if c2.Slot("badge") != "new" {
		t.Errorf("metadata slot lost")
	}
}

func TestDecodeDocumentInvalid(t *testing.T) {
	if _, err := DecodeDocument([]byte("{not json")); err == nil {
		t.Error("expected parse error")
	}
	_, err := DecodeDocument([]byte("{}"))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}
