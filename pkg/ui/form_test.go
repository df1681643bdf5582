package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

func TestCreateFormDefaults(t *testing.T) {
	f := NewCreateForm(testTheme())
	if !f.IsCreateMode() {
		t.Error("not in create mode")
	}
	if f.TypeValue() != model.ResourceTask {
		t.Errorf("default type %q", f.TypeValue())
	}
	if f.MetaValue() != nil {
		t.Error("empty variant should yield nil metadata")
	}
}

func TestFormTabCyclesFields(t *testing.T) {
	f := NewCreateForm(testTheme())
	if f.focusedField != 0 {
		t.Fatalf("initial focus %d", f.focusedField)
	}
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.focusedField != 1 {
		t.Errorf("focus %d after tab", f.focusedField)
	}
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.focusedField != 0 {
		t.Errorf("focus %d after shift+tab", f.focusedField)
	}
}

func TestFormSelectCycling(t *testing.T) {
	f := NewCreateForm(testTheme())
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab}) // to type select

	before := f.TypeValue()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	if f.TypeValue() == before {
		t.Error("right did not change selection")
	}
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if f.TypeValue() != before {
		t.Error("left did not cycle back")
	}
}

func TestFormSaveAndCancelFlags(t *testing.T) {
	f := NewCreateForm(testTheme())
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !f.IsSaveRequested() {
		t.Error("ctrl+s not registered")
	}

	f = NewCreateForm(testTheme())
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !f.IsCancelRequested() {
		t.Error("esc not registered")
	}
}

func TestEditFormApply(t *testing.T) {
	r := model.Resource{
		ID:       "r1",
		Type:     model.ResourceNote,
		Title:    "Old title",
		Status:   model.StatusActive,
		MetaData: model.MetaData{"variant": "note-card", "keep": "me"},
	}
	f := NewEditForm(r, testTheme())

	// Retype the title.
	f.fields[0].Input.SetValue("New title")
	out := f.Apply(r)

	if out.Title != "New title" {
		t.Errorf("title %q", out.Title)
	}
	if out.Type != model.ResourceNote || out.Status != model.StatusActive {
		t.Errorf("type/status drifted: %s/%s", out.Type, out.Status)
	}
	if out.MetaData.String("variant") != "note-card" {
		t.Errorf("variant lost: %v", out.MetaData)
	}
	if out.MetaData.String("keep") != "me" {
		t.Error("unrelated metadata dropped")
	}
}

func TestEditFormApplyClearsVariant(t *testing.T) {
	r := model.Resource{
		ID:       "r1",
		Type:     model.ResourceNote,
		Title:    "T",
		Status:   model.StatusActive,
		MetaData: model.MetaData{"variant": "note-card"},
	}
	f := NewEditForm(r, testTheme())
	for i := range f.fields {
		if f.fields[i].Key == "variant" {
			f.fields[i].Input.SetValue("")
		}
	}
	out := f.Apply(r)
	if _, ok := out.MetaData["variant"]; ok {
		t.Error("cleared variant still present")
	}
}

func TestFormView(t *testing.T) {
	f := NewEditForm(model.Resource{ID: "r1", Title: "T", Type: model.ResourceTask, Status: model.StatusActive}, testTheme())
	f.SetSize(100, 30)
	view := f.View()
	for _, want := range []string{"Edit: r1", "Title", "Status", "Variant", "Ctrl+S"} {
		if !strings.Contains(view, want) {
			t.Errorf("form view missing %q", want)
		}
	}
}
