package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// FormFieldType defines the kind of a form field.
type FormFieldType int

const (
	FormFieldText FormFieldType = iota
	FormFieldTextArea
	FormFieldSelect
)

// FormField is a single editable field.
type FormField struct {
	Label    string
	Key      string
	Type     FormFieldType
	Input    textinput.Model
	TextArea textarea.Model
	Options  []string
	Selected int
	Original string
}

// ResourceForm provides field-by-field resource editing, shown as a
// centered modal over the browser pane.
type ResourceForm struct {
	fields          []FormField
	focusedField    int
	width           int
	height          int
	theme           Theme
	resourceID      string // empty in create mode
	isCreateMode    bool
	dirty           bool
	saveRequested   bool
	cancelRequested bool
}

// NewEditForm builds a form pre-populated from an existing resource.
func NewEditForm(r model.Resource, theme Theme) ResourceForm {
	fields := []FormField{
		makeTextField("Title", "title", r.Title),
		makeSelectField("Type", "type", string(r.Type), typeOptions()),
		makeSelectField("Status", "status", string(r.Status), statusOptions()),
		makeTextField("Variant", "variant", r.Variant()),
		makeTextAreaField("Description", "description", r.Description),
	}
	fields[0].Input.Focus()

	return ResourceForm{
		fields:     fields,
		theme:      theme,
		resourceID: r.ID,
	}
}

// NewCreateForm builds a form with defaults for a new resource.
func NewCreateForm(theme Theme) ResourceForm {
	fields := []FormField{
		makeTextField("Title", "title", ""),
		makeSelectField("Type", "type", string(model.ResourceTask), typeOptions()),
		makeSelectField("Status", "status", string(model.StatusActive), statusOptions()),
		makeTextField("Variant", "variant", ""),
		makeTextAreaField("Description", "description", ""),
	}
	fields[0].Input.Focus()

	return ResourceForm{
		fields:       fields,
		theme:        theme,
		isCreateMode: true,
	}
}

func makeTextField(label, key, value string) FormField {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CharLimit = 200
	ti.Width = 50
	return FormField{Label: label, Key: key, Type: FormFieldText, Input: ti, Original: value}
}

func makeTextAreaField(label, key, value string) FormField {
	ta := textarea.New()
	ta.SetValue(value)
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.CharLimit = 5000
	return FormField{Label: label, Key: key, Type: FormFieldTextArea, TextArea: ta, Original: value}
}

func makeSelectField(label, key, value string, options []string) FormField {
	selected := 0
	for i, opt := range options {
		if opt == value {
			selected = i
			break
		}
	}
	return FormField{Label: label, Key: key, Type: FormFieldSelect, Options: options, Selected: selected, Original: value}
}

func typeOptions() []string {
	opts := make([]string, len(model.KnownResourceTypes))
	for i, t := range model.KnownResourceTypes {
		opts[i] = string(t)
	}
	return opts
}

func statusOptions() []string {
	return []string{string(model.StatusActive), string(model.StatusDone), string(model.StatusArchived)}
}

// Update handles input for the form.
func (m ResourceForm) Update(msg tea.Msg) (ResourceForm, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			m.saveRequested = true
			return m, nil

		case "esc":
			m.cancelRequested = true
			return m, nil

		case "tab":
			m.fields[m.focusedField] = blurField(m.fields[m.focusedField])
			m.focusedField = (m.focusedField + 1) % len(m.fields)
			m.fields[m.focusedField] = focusField(m.fields[m.focusedField])
			return m, nil

		case "shift+tab":
			m.fields[m.focusedField] = blurField(m.fields[m.focusedField])
			m.focusedField = (m.focusedField - 1 + len(m.fields)) % len(m.fields)
			m.fields[m.focusedField] = focusField(m.fields[m.focusedField])
			return m, nil

		case "left":
			if m.fields[m.focusedField].Type == FormFieldSelect {
				f := &m.fields[m.focusedField]
				f.Selected = (f.Selected - 1 + len(f.Options)) % len(f.Options)
				m.updateDirtyFlag()
				return m, nil
			}

		case "right":
			if m.fields[m.focusedField].Type == FormFieldSelect {
				f := &m.fields[m.focusedField]
				f.Selected = (f.Selected + 1) % len(f.Options)
				m.updateDirtyFlag()
				return m, nil
			}
		}

		f := &m.fields[m.focusedField]
		switch f.Type {
		case FormFieldText:
			f.Input, cmd = f.Input.Update(msg)
			cmds = append(cmds, cmd)
		case FormFieldTextArea:
			f.TextArea, cmd = f.TextArea.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.updateDirtyFlag()
	}

	return m, tea.Batch(cmds...)
}

func focusField(f FormField) FormField {
	switch f.Type {
	case FormFieldText:
		f.Input.Focus()
	case FormFieldTextArea:
		f.TextArea.Focus()
	}
	return f
}

func blurField(f FormField) FormField {
	switch f.Type {
	case FormFieldText:
		f.Input.Blur()
	case FormFieldTextArea:
		f.TextArea.Blur()
	}
	return f
}

func (m *ResourceForm) updateDirtyFlag() {
	m.dirty = false
	for _, f := range m.fields {
		if fieldValue(f) != f.Original {
			m.dirty = true
			return
		}
	}
}

func fieldValue(f FormField) string {
	switch f.Type {
	case FormFieldText:
		return f.Input.Value()
	case FormFieldTextArea:
		return f.TextArea.Value()
	case FormFieldSelect:
		if f.Selected >= 0 && f.Selected < len(f.Options) {
			return f.Options[f.Selected]
		}
	}
	return ""
}

func (m ResourceForm) value(key string) string {
	for _, f := range m.fields {
		if f.Key == key {
			return fieldValue(f)
		}
	}
	return ""
}

// IsSaveRequested reports whether ctrl+s was pressed.
func (m ResourceForm) IsSaveRequested() bool { return m.saveRequested }

// IsCancelRequested reports whether esc was pressed.
func (m ResourceForm) IsCancelRequested() bool { return m.cancelRequested }

// IsCreateMode reports whether the form creates rather than edits.
func (m ResourceForm) IsCreateMode() bool { return m.isCreateMode }

// SetSize sets the modal dimensions.
func (m *ResourceForm) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// TitleValue returns the current title field content.
func (m ResourceForm) TitleValue() string { return strings.TrimSpace(m.value("title")) }

// TypeValue returns the selected resource type.
func (m ResourceForm) TypeValue() model.ResourceType { return model.ResourceType(m.value("type")) }

// MetaValue builds the metadata bag implied by the form. Nil when the
// variant field is empty.
func (m ResourceForm) MetaValue() model.MetaData {
	v := strings.TrimSpace(m.value("variant"))
	if v == "" {
		return nil
	}
	return model.MetaData{"variant": v}
}

// Apply copies the edited fields onto a resource for UpdateResource.
func (m ResourceForm) Apply(r model.Resource) model.Resource {
	r.Title = m.TitleValue()
	r.Type = m.TypeValue()
	r.Status = model.ResourceStatus(m.value("status"))
	r.Description = m.value("description")
	if v := strings.TrimSpace(m.value("variant")); v != "" {
		if r.MetaData == nil {
			r.MetaData = model.MetaData{}
		}
		r.MetaData["variant"] = v
	} else if r.MetaData != nil {
		delete(r.MetaData, "variant")
	}
	return r
}

// View renders the form modal.
func (m ResourceForm) View() string {
	r := m.theme.Renderer

	boxWidth := m.width - 10
	if boxWidth < 60 {
		boxWidth = 60
	}
	if boxWidth > 80 {
		boxWidth = 80
	}

	var title string
	if m.isCreateMode {
		title = "New Resource"
	} else {
		title = fmt.Sprintf("Edit: %s", m.resourceID)
	}

	var content strings.Builder
	content.WriteString(m.theme.PrimaryBold.Render(title))
	content.WriteString("\n\n")

	labelStyle := r.NewStyle().Foreground(m.theme.Secondary).Width(12).Align(lipgloss.Right)
	focusedLabelStyle := r.NewStyle().Foreground(m.theme.Primary).Bold(true).Width(12).Align(lipgloss.Right)
	selectStyle := r.NewStyle().Foreground(m.theme.Primary)

	for i, f := range m.fields {
		isFocused := i == m.focusedField

		if isFocused {
			content.WriteString(focusedLabelStyle.Render(f.Label + ":"))
		} else {
			content.WriteString(labelStyle.Render(f.Label + ":"))
		}
		content.WriteString(" ")

		switch f.Type {
		case FormFieldText:
			content.WriteString(f.Input.View())

		case FormFieldTextArea:
			lines := strings.Split(f.TextArea.View(), "\n")
			for idx, line := range lines {
				if idx > 0 {
					content.WriteString("\n")
					content.WriteString(strings.Repeat(" ", 13))
				}
				content.WriteString(line)
			}

		case FormFieldSelect:
			val := f.Options[f.Selected]
			if isFocused {
				content.WriteString(selectStyle.Render(fmt.Sprintf("< %s >", val)))
			} else {
				content.WriteString(val)
			}
		}

		content.WriteString("\n")
		if f.Type == FormFieldTextArea {
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	instructions := "[Tab] Next field   [Ctrl+S] Save   [Esc] Cancel"
	if m.fields[m.focusedField].Type == FormFieldSelect {
		instructions = "[←/→] Change   " + instructions
	}
	content.WriteString(r.NewStyle().Foreground(m.theme.Subtext).Italic(true).Render(instructions))

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Width(boxWidth).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
