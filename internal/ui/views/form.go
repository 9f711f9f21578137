package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/model"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui/theme"
)

// Form focus targets, cycled with tab
const (
	formFieldTitle = iota
	formFieldDescription
	formFieldType
	formFieldTracking
	formFieldFreqValue
	formFieldFreqUnit
	formFieldIcon
	formFieldColor
	formFieldCount
)

// FormView creates or edits a task
type FormView struct {
	sess    *session.Session
	editing *model.ID
	width   int
	height  int

	title       textinput.Model
	description textinput.Model
	freqValue   textinput.Model

	taskType      model.TaskType
	needsTracking bool
	unitIdx       int
	iconIdx       int
	colorIdx      int

	focus    int
	errorMsg string
}

// NewFormView opens the form, pre-filled from task when editing
func NewFormView(sess *session.Session, task *model.Task) FormView {
	title := textinput.New()
	title.Placeholder = "e.g. read, drink water"
	title.CharLimit = 100
	title.Width = 40
	title.Focus()

	description := textinput.New()
	description.Placeholder = "details about the goal..."
	description.CharLimit = 200
	description.Width = 40

	freqValue := textinput.New()
	freqValue.CharLimit = 4
	freqValue.Width = 6
	freqValue.SetValue("1")

	v := FormView{
		sess:          sess,
		title:         title,
		description:   description,
		freqValue:     freqValue,
		taskType:      model.TypeHabit,
		needsTracking: true,
		unitIdx:       indexOfUnit(model.UnitDay),
	}

	if task != nil {
		id := task.ID
		v.editing = &id
		v.title.SetValue(task.Title)
		v.description.SetValue(task.Description)
		v.taskType = task.Type
		v.needsTracking = task.NeedsTracking
		if f := task.Frequency; f != nil {
			v.freqValue.SetValue(strconv.Itoa(f.Value))
			v.unitIdx = indexOfUnit(f.Unit)
		}
		v.iconIdx = indexOf(model.Icons, task.Icon)
		v.colorIdx = indexOf(model.Colors, task.Color)
	}

	return v
}

func indexOf(list []string, value string) int {
	for i, s := range list {
		if s == value {
			return i
		}
	}
	return 0
}

func indexOfUnit(unit model.FrequencyUnit) int {
	for i, u := range model.Units {
		if u == unit {
			return i
		}
	}
	return 0
}

// SetSize sets the view dimensions
func (v FormView) SetSize(width, height int) FormView {
	v.width = width
	v.height = height
	return v
}

func (v *FormView) setFocus(target int) {
	v.focus = target
	v.title.Blur()
	v.description.Blur()
	v.freqValue.Blur()
	switch target {
	case formFieldTitle:
		v.title.Focus()
	case formFieldDescription:
		v.description.Focus()
	case formFieldFreqValue:
		v.freqValue.Focus()
	}
}

func (v *FormView) cycle(delta int) {
	switch v.focus {
	case formFieldType:
		if v.taskType == model.TypeHabit {
			v.taskType = model.TypeSingle
		} else {
			v.taskType = model.TypeHabit
		}
	case formFieldTracking:
		v.needsTracking = !v.needsTracking
	case formFieldFreqUnit:
		v.unitIdx = (v.unitIdx + delta + len(model.Units)) % len(model.Units)
	case formFieldIcon:
		v.iconIdx = (v.iconIdx + delta + len(model.Icons)) % len(model.Icons)
	case formFieldColor:
		v.colorIdx = (v.colorIdx + delta + len(model.Colors)) % len(model.Colors)
	}
}

func (v FormView) fields() session.TaskFields {
	value, err := strconv.Atoi(strings.TrimSpace(v.freqValue.Value()))
	if err != nil || value < 1 {
		value = 1
	}
	return session.TaskFields{
		Title:         strings.TrimSpace(v.title.Value()),
		Description:   strings.TrimSpace(v.description.Value()),
		Type:          v.taskType,
		Frequency:     &model.Frequency{Value: value, Unit: model.Units[v.unitIdx]},
		NeedsTracking: v.needsTracking,
		Color:         model.Colors[v.colorIdx],
		Icon:          model.Icons[v.iconIdx],
	}
}

// Update handles messages
func (v FormView) Update(msg tea.Msg) (FormView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "esc":
		return v, closeCmd()

	case "tab", "down":
		v.setFocus((v.focus + 1) % formFieldCount)
		return v, nil

	case "shift+tab", "up":
		v.setFocus((v.focus + formFieldCount - 1) % formFieldCount)
		return v, nil

	case "left":
		if !v.inTextField() {
			v.cycle(-1)
			return v, nil
		}

	case "right", " ":
		if !v.inTextField() {
			v.cycle(1)
			return v, nil
		}

	case "enter":
		return v.save()
	}

	var cmd tea.Cmd
	switch v.focus {
	case formFieldTitle:
		v.title, cmd = v.title.Update(msg)
	case formFieldDescription:
		v.description, cmd = v.description.Update(msg)
	case formFieldFreqValue:
		v.freqValue, cmd = v.freqValue.Update(msg)
	}
	return v, cmd
}

func (v FormView) inTextField() bool {
	switch v.focus {
	case formFieldTitle, formFieldDescription, formFieldFreqValue:
		return true
	}
	return false
}

func (v FormView) save() (FormView, tea.Cmd) {
	fields := v.fields()

	var err error
	var status string
	if v.editing != nil {
		err = v.sess.UpdateTask(*v.editing, fields)
		status = fmt.Sprintf("Updated %q", fields.Title)
	} else {
		_, err = v.sess.CreateTask(fields)
		status = fmt.Sprintf("Created %q", fields.Title)
	}

	if errors.Is(err, session.ErrEmptyTitle) {
		// Blocked save: nothing was mutated, keep the form open
		v.errorMsg = "A task title is required"
		v.setFocus(formFieldTitle)
		return v, nil
	}
	if err != nil {
		return v, errCmd(err)
	}
	return v, tea.Batch(statusCmd(status), closeCmd())
}

// View renders the form
func (v FormView) View() string {
	styles := theme.Current.Styles

	heading := "New task"
	if v.editing != nil {
		heading = "Edit task"
	}

	choice := func(field int, label, value string) string {
		style := styles.Input
		if v.focus == field {
			style = styles.InputFocused
		}
		return styles.Label.Render(label) + "\n" + style.Render("‹ "+value+" ›") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render(heading))
	b.WriteString("\n")
	if v.errorMsg != "" {
		b.WriteString(styles.StatusError.Render(v.errorMsg))
		b.WriteString("\n")
	}

	b.WriteString(styles.Label.Render("Title *"))
	b.WriteString("\n" + v.title.View() + "\n\n")

	b.WriteString(styles.Label.Render("Description"))
	b.WriteString("\n" + v.description.View() + "\n\n")

	typeLabel := "habit"
	if v.taskType == model.TypeSingle {
		typeLabel = "single"
	}
	b.WriteString(choice(formFieldType, "Type", typeLabel))

	tracking := "off"
	if v.needsTracking {
		tracking = "on"
	}
	b.WriteString(choice(formFieldTracking, "Track time and count", tracking))

	b.WriteString(styles.Label.Render("Repeat every"))
	b.WriteString("\n" + v.freqValue.View() + " ")
	unitStyle := styles.Input
	if v.focus == formFieldFreqUnit {
		unitStyle = styles.InputFocused
	}
	b.WriteString(unitStyle.Render("‹ " + string(model.Units[v.unitIdx]) + " ›"))
	b.WriteString("\n\n")

	b.WriteString(choice(formFieldIcon, "Icon", model.Icons[v.iconIdx]))

	swatch := lipgloss.NewStyle().Foreground(theme.TaskColor(model.Colors[v.colorIdx])).Render("██")
	b.WriteString(choice(formFieldColor, "Color", swatch))

	b.WriteString("\n")
	b.WriteString(
		styles.HelpKey.Render("tab") + styles.HelpDesc.Render(" next field  ") +
			styles.HelpKey.Render("←/→") + styles.HelpDesc.Render(" change  ") +
			styles.HelpKey.Render("enter") + styles.HelpDesc.Render(" save  ") +
			styles.HelpKey.Render("esc") + styles.HelpDesc.Render(" cancel"))

	panel := styles.Panel.Render(b.String())
	if v.width == 0 {
		return panel
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}
