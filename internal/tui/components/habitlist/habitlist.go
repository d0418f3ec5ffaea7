package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitkit/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type EditHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type FreezeTodayMsg struct{}

type Item struct {
	Habit     models.Habit
	Completed bool
	Due       bool
	Streak    int
}

func (i Item) Title() string {
	title := i.Habit.Name
	if i.Habit.Emoji != "" {
		title = i.Habit.Emoji + " " + title
	}
	if i.Habit.Archived {
		return "[ARCHIVED] " + title
	}
	if i.Completed {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	if i.Habit.Archived {
		return "archived"
	}
	desc := fmt.Sprintf("streak %d", i.Streak)
	switch {
	case i.Completed:
		desc += " | completed today"
	case i.Due:
		desc += " | not completed today"
	default:
		desc += " | not due today"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Archive key.Binding
	Delete  key.Binding
	Freeze  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "toggle done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Freeze: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "freeze today"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Archive, keys.Delete, keys.Freeze}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Edit, keys.Archive, keys.Delete, keys.Freeze}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	m.list.SetItems(listItems)
}

// SelectedHabitID returns the id of the highlighted habit, or "" when
// the list is empty.
func (m Model) SelectedHabitID() string {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Habit.ID
	}
	return ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Habit.Archived {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Freeze):
			return m, func() tea.Msg { return FreezeTodayMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
