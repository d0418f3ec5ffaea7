package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tracker"
	"github.com/julianstephens/habitkit/internal/tui/components/habitlist"
	"github.com/julianstephens/habitkit/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateStats
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
	StateConfirmArchive
	StateConfirmFreeze
)

// tabCount is how many states cycle with tab; the modal states after
// StateStats are entered through actions, not tabs.
const tabCount = 3

type HabitFormModel struct {
	Name        string
	Description string
	Emoji       string
	Frequency   models.Frequency
	Days        string
	Category    string
	Goal        string
}

type Model struct {
	store          *tracker.Store
	state          SessionState
	previousState  SessionState
	keys           KeyMap
	help           help.Model
	todayList      habitlist.Model
	habitsList     habitlist.Model
	form           *huh.Form
	habitForm      *HabitFormModel
	editingHabitID string
	habitToArchive string
	habitToDelete  string
	statusMessage  string
	quitting       bool
	width          int
	height         int
}

func NewModel(store *tracker.Store) Model {
	m := Model{
		store: store,
		state: StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.todayList = habitlist.New(m.todayItems(), 0, 0)
	m.habitsList = habitlist.New(m.allItems(), 0, 0)
	return m
}

// todayItems builds list items for habits due today.
func (m Model) todayItems() []habitlist.Item {
	today := m.store.Today()
	date, err := utils.ParseDay(today)
	if err != nil {
		return nil
	}

	var items []habitlist.Item
	for _, habit := range m.store.GetHabits(false) {
		if !utils.IsDue(habit, date) {
			continue
		}
		log := m.store.GetLog(habit.ID, today)
		items = append(items, habitlist.Item{
			Habit:     habit,
			Completed: log != nil && log.Completed,
			Due:       true,
			Streak:    m.store.GetCurrentStreakWithFreeze(habit.ID),
		})
	}
	return items
}

// allItems builds list items for every habit, archived included.
func (m Model) allItems() []habitlist.Item {
	today := m.store.Today()
	date, err := utils.ParseDay(today)
	if err != nil {
		return nil
	}

	var items []habitlist.Item
	for _, habit := range m.store.GetHabits(true) {
		log := m.store.GetLog(habit.ID, today)
		items = append(items, habitlist.Item{
			Habit:     habit,
			Completed: log != nil && log.Completed,
			Due:       utils.IsDue(habit, date),
			Streak:    m.store.GetCurrentStreakWithFreeze(habit.ID),
		})
	}
	return items
}

func (m *Model) refreshLists() {
	m.todayList.SetItems(m.todayItems())
	m.habitsList.SetItems(m.allItems())
}

// activeList returns the habit list backing the current tab.
func (m *Model) activeList() *habitlist.Model {
	if m.state == StateToday {
		return &m.todayList
	}
	return &m.habitsList
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Freeze)
	case StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Toggle, m.keys.Freeze}
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Edit, m.keys.Archive, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// newHabitForm builds the add/edit form. The category select offers the
// existing categories plus "none".
func (m Model) newHabitForm(fm *HabitFormModel) *huh.Form {
	categoryOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, category := range m.store.GetCategories() {
		categoryOptions = append(categoryOptions, huh.NewOption(category.Name, category.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Emoji").
				Value(&fm.Emoji),
			huh.NewSelect[models.Frequency]().
				Title("Schedule").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Custom days", models.FrequencyCustom),
				).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Days").
				Description("For custom schedules, e.g. mon,wed,fri").
				Value(&fm.Days).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := cli.ParseWeekdays(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Goal (days)").
				Description("Optional streak goal").
				Value(&fm.Goal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 1 {
						return fmt.Errorf("goal must be a positive number of days")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// formModelFor prefills the form model from an existing habit.
func (m Model) formModelFor(habit models.Habit) *HabitFormModel {
	fm := &HabitFormModel{
		Name:        habit.Name,
		Description: habit.Description,
		Emoji:       habit.Emoji,
		Frequency:   habit.Frequency,
	}
	if len(habit.CustomDays) > 0 {
		names := make([]string, len(habit.CustomDays))
		for i, wd := range habit.CustomDays {
			names[i] = strings.ToLower(wd.String()[:3])
		}
		fm.Days = strings.Join(names, ",")
	}
	if habit.CategoryID != nil {
		if category := m.store.GetCategory(*habit.CategoryID); category != nil {
			fm.Category = category.Name
		}
	}
	if habit.GoalDays != nil {
		fm.Goal = strconv.Itoa(*habit.GoalDays)
	}
	return fm
}
