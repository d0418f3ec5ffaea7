package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add Habit State
	if m.state == StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			habit, err := m.habitFromForm()
			if err == nil {
				_, err = m.store.AddHabit(habit)
			}
			if err == nil {
				m.refreshLists()
				m.statusMessage = ""
				m.state = StateHabits
			} else {
				// Stay in form state on error to allow retry
				m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.state = StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Edit Habit State
	if m.state == StateEditHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			patch, err := m.patchFromForm()
			if err == nil {
				_, err = m.store.UpdateHabit(m.editingHabitID, patch)
			}
			if err == nil {
				m.refreshLists()
				m.statusMessage = ""
				m.editingHabitID = ""
				m.state = StateHabits
			} else {
				m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.editingHabitID = ""
			m.state = StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if _, err := m.store.DeleteHabit(m.habitToDelete); err != nil {
					m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
				}
				m.refreshLists()
				m.state = m.previousState
				m.habitToDelete = ""
			case "n", "N", "esc", "q":
				m.state = m.previousState
				m.habitToDelete = ""
			}
		}
		return m, nil
	}

	// Handle Confirm Archive State
	if m.state == StateConfirmArchive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				habit := m.store.GetHabit(m.habitToArchive)
				var err error
				if habit != nil && habit.Archived {
					_, err = m.store.UnarchiveHabit(m.habitToArchive)
				} else {
					_, err = m.store.ArchiveHabit(m.habitToArchive)
				}
				if err != nil {
					m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
				}
				m.refreshLists()
				m.state = m.previousState
				m.habitToArchive = ""
			case "n", "N", "esc", "q":
				m.state = m.previousState
				m.habitToArchive = ""
			}
		}
		return m, nil
	}

	// Handle Confirm Freeze State
	if m.state == StateConfirmFreeze {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				m.freezeToday()
				m.refreshLists()
				m.state = m.previousState
			case "n", "N", "esc", "q":
				m.state = m.previousState
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		h, v := docStyle.GetFrameSize()
		listHeight := msg.Height - 4
		m.todayList.SetSize(msg.Width-h, listHeight-v)
		m.habitsList.SetSize(msg.Width-h, listHeight-v)

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Frequency: models.FrequencyDaily}
		m.form = m.newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		m.toggleHabit(msg.ID)
		m.refreshLists()
		return m, nil

	case habitlist.EditHabitMsg:
		habit := m.store.GetHabit(msg.ID)
		if habit == nil {
			return m, nil
		}
		m.editingHabitID = habit.ID
		m.habitForm = m.formModelFor(*habit)
		m.form = m.newHabitForm(m.habitForm)
		m.state = StateEditHabit
		return m, m.form.Init()

	case habitlist.ArchiveHabitMsg:
		m.habitToArchive = msg.ID
		m.previousState = m.state
		m.state = StateConfirmArchive
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.habitToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case habitlist.FreezeTodayMsg:
		m.previousState = m.state
		m.state = StateConfirmFreeze
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.statusMessage = ""
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.statusMessage = ""
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayList, cmd = m.todayList.Update(msg)
		cmds = append(cmds, cmd)
	case StateHabits:
		m.habitsList, cmd = m.habitsList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// toggleHabit flips today's completion and flashes any badges the new
// streak earned.
func (m *Model) toggleHabit(habitID string) {
	log, err := m.store.ToggleLog(habitID, "")
	if err != nil {
		m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
		return
	}

	if !log.Completed {
		m.statusMessage = ""
		return
	}

	awarded, err := m.store.CheckAndAwardBadges(habitID)
	if err != nil {
		m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
		return
	}
	if len(awarded) > 0 {
		names := make([]string, len(awarded))
		for i, badge := range awarded {
			names[i] = string(badge.Type)
		}
		m.statusMessage = successStyle.Render(fmt.Sprintf("🏆 Earned the %s badge!", strings.Join(names, ", ")))
	} else {
		m.statusMessage = ""
	}
}

// freezeToday freezes the current day, honoring the monthly cap.
func (m *Model) freezeToday() {
	today := m.store.Today()
	if m.store.IsFrozen(today) {
		m.statusMessage = warningStyle.Render("⚠ Today is already frozen")
		return
	}
	if m.store.CountFreezeDaysThisMonth() >= constants.MaxFreezeDaysPerMonth {
		m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ Freeze limit reached (%d per month)", constants.MaxFreezeDaysPerMonth))
		return
	}
	if _, err := m.store.AddFreezeDay(today, ""); err != nil {
		m.statusMessage = warningStyle.Render(fmt.Sprintf("⚠ %v", err))
		return
	}
	m.statusMessage = successStyle.Render("❄ Today is frozen; streaks are safe")
}

// habitFromForm converts the submitted form into a habit for AddHabit.
func (m Model) habitFromForm() (models.Habit, error) {
	habit := models.Habit{
		Name:        strings.TrimSpace(m.habitForm.Name),
		Description: strings.TrimSpace(m.habitForm.Description),
		Emoji:       strings.TrimSpace(m.habitForm.Emoji),
		Frequency:   m.habitForm.Frequency,
	}

	if m.habitForm.Frequency == models.FrequencyCustom {
		if strings.TrimSpace(m.habitForm.Days) == "" {
			return habit, fmt.Errorf("custom schedules need days (e.g. mon,wed,fri)")
		}
	}
	if days := strings.TrimSpace(m.habitForm.Days); days != "" {
		parsed, err := cli.ParseWeekdays(days)
		if err != nil {
			return habit, err
		}
		habit.CustomDays = parsed
	}

	if m.habitForm.Category != "" {
		category := m.store.GetCategoryByName(m.habitForm.Category)
		if category == nil {
			return habit, fmt.Errorf("category %q not found", m.habitForm.Category)
		}
		habit.CategoryID = &category.ID
	}

	if goal := strings.TrimSpace(m.habitForm.Goal); goal != "" {
		days, err := strconv.Atoi(goal)
		if err != nil || days < 1 {
			return habit, fmt.Errorf("goal must be a positive number of days")
		}
		habit.GoalDays = &days
	}

	return habit, nil
}

// patchFromForm converts the submitted form into an update patch.
func (m Model) patchFromForm() (models.HabitPatch, error) {
	name := strings.TrimSpace(m.habitForm.Name)
	description := strings.TrimSpace(m.habitForm.Description)
	emoji := strings.TrimSpace(m.habitForm.Emoji)
	frequency := m.habitForm.Frequency

	patch := models.HabitPatch{
		Name:        &name,
		Description: &description,
		Emoji:       &emoji,
		Frequency:   &frequency,
	}

	if days := strings.TrimSpace(m.habitForm.Days); days != "" {
		parsed, err := cli.ParseWeekdays(days)
		if err != nil {
			return patch, err
		}
		patch.CustomDays = parsed
	} else {
		if frequency == models.FrequencyCustom {
			return patch, fmt.Errorf("custom schedules need days (e.g. mon,wed,fri)")
		}
		patch.ClearCustomDays = true
	}

	if m.habitForm.Category != "" {
		category := m.store.GetCategoryByName(m.habitForm.Category)
		if category == nil {
			return patch, fmt.Errorf("category %q not found", m.habitForm.Category)
		}
		patch.CategoryID = &category.ID
	} else {
		patch.ClearCategory = true
	}

	if goal := strings.TrimSpace(m.habitForm.Goal); goal != "" {
		days, err := strconv.Atoi(goal)
		if err != nil || days < 1 {
			return patch, fmt.Errorf("goal must be a positive number of days")
		}
		patch.GoalDays = &days
	} else {
		patch.ClearGoal = true
	}

	return patch, nil
}

// confirmBox centers a y/n prompt in the content area.
func (m Model) confirmBox(lines ...string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}
