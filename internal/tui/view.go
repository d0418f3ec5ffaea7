package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/tracker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = docStyle.Render(m.todayList.View())
	case StateHabits:
		content = docStyle.Render(m.habitsList.View())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateAddHabit, StateEditHabit:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateConfirmArchive:
		content = m.viewConfirmArchive()
	case StateConfirmFreeze:
		content = m.viewConfirmFreeze()
	}

	sections := []string{m.viewTabs()}
	if m.statusMessage != "" {
		sections = append(sections, m.statusMessage)
	}
	sections = append(sections, content, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Habits", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewStats renders streaks and trends for the habit highlighted on the
// Habits tab.
func (m Model) viewStats() string {
	habitID := m.habitsList.SelectedHabitID()
	if habitID == "" {
		return "\n  No habits yet.\n  Add one on the Habits tab."
	}
	habit := m.store.GetHabit(habitID)
	if habit == nil {
		return "\n  No habits yet.\n  Add one on the Habits tab."
	}

	name := habit.Name
	if habit.Emoji != "" {
		name = habit.Emoji + " " + name
	}

	var b strings.Builder
	b.WriteString(statHeaderStyle.Render(name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Streak:       %d (longest %d)\n", m.store.GetCurrentStreakWithFreeze(habitID), m.store.GetLongestStreak(habitID))
	fmt.Fprintf(&b, "Completions:  %d total\n", m.store.GetTotalCompletions(habitID))
	fmt.Fprintf(&b, "Rate:         7d %.0f%% | 30d %.0f%% | 90d %.0f%%\n",
		m.store.GetCompletionRate(habitID, 7),
		m.store.GetCompletionRate(habitID, constants.DefaultRateDays),
		m.store.GetCompletionRate(habitID, 90))

	if habit.GoalDays != nil {
		streak := m.store.GetCurrentStreakWithFreeze(habitID)
		if streak >= *habit.GoalDays {
			fmt.Fprintf(&b, "Goal:         %d days - reached!\n", *habit.GoalDays)
		} else {
			fmt.Fprintf(&b, "Goal:         %d/%d days\n", streak, *habit.GoalDays)
		}
	}

	fmt.Fprintf(&b, "\nLast %d days:\n%s\n", constants.DefaultTrendDays, trendStrip(m.store.GetCompletionTrend(habitID, constants.DefaultTrendDays)))

	b.WriteString("\nBy weekday:\n")
	performance := m.store.GetWeekdayPerformance(habitID, constants.DefaultWeekdayDays)
	for weekday := 0; weekday < 7; weekday++ {
		fmt.Fprintf(&b, "  %s %s %3.0f%%\n", time.Weekday(weekday).String()[:3], statBar(performance[weekday]), performance[weekday])
	}

	badges := m.store.GetBadges(habitID)
	if len(badges) > 0 {
		b.WriteString("\nBadges: ")
		names := make([]string, len(badges))
		for i, badge := range badges {
			names[i] = string(badge.Type)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

func trendStrip(points []tracker.TrendPoint) string {
	var b strings.Builder
	for _, point := range points {
		switch {
		case point.Value == tracker.FrozenTrendValue:
			b.WriteByte('~')
		case point.Value > 0:
			b.WriteByte('x')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

func statBar(percent float64) string {
	const width = 10
	filled := int(percent / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", width-filled) + "]"
}

func (m Model) viewConfirmDelete() string {
	name := m.habitToDelete
	if habit := m.store.GetHabit(m.habitToDelete); habit != nil {
		name = habit.Name
	}
	return m.confirmBox(
		dangerStyle.Render(fmt.Sprintf("Delete %q and all of its logs and badges?", name)),
		"",
		"[y] Yes",
		"[n] No",
	)
}

func (m Model) viewConfirmArchive() string {
	habit := m.store.GetHabit(m.habitToArchive)
	verb := "Archive"
	name := m.habitToArchive
	if habit != nil {
		name = habit.Name
		if habit.Archived {
			verb = "Unarchive"
		}
	}
	return m.confirmBox(
		warningStyle.Render(fmt.Sprintf("%s %q?", verb, name)),
		"",
		"[y] Yes",
		"[n] No",
	)
}

func (m Model) viewConfirmFreeze() string {
	used := m.store.CountFreezeDaysThisMonth()
	return m.confirmBox(
		fmt.Sprintf("Freeze today (%s)?", m.store.Today()),
		fmt.Sprintf("%d of %d freeze days used this month", used, constants.MaxFreezeDaysPerMonth),
		"",
		"[y] Yes",
		"[n] No",
	)
}
