package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/tracker"
)

type StatsCmd struct {
	Name string `arg:"" optional:"" help:"Habit name or id (default: all habits)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.Name != "" {
		habit, err := cli.ResolveHabit(store, c.Name)
		if err != nil {
			return err
		}
		printHabitStats(store, habit.ID, habit.Name)
		return nil
	}

	habits := store.GetHabits(false)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for i, habit := range habits {
		if i > 0 {
			fmt.Println()
		}
		printHabitStats(store, habit.ID, habit.Name)
	}
	return nil
}

func printHabitStats(store *tracker.Store, habitID, name string) {
	fmt.Printf("%s\n", name)
	fmt.Println(strings.Repeat("-", len(name)))
	fmt.Printf("  Streak:       %d (longest %d)\n", store.GetCurrentStreakWithFreeze(habitID), store.GetLongestStreak(habitID))
	fmt.Printf("  Completions:  %d total\n", store.GetTotalCompletions(habitID))
	fmt.Printf("  Rate:         7d %.0f%% | 30d %.0f%% | 90d %.0f%%\n",
		store.GetCompletionRate(habitID, 7),
		store.GetCompletionRate(habitID, constants.DefaultRateDays),
		store.GetCompletionRate(habitID, 90))

	fmt.Printf("  Last %d days: %s\n", constants.DefaultTrendDays, trendStrip(store.GetCompletionTrend(habitID, constants.DefaultTrendDays)))

	fmt.Printf("  By weekday (last %d days):\n", constants.DefaultWeekdayDays)
	performance := store.GetWeekdayPerformance(habitID, constants.DefaultWeekdayDays)
	for weekday := 0; weekday < 7; weekday++ {
		label := time.Weekday(weekday).String()[:3]
		fmt.Printf("    %s %s %3.0f%%\n", label, bar(performance[weekday]), performance[weekday])
	}
}

// trendStrip renders a trend as one character per day, oldest first.
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

// bar renders a percentage as a fixed-width ASCII bar.
func bar(percent float64) string {
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
