package logs

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

type HistoryCmd struct {
	Habit string `help:"Limit the grid to one habit." default:""`
	Days  int    `help:"Number of days to show." default:"14"`
}

func (c *HistoryCmd) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	return nil
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var habits []models.Habit
	if c.Habit != "" {
		habit, err := cli.ResolveHabit(store, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{*habit}
	} else {
		habits = store.GetHabits(false)
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today, err := utils.ParseDay(store.Today())
	if err != nil {
		return err
	}
	days := make([]time.Time, 0, c.Days)
	for i := c.Days - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}

	const maxNameLen = 20

	// Header row with one column per day
	fmt.Printf("%-*s", maxNameLen, "")
	for _, day := range days {
		fmt.Printf("%-6s", day.Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", maxNameLen+6*len(days)))

	for _, habit := range habits {
		name := habit.Name
		if len(name) > maxNameLen-1 {
			name = name[:maxNameLen-4] + "..."
		}
		fmt.Printf("%-*s", maxNameLen, name)

		for _, day := range days {
			dayStr := utils.FormatDay(day)
			log := store.GetLog(habit.ID, dayStr)
			switch {
			case log != nil && log.Completed:
				fmt.Print("  x   ")
			case store.IsFrozen(dayStr):
				fmt.Print("  ~   ")
			case !utils.IsDue(habit, day):
				fmt.Print("      ")
			default:
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	fmt.Println("\nx = done   . = missed   ~ = frozen   blank = not due")
	return nil
}
