package logs

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/utils"
)

type TodayCmd struct {
	All bool `help:"Include habits that are not due today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	today := store.Today()
	date, err := utils.ParseDay(today)
	if err != nil {
		return err
	}

	if store.IsFrozen(today) {
		fmt.Printf("Today (%s) is frozen. Streaks are safe.\n", today)
	} else {
		fmt.Printf("Today: %s\n", today)
	}

	habits := store.GetHabits(false)
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'habitkit habit add'.")
		return nil
	}

	done := 0
	due := 0
	for _, habit := range habits {
		isDue := utils.IsDue(habit, date)
		if !isDue && !c.All {
			continue
		}

		marker := "[ ]"
		log := store.GetLog(habit.ID, today)
		if log != nil && log.Completed {
			marker = "[x]"
			if isDue {
				done++
			}
		}
		if isDue {
			due++
		}

		suffix := ""
		if !isDue {
			suffix = " (not due today)"
		}
		if streak := store.GetCurrentStreakWithFreeze(habit.ID); streak > 0 {
			suffix += fmt.Sprintf(" | streak %d", streak)
		}

		emoji := ""
		if habit.Emoji != "" {
			emoji = habit.Emoji + " "
		}
		fmt.Printf("  %s %s%s%s\n", marker, emoji, habit.Name, suffix)
	}

	if due == 0 {
		fmt.Println("Nothing due today.")
		return nil
	}

	fmt.Printf("\nRecorded: %d/%d\n", done, due)
	return nil
}
