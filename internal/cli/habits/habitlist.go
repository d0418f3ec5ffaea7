package habits

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
)

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits := store.GetHabits(c.Archived)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		name := habit.Name
		if habit.Emoji != "" {
			name = habit.Emoji + " " + name
		}

		status := ""
		if habit.Archived {
			status = " [ARCHIVED]"
		}

		category := ""
		if habit.CategoryID != nil {
			if cat := store.GetCategory(*habit.CategoryID); cat != nil {
				category = fmt.Sprintf(" (%s)", cat.Name)
			}
		}

		streak := store.GetCurrentStreakWithFreeze(habit.ID)
		fmt.Printf("%s%s%s | %s | streak %d\n", name, status, category, cli.FormatFrequency(habit), streak)
	}

	return nil
}
