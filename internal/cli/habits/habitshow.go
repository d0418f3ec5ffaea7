package habits

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
)

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(store, c.Name)
	if err != nil {
		return err
	}

	name := habit.Name
	if habit.Emoji != "" {
		name = habit.Emoji + " " + name
	}

	fmt.Printf("%s\n", name)
	if habit.Description != "" {
		fmt.Printf("  %s\n", habit.Description)
	}
	fmt.Printf("  Schedule:  %s\n", cli.FormatFrequency(*habit))
	if habit.CategoryID != nil {
		if category := store.GetCategory(*habit.CategoryID); category != nil {
			fmt.Printf("  Category:  %s\n", category.Name)
		}
	}
	if habit.GoalDays != nil {
		fmt.Printf("  Goal:      %d days\n", *habit.GoalDays)
	}
	fmt.Printf("  Created:   %s\n", habit.CreatedAt.Format(constants.DateFormat))
	if habit.Archived {
		fmt.Println("  Archived:  yes")
	}

	fmt.Printf("  Streak:    %d (longest %d, %d total completions)\n",
		store.GetCurrentStreakWithFreeze(habit.ID),
		store.GetLongestStreak(habit.ID),
		store.GetTotalCompletions(habit.ID))

	if badges := store.GetBadges(habit.ID); len(badges) > 0 {
		fmt.Print("  Badges:    ")
		for i, badge := range badges {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(string(badge.Type))
		}
		fmt.Println()
	}

	return nil
}
