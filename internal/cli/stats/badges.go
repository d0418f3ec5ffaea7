package stats

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

// milestoneDays maps a badge type to the streak length that earns it.
func milestoneDays(badgeType models.BadgeType) int {
	for _, milestone := range models.Milestones {
		if milestone.Type == badgeType {
			return milestone.Days
		}
	}
	return 0
}

type BadgesCmd struct {
	Name string `arg:"" optional:"" help:"Habit name or id (default: all habits)."`
}

func (c *BadgesCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habitID := ""
	if c.Name != "" {
		habit, err := cli.ResolveHabit(store, c.Name)
		if err != nil {
			return err
		}
		habitID = habit.ID
	}

	// Catch up on any milestones reached since the last completion
	for _, habit := range store.GetHabits(true) {
		if habitID != "" && habit.ID != habitID {
			continue
		}
		if _, err := store.CheckAndAwardBadges(habit.ID); err != nil {
			return err
		}
	}

	badges := store.GetBadges(habitID)
	if len(badges) == 0 {
		fmt.Println("No badges earned yet.")
		return nil
	}

	names := make(map[string]string)
	for _, habit := range store.GetHabits(true) {
		names[habit.ID] = habit.Name
	}

	fmt.Printf("Badges (%d):\n", len(badges))
	for _, badge := range badges {
		name := names[badge.HabitID]
		if name == "" {
			name = badge.HabitID
		}
		fmt.Printf("  %s | %s (%d-day streak) | earned %s\n",
			name, badge.Type, milestoneDays(badge.Type), badge.EarnedAt.Format(constants.DateFormat))
	}
	return nil
}
