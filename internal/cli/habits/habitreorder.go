package habits

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
)

type HabitReorderCmd struct {
	Names []string `arg:"" help:"Habit names or ids in the desired order."`
}

func (c *HabitReorderCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(c.Names))
	for _, name := range c.Names {
		habit, err := cli.ResolveHabit(store, name)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	if err := store.ReorderHabits(ids); err != nil {
		return err
	}

	fmt.Println("Reordered habits:")
	for _, habit := range store.GetHabits(true) {
		fmt.Printf("  %d. %s\n", habit.Order, habit.Name)
	}

	return nil
}
