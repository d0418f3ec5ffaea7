package habits

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
)

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name or id to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(store, c.Name)
	if err != nil {
		return err
	}

	if c.Unarchive {
		if _, err := store.UnarchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", habit.Name)
	} else {
		if _, err := store.ArchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", habit.Name)
	}

	return nil
}
