package logs

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/utils"
)

type MarkCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
	Note string `help:"Attach a note to this entry." default:""`
	Done bool   `help:"Mark completed instead of toggling."`
	Undo bool   `help:"Mark not completed instead of toggling."`
}

func (c *MarkCmd) Validate() error {
	if c.Date != "" && !utils.ValidateDayFormat(c.Date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}
	if c.Done && c.Undo {
		return fmt.Errorf("--done and --undo are mutually exclusive")
	}
	return nil
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(store, c.Name)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = store.Today()
	}

	// Work out the target state: toggle unless forced by a flag
	completed := true
	if existing := store.GetLog(habit.ID, day); existing != nil {
		completed = !existing.Completed
	}
	if c.Done {
		completed = true
	}
	if c.Undo {
		completed = false
	}

	var note *string
	if c.Note != "" {
		note = &c.Note
	}

	log, err := store.SetCompletion(habit.ID, day, completed, note)
	if err != nil {
		return err
	}

	if log.Completed {
		fmt.Printf("Marked habit %q done for %s\n", habit.Name, day)
	} else {
		fmt.Printf("Marked habit %q not done for %s\n", habit.Name, day)
	}

	if log.Completed {
		awarded, err := store.CheckAndAwardBadges(habit.ID)
		if err != nil {
			return err
		}
		for _, badge := range awarded {
			fmt.Printf("Earned the %s badge!\n", badge.Type)
		}
		fmt.Printf("Current streak: %d\n", store.GetCurrentStreakWithFreeze(habit.ID))
	}

	return nil
}
