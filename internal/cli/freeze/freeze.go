package freeze

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/utils"
)

type FreezeAddCmd struct {
	Date   string `arg:"" optional:"" help:"Day to freeze in YYYY-MM-DD format (default: today)."`
	Reason string `short:"r" help:"Why the day is frozen (e.g. sick, travel)." default:""`
}

func (c *FreezeAddCmd) Validate() error {
	if c.Date != "" && !utils.ValidateDayFormat(c.Date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}
	return nil
}

func (c *FreezeAddCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = store.Today()
	}

	if !store.IsFrozen(day) && store.CountFreezeDaysThisMonth() >= constants.MaxFreezeDaysPerMonth {
		return fmt.Errorf("freeze limit reached: at most %d freeze days per month", constants.MaxFreezeDaysPerMonth)
	}

	freeze, err := store.AddFreezeDay(day, c.Reason)
	if err != nil {
		return err
	}
	if freeze == nil {
		fmt.Printf("Day %s is already frozen.\n", day)
		return nil
	}

	if freeze.Reason != "" {
		fmt.Printf("Froze %s (%s)\n", freeze.Day, freeze.Reason)
	} else {
		fmt.Printf("Froze %s\n", freeze.Day)
	}
	return nil
}

type FreezeRemoveCmd struct {
	Date string `arg:"" help:"Day to unfreeze in YYYY-MM-DD format."`
}

func (c *FreezeRemoveCmd) Validate() error {
	if !utils.ValidateDayFormat(c.Date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}
	return nil
}

func (c *FreezeRemoveCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	removed, err := store.RemoveFreezeDay(c.Date)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("Day %s is not frozen.\n", c.Date)
		return nil
	}

	fmt.Printf("Unfroze %s\n", c.Date)
	return nil
}

type FreezeListCmd struct{}

func (c *FreezeListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	freezeDays := store.GetFreezeDays()
	if len(freezeDays) == 0 {
		fmt.Println("No freeze days recorded.")
		return nil
	}

	fmt.Printf("Freeze days (%d used this month, limit %d):\n", store.CountFreezeDaysThisMonth(), constants.MaxFreezeDaysPerMonth)
	for _, freeze := range freezeDays {
		if freeze.Reason != "" {
			fmt.Printf("  %s | %s\n", freeze.Day, freeze.Reason)
		} else {
			fmt.Printf("  %s\n", freeze.Day)
		}
	}
	return nil
}
