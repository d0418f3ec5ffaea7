package habits

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
	Emoji       string `short:"e" help:"Optional emoji shown next to the name."`
	Frequency   string `short:"f" help:"Schedule (daily|weekly|custom)." default:"daily"`
	Days        string `short:"w" help:"Comma-separated weekdays for weekly or custom schedules."`
	Category    string `short:"c" help:"Category name or id to file the habit under."`
	Goal        int    `short:"g" help:"Optional goal in days (e.g. 30 for a 30-day goal)."`
}

func (c *HabitAddCmd) Validate() error {
	switch c.Frequency {
	case "daily", "weekly", "custom":
	default:
		return fmt.Errorf("invalid frequency: %s (expected daily, weekly, or custom)", c.Frequency)
	}

	if c.Frequency == "custom" && c.Days == "" {
		return fmt.Errorf("custom schedules need --days (e.g. --days mon,wed,fri)")
	}

	if c.Days != "" {
		if _, err := cli.ParseWeekdays(c.Days); err != nil {
			return err
		}
	}

	if c.Goal < 0 {
		return fmt.Errorf("goal must be a positive number of days")
	}

	return nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	// Check if habit with same name already exists
	if existing := store.GetHabitByName(c.Name); existing != nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	habit := models.Habit{
		Name:        c.Name,
		Description: c.Description,
		Emoji:       c.Emoji,
		Frequency:   models.Frequency(c.Frequency),
	}

	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		habit.CustomDays = days
	}

	if c.Category != "" {
		category, err := cli.ResolveCategory(store, c.Category)
		if err != nil {
			return err
		}
		habit.CategoryID = &category.ID
	}

	if c.Goal > 0 {
		goal := c.Goal
		habit.GoalDays = &goal
	}

	created, err := store.AddHabit(habit)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", created.Name, cli.FormatFrequency(*created))
	return nil
}
