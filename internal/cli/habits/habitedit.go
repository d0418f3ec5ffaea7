package habits

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

type HabitEditCmd struct {
	Name string `arg:"" help:"Habit name or id."`

	NewName       string `name:"name" help:"New habit name."`
	Description   string `short:"d" help:"New description."`
	Emoji         string `short:"e" help:"New emoji."`
	Frequency     string `short:"f" help:"New schedule (daily|weekly|custom)."`
	Days          string `short:"w" help:"Comma-separated weekdays for weekly or custom schedules."`
	ClearDays     bool   `help:"Remove the configured weekdays."`
	Category      string `short:"c" help:"Category name or id to file the habit under."`
	ClearCategory bool   `help:"Detach the habit from its category."`
	Goal          int    `short:"g" help:"New goal in days."`
	ClearGoal     bool   `help:"Remove the goal."`
}

func (c *HabitEditCmd) Validate() error {
	if c.Frequency != "" {
		switch c.Frequency {
		case "daily", "weekly", "custom":
		default:
			return fmt.Errorf("invalid frequency: %s (expected daily, weekly, or custom)", c.Frequency)
		}
	}

	if c.Days != "" {
		if _, err := cli.ParseWeekdays(c.Days); err != nil {
			return err
		}
	}
	if c.Days != "" && c.ClearDays {
		return fmt.Errorf("--days and --clear-days are mutually exclusive")
	}
	if c.Category != "" && c.ClearCategory {
		return fmt.Errorf("--category and --clear-category are mutually exclusive")
	}
	if c.Goal != 0 && c.ClearGoal {
		return fmt.Errorf("--goal and --clear-goal are mutually exclusive")
	}
	if c.Goal < 0 {
		return fmt.Errorf("goal must be a positive number of days")
	}

	return nil
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(store, c.Name)
	if err != nil {
		return err
	}

	patch := models.HabitPatch{}

	if c.NewName != "" {
		if existing := store.GetHabitByName(c.NewName); existing != nil && existing.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists", c.NewName)
		}
		patch.Name = &c.NewName
	}
	if c.Description != "" {
		patch.Description = &c.Description
	}
	if c.Emoji != "" {
		patch.Emoji = &c.Emoji
	}
	if c.Frequency != "" {
		frequency := models.Frequency(c.Frequency)
		patch.Frequency = &frequency
	}
	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		patch.CustomDays = days
	}
	patch.ClearCustomDays = c.ClearDays
	if c.Category != "" {
		category, err := cli.ResolveCategory(store, c.Category)
		if err != nil {
			return err
		}
		patch.CategoryID = &category.ID
	}
	patch.ClearCategory = c.ClearCategory
	if c.Goal > 0 {
		goal := c.Goal
		patch.GoalDays = &goal
	}
	patch.ClearGoal = c.ClearGoal

	updated, err := store.UpdateHabit(habit.ID, patch)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}
