package habits

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitkit/internal/cli"
)

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id to delete."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(store, c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("This permanently removes %q and all of its logs and badges.\n", habit.Name)
		fmt.Print("Continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	removed, err := store.DeleteHabit(habit.ID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
