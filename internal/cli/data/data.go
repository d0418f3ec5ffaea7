package data

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/utils"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to a file instead of stdout." default:""`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	data, err := store.Export()
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Println(data)
		return nil
	}

	path := utils.ExpandPath(c.Output)
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported data to %s\n", path)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Path to a previously exported snapshot."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	path := utils.ExpandPath(c.File)
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if !c.Yes {
		fmt.Println("Importing replaces ALL current habits, logs, and badges.")
		fmt.Print("Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := store.Import(string(raw)); err != nil {
		return err
	}

	habits := store.GetHabits(true)
	fmt.Printf("Imported %d habit(s) from %s\n", len(habits), path)
	return nil
}
