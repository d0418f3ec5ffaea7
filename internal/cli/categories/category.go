package categories

import (
	"fmt"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Color string `short:"c" help:"Hex color (defaults to the next free palette color)."`
	Emoji string `short:"e" help:"Optional emoji."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if existing := store.GetCategoryByName(c.Name); existing != nil {
		return fmt.Errorf("category with name %q already exists", c.Name)
	}

	category := models.Category{
		Name:  c.Name,
		Color: c.Color,
		Emoji: c.Emoji,
	}

	created, err := store.AddCategory(category)
	if err != nil {
		return err
	}

	fmt.Printf("Added category: %s (%s)\n", created.Name, created.Color)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	categories := store.GetCategories()
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	// Count habits per category for the listing
	counts := make(map[string]int)
	for _, habit := range store.GetHabits(true) {
		if habit.CategoryID != nil {
			counts[*habit.CategoryID]++
		}
	}

	for _, category := range categories {
		name := category.Name
		if category.Emoji != "" {
			name = category.Emoji + " " + name
		}
		fmt.Printf("%s | %s | %d habit(s)\n", name, category.Color, counts[category.ID])
	}

	return nil
}

type CategoryEditCmd struct {
	Name string `arg:"" help:"Category name or id."`

	NewName string `name:"name" help:"New category name."`
	Color   string `short:"c" help:"New hex color."`
	Emoji   string `short:"e" help:"New emoji."`
}

func (c *CategoryEditCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	category, err := cli.ResolveCategory(store, c.Name)
	if err != nil {
		return err
	}

	patch := models.CategoryPatch{}
	if c.NewName != "" {
		if existing := store.GetCategoryByName(c.NewName); existing != nil && existing.ID != category.ID {
			return fmt.Errorf("category with name %q already exists", c.NewName)
		}
		patch.Name = &c.NewName
	}
	if c.Color != "" {
		patch.Color = &c.Color
	}
	if c.Emoji != "" {
		patch.Emoji = &c.Emoji
	}

	updated, err := store.UpdateCategory(category.ID, patch)
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("category %q not found", c.Name)
	}

	fmt.Printf("Updated category: %s\n", updated.Name)
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name or id to delete."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	category, err := cli.ResolveCategory(store, c.Name)
	if err != nil {
		return err
	}

	removed, err := store.DeleteCategory(category.ID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("category %q not found", c.Name)
	}

	fmt.Printf("Deleted category: %s\n", category.Name)
	fmt.Println("(Habits that used it were kept and detached.)")
	return nil
}

type CategoryReorderCmd struct {
	Names []string `arg:"" help:"Category names or ids in the desired order."`
}

func (c *CategoryReorderCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(c.Names))
	for _, name := range c.Names {
		category, err := cli.ResolveCategory(store, name)
		if err != nil {
			return err
		}
		ids = append(ids, category.ID)
	}

	if err := store.ReorderCategories(ids); err != nil {
		return err
	}

	fmt.Println("Reordered categories:")
	for _, category := range store.GetCategories() {
		fmt.Printf("  %d. %s\n", category.Order, category.Name)
	}

	return nil
}
