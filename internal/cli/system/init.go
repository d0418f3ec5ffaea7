package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/storage/postgres"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
	"github.com/julianstephens/habitkit/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source storage path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dataPath := ctx.Provider.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDataPath, err := filepath.Abs(dataPath)
			if err == nil {
				dataPath = absDataPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dataPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dataPath)
			}
		}
		if info, err := os.Stat(dataPath); err == nil && !info.IsDir() {
			// Data file exists, close the provider first to release any handles
			if err := ctx.Provider.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(dataPath); err != nil {
				return fmt.Errorf("failed to delete existing data: %w", err)
			}
			fmt.Printf("Deleted existing data at: %s\n", dataPath)
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing data: %w", err)
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}

	// Server-backed storage has no file to delete; reset it by writing
	// an empty snapshot instead
	if c.Force {
		if _, err := os.Stat(ctx.Provider.GetConfigPath()); err != nil {
			if err := ctx.Provider.Save(models.NewSnapshot()); err != nil {
				return fmt.Errorf("failed to reset storage: %w", err)
			}
		}
	}

	logger.Info("Storage initialized", "path", ctx.Provider.GetConfigPath())
	fmt.Printf("Initialized habitkit storage at: %s\n", ctx.Provider.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Determine the source store type and instantiate it
	var sourceStore storage.Provider
	switch {
	case strings.HasPrefix(sourcePath, "postgres://"), strings.HasPrefix(sourcePath, "postgresql://"), strings.Contains(sourcePath, "host="):
		// Validate source connection string for embedded credentials
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	case strings.HasSuffix(sourcePath, ".db"), strings.HasSuffix(sourcePath, ".sqlite"):
		sourceStore = sqlite.NewStore(utils.ExpandPath(sourcePath))
	default:
		sourceStore = storage.NewJSONStore(utils.ExpandPath(sourcePath))
	}
	defer sourceStore.Close()

	snapshot, err := sourceStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	if snapshot == nil {
		return fmt.Errorf("source storage holds no data")
	}
	snapshot.Normalize()

	if err := ctx.Provider.Save(snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot to destination: %w", err)
	}

	fmt.Printf("    Migrated %d habits\n", len(snapshot.Habits))
	fmt.Printf("    Migrated %d categories\n", len(snapshot.Categories))
	fmt.Printf("    Migrated %d logs\n", len(snapshot.Logs))
	fmt.Printf("    Migrated %d freeze days\n", len(snapshot.FreezeDays))
	fmt.Printf("    Migrated %d badges\n", len(snapshot.Badges))

	return nil
}
