package backups

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
)

// dataFile returns the on-disk data file backing the current provider,
// or an error for server-backed storage that has no file to copy.
func dataFile(ctx *cli.Context) (string, error) {
	path := ctx.Provider.GetConfigPath()
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("backups are available for file-backed storage only (use your database's own backup tooling)")
	}
	return path, nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	path, err := dataFile(ctx)
	if err != nil {
		return err
	}

	mgr := backup.NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", backupPath)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	path, err := dataFile(ctx)
	if err != nil {
		return err
	}

	mgr := backup.NewManager(path)
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.GetBackupDir())
	for _, b := range backups {
		fmt.Printf("  %s | %s | %.1f KB\n",
			filepath.Base(b.Path),
			b.Timestamp.Format("2006-01-02 15:04:05"),
			float64(b.Size)/1024)
	}
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup file name or path to restore."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	path, err := dataFile(ctx)
	if err != nil {
		return err
	}

	mgr := backup.NewManager(path)

	// Accept a bare file name and resolve it against the backup directory
	backupPath := c.Backup
	if !filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			backupPath = filepath.Join(mgr.GetBackupDir(), c.Backup)
		}
	}

	if !c.Yes {
		fmt.Println("⚠ WARNING: This replaces your current data with the backup.")
		fmt.Println("A backup of the current data is taken first.")
		fmt.Print("Are you sure you want to restore? Type 'yes' to confirm: ")
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	fmt.Printf("✓ Backup restored from: %s\n", backupPath)
	fmt.Println("The restored data takes effect on the next run.")
	return nil
}
