package system

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/utils"
	"github.com/julianstephens/habitkit/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storageReachable := false

	// Check 1: Storage reachable
	snapshot, err := ctx.Provider.Load()
	if err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storageReachable = true
	}

	// Check 2: Snapshot version
	if storageReachable {
		if err := checkSnapshotVersion(snapshot); err != nil {
			fmt.Printf("❌ Snapshot version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Snapshot version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Snapshot version: SKIPPED (storage not reachable)\n")
	}

	// Check 3: Data validation
	if storageReachable {
		result := validation.New().ValidateSnapshot(snapshot)
		if result.HasConflicts() {
			fmt.Printf("❌ Data validation: FAIL\n")
			for _, conflict := range result.Conflicts {
				fmt.Printf("   - [%s] %s\n", conflict.Type, conflict.Description)
			}
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (storage not reachable)\n")
	}

	// Check 4: Backups present (warning only)
	if isFileBacked(ctx) {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (server-backed storage)\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Session lock
	if pid, alive, ok := storage.NewSessionLock(ctx.Provider.GetConfigPath()).Status(); ok && alive && pid != os.Getpid() {
		fmt.Printf("⚠ Session lock: WARNING\n")
		fmt.Printf("   another habitkit process (pid %d) holds the lock\n", pid)
	} else if ok && !alive {
		fmt.Printf("⚠ Session lock: WARNING\n")
		fmt.Printf("   stale lock left by dead process (pid %d); it is replaced on the next run\n", pid)
	} else {
		fmt.Printf("✓ Session lock: OK\n")
	}

	// Check 7: Freeze budget (warning only)
	if storageReachable {
		if used := freezeDaysThisMonth(snapshot); used > constants.MaxFreezeDaysPerMonth {
			fmt.Printf("⚠ Freeze budget: WARNING\n")
			fmt.Printf("   %d freeze days recorded this month (limit %d); imported data may exceed the cap\n", used, constants.MaxFreezeDaysPerMonth)
		} else {
			fmt.Printf("✓ Freeze budget: OK\n")
		}
	} else {
		fmt.Printf("⊘ Freeze budget: SKIPPED (storage not reachable)\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSnapshotVersion(snapshot *models.Snapshot) error {
	if snapshot == nil {
		// Uninitialized storage holds no snapshot to version-check
		return nil
	}
	if snapshot.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot version (%d) is newer than supported version (%d)", snapshot.Version, models.SnapshotVersion)
	}
	return nil
}

func isFileBacked(ctx *cli.Context) bool {
	info, err := os.Stat(ctx.Provider.GetConfigPath())
	return err == nil && !info.IsDir()
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Provider.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitkit backup create'")
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

func freezeDaysThisMonth(snapshot *models.Snapshot) int {
	if snapshot == nil {
		return 0
	}
	month := utils.MonthOf(utils.FormatDay(time.Now()))
	count := 0
	for _, freeze := range snapshot.FreezeDays {
		if utils.MonthOf(freeze.Day) == month {
			count++
		}
	}
	return count
}
