package tracker

import (
	"sort"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// AddFreezeDay marks a calendar day as frozen. Freezing an already
// frozen day is a no-op returning nil. The engine does not enforce the
// monthly cap; callers combine CountFreezeDaysThisMonth with the cap to
// decide whether to add.
func (s *Store) AddFreezeDay(day, reason string) (*models.FreezeDay, error) {
	if s.IsFrozen(day) {
		return nil, nil
	}

	freeze := models.FreezeDay{
		Day:       day,
		Reason:    reason,
		CreatedAt: s.now(),
	}
	s.snapshot.FreezeDays = append(s.snapshot.FreezeDays, freeze)

	if err := s.save(); err != nil {
		return nil, err
	}

	return &freeze, nil
}

// RemoveFreezeDay unfreezes a day. Returns false when the day was not
// frozen.
func (s *Store) RemoveFreezeDay(day string) (bool, error) {
	for i, freeze := range s.snapshot.FreezeDays {
		if freeze.Day == day {
			s.snapshot.FreezeDays = append(s.snapshot.FreezeDays[:i], s.snapshot.FreezeDays[i+1:]...)
			if err := s.save(); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// IsFrozen reports whether the given day is in the freeze ledger.
func (s *Store) IsFrozen(day string) bool {
	for _, freeze := range s.snapshot.FreezeDays {
		if freeze.Day == day {
			return true
		}
	}
	return false
}

// CountFreezeDaysThisMonth counts freeze entries falling in the current
// calendar month (YYYY-MM prefix match on the day).
func (s *Store) CountFreezeDaysThisMonth() int {
	month := utils.MonthOf(s.Today())
	count := 0
	for _, freeze := range s.snapshot.FreezeDays {
		if utils.MonthOf(freeze.Day) == month {
			count++
		}
	}
	return count
}

// GetFreezeDays lists the freeze ledger sorted ascending by day.
func (s *Store) GetFreezeDays() []models.FreezeDay {
	freezeDays := make([]models.FreezeDay, len(s.snapshot.FreezeDays))
	copy(freezeDays, s.snapshot.FreezeDays)

	sort.SliceStable(freezeDays, func(i, j int) bool {
		return freezeDays[i].Day < freezeDays[j].Day
	})

	return freezeDays
}
