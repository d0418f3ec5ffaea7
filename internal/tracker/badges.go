package tracker

import (
	"github.com/julianstephens/habitkit/internal/models"
)

// CheckAndAwardBadges awards every milestone the habit's freeze-aware
// current streak has reached and that has not been awarded before.
// Awarding is idempotent per (habit, type) pair; repeated calls return
// nothing new. Only newly awarded badges are returned.
func (s *Store) CheckAndAwardBadges(habitID string) ([]models.Badge, error) {
	streak := s.GetCurrentStreakWithFreeze(habitID)

	awarded := []models.Badge{}
	for _, milestone := range models.Milestones {
		if milestone.Days > streak {
			break
		}
		if s.HasBadge(habitID, milestone.Type) {
			continue
		}

		badge := models.Badge{
			HabitID:  habitID,
			Type:     milestone.Type,
			EarnedAt: s.now(),
		}
		s.snapshot.Badges = append(s.snapshot.Badges, badge)
		awarded = append(awarded, badge)
	}

	if len(awarded) == 0 {
		return awarded, nil
	}

	if err := s.save(); err != nil {
		return awarded, err
	}

	return awarded, nil
}

// HasBadge reports whether the habit already earned a badge of the
// given type.
func (s *Store) HasBadge(habitID string, badgeType models.BadgeType) bool {
	for _, badge := range s.snapshot.Badges {
		if badge.HabitID == habitID && badge.Type == badgeType {
			return true
		}
	}
	return false
}

// GetBadges lists earned badges, filtered to one habit when habitID is
// non-empty.
func (s *Store) GetBadges(habitID string) []models.Badge {
	badges := []models.Badge{}
	for _, badge := range s.snapshot.Badges {
		if habitID != "" && badge.HabitID != habitID {
			continue
		}
		badges = append(badges, badge)
	}
	return badges
}
