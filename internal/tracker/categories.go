package tracker

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

// AddCategory creates a category, assigning a fresh id and creation
// timestamp. An empty color picks the next palette color: the first
// unused one, cycling through the palette once all are taken.
func (s *Store) AddCategory(category models.Category) (*models.Category, error) {
	category.ID = uuid.NewString()
	category.CreatedAt = s.now()
	if category.Color == "" {
		category.Color = s.nextPaletteColor()
	}
	if category.Order == 0 {
		category.Order = s.nextCategoryOrder()
	}

	s.snapshot.Categories = append(s.snapshot.Categories, category)
	if err := s.save(); err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *Store) nextPaletteColor() string {
	used := make(map[string]bool, len(s.snapshot.Categories))
	for _, category := range s.snapshot.Categories {
		used[category.Color] = true
	}
	for _, color := range constants.CategoryPalette {
		if !used[color] {
			return color
		}
	}
	return constants.CategoryPalette[len(s.snapshot.Categories)%len(constants.CategoryPalette)]
}

func (s *Store) nextCategoryOrder() int {
	if len(s.snapshot.Categories) == 0 {
		return 1
	}
	max := 0
	for _, category := range s.snapshot.Categories {
		if category.Order > max {
			max = category.Order
		}
	}
	return max + 1
}

// GetCategory returns the category with the given id, or nil when absent.
func (s *Store) GetCategory(id string) *models.Category {
	for _, category := range s.snapshot.Categories {
		if category.ID == id {
			found := category
			return &found
		}
	}
	return nil
}

// GetCategoryByName returns the first category whose name matches
// case-insensitively, or nil when none does.
func (s *Store) GetCategoryByName(name string) *models.Category {
	for _, category := range s.snapshot.Categories {
		if strings.EqualFold(category.Name, name) {
			found := category
			return &found
		}
	}
	return nil
}

// GetCategories lists categories sorted ascending by display order,
// ties broken by insertion order.
func (s *Store) GetCategories() []models.Category {
	categories := make([]models.Category, len(s.snapshot.Categories))
	copy(categories, s.snapshot.Categories)

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})

	return categories
}

// UpdateCategory applies a partial update to the category with the
// given id. The id itself is never changed. Returns nil when absent.
func (s *Store) UpdateCategory(id string, patch models.CategoryPatch) (*models.Category, error) {
	idx := s.categoryIndex(id)
	if idx < 0 {
		return nil, nil
	}

	category := &s.snapshot.Categories[idx]
	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if patch.Emoji != nil {
		category.Emoji = *patch.Emoji
	}
	if patch.Order != nil {
		category.Order = *patch.Order
	}

	if err := s.save(); err != nil {
		return nil, err
	}

	updated := *category
	return &updated, nil
}

// DeleteCategory hard-deletes a category and detaches it from every
// habit that references it; the habits themselves are kept. Returns
// false when the category is absent.
func (s *Store) DeleteCategory(id string) (bool, error) {
	idx := s.categoryIndex(id)
	if idx < 0 {
		return false, nil
	}

	s.snapshot.Categories = append(s.snapshot.Categories[:idx], s.snapshot.Categories[idx+1:]...)

	for i := range s.snapshot.Habits {
		if s.snapshot.Habits[i].CategoryID != nil && *s.snapshot.Habits[i].CategoryID == id {
			s.snapshot.Habits[i].CategoryID = nil
		}
	}

	if err := s.save(); err != nil {
		return true, err
	}

	return true, nil
}

// ReorderCategories assigns fresh order values following the given id
// sequence, mirroring ReorderHabits.
func (s *Store) ReorderCategories(ids []string) error {
	for position, id := range ids {
		if idx := s.categoryIndex(id); idx >= 0 {
			s.snapshot.Categories[idx].Order = position + 1
		}
	}
	return s.save()
}

func (s *Store) categoryIndex(id string) int {
	for i, category := range s.snapshot.Categories {
		if category.ID == id {
			return i
		}
	}
	return -1
}
