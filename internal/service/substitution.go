package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

// SubstitutionService looks up and manages ingredient substitutions.
type SubstitutionService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubstitutionService creates a SubstitutionService instance.
func NewSubstitutionService(db *gorm.DB, logger *zap.Logger) *SubstitutionService {
	return &SubstitutionService{db: db, logger: logger}
}

// GetSubstitutes returns up to limit substitutes whose original ingredient
// name contains the given name, best similarity first. Substring matching
// only; there is no edit-distance fallback.
func (s *SubstitutionService) GetSubstitutes(name string, limit int) ([]model.IngredientSubstitution, error) {
	var subs []model.IngredientSubstitution
	err := s.db.
		Where("original_ingredient LIKE ?", "%"+name+"%").
		Order("similarity_score DESC").
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// GetRecipeSubstitutions looks up substitutes for every needs-supply
// ingredient in the list and returns only the names that have candidates.
func (s *SubstitutionService) GetRecipeSubstitutions(ingredients []model.RecipeIngredient) (map[string][]model.IngredientSubstitution, error) {
	result := make(map[string][]model.IngredientSubstitution)
	for _, ing := range ingredients {
		if ing.Status != model.StatusNeeded {
			continue
		}
		subs, err := s.GetSubstitutes(ing.Name, 5)
		if err != nil {
			return nil, err
		}
		if len(subs) > 0 {
			result[ing.Name] = subs
		}
	}
	return result, nil
}

// List returns all substitution rows ordered by original ingredient name.
func (s *SubstitutionService) List() ([]model.IngredientSubstitution, error) {
	var subs []model.IngredientSubstitution
	if err := s.db.Order("original_ingredient").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Add creates a new substitution row. Score and ratio defaults are applied
// by the schema when unset.
func (s *SubstitutionService) Add(sub *model.IngredientSubstitution) error {
	if sub.SimilarityScore == 0 {
		sub.SimilarityScore = 0.8
	}
	if sub.SubstitutionRatio == "" {
		sub.SubstitutionRatio = "1:1"
	}
	if err := s.db.Create(sub).Error; err != nil {
		s.logger.Error("failed to add substitution",
			zap.String("original", sub.OriginalIngredient),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Delete removes a substitution row by id.
func (s *SubstitutionService) Delete(id uint) error {
	var sub model.IngredientSubstitution
	if err := s.db.First(&sub, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&sub).Error
}
