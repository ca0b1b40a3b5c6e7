package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

func seedLemonSubstitutes(t *testing.T, svc *SubstitutionService) {
	t.Helper()
	require.NoError(t, svc.Add(&model.IngredientSubstitution{
		OriginalIngredient: "柠檬汁", SubstituteIngredient: "白醋", SimilarityScore: 0.85,
	}))
	require.NoError(t, svc.Add(&model.IngredientSubstitution{
		OriginalIngredient: "柠檬汁", SubstituteIngredient: "青柠汁", SimilarityScore: 0.95,
	}))
}

func TestGetSubstitutesBestScoreFirst(t *testing.T) {
	svc := NewSubstitutionService(newTestDB(t), testLogger())
	seedLemonSubstitutes(t, svc)

	got, err := svc.GetSubstitutes("柠檬汁", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "青柠汁", got[0].SubstituteIngredient)
	assert.Equal(t, "白醋", got[1].SubstituteIngredient)
}

func TestGetSubstitutesSubstringMatch(t *testing.T) {
	svc := NewSubstitutionService(newTestDB(t), testLogger())
	seedLemonSubstitutes(t, svc)

	got, err := svc.GetSubstitutes("柠檬", 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.GetSubstitutes("牛油果", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetSubstitutesHonorsLimit(t *testing.T) {
	svc := NewSubstitutionService(newTestDB(t), testLogger())
	seedLemonSubstitutes(t, svc)

	got, err := svc.GetSubstitutes("柠檬汁", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "青柠汁", got[0].SubstituteIngredient)
}

func TestGetRecipeSubstitutionsOnlyNeededWithCandidates(t *testing.T) {
	svc := NewSubstitutionService(newTestDB(t), testLogger())
	seedLemonSubstitutes(t, svc)

	got, err := svc.GetRecipeSubstitutions([]model.RecipeIngredient{
		{Name: "柠檬汁", Status: model.StatusNeeded},
		{Name: "鸡蛋", Status: model.StatusHave},
		{Name: "松露", Status: model.StatusNeeded},
	})
	require.NoError(t, err)

	// Held ingredients and names with no candidates stay out of the map.
	require.Len(t, got, 1)
	assert.Len(t, got["柠檬汁"], 2)
}

func TestAddAppliesDefaults(t *testing.T) {
	svc := NewSubstitutionService(newTestDB(t), testLogger())

	sub := model.IngredientSubstitution{
		OriginalIngredient:   "黄油",
		SubstituteIngredient: "植物油",
	}
	require.NoError(t, svc.Add(&sub))
	assert.Equal(t, 0.8, sub.SimilarityScore)
	assert.Equal(t, "1:1", sub.SubstitutionRatio)
}

func TestDeleteSubstitutionNotFound(t *testing.T) {
	svc := NewSubstitutionService(newTestDB(t), testLogger())
	assert.ErrorIs(t, svc.Delete(99), gorm.ErrRecordNotFound)
}
