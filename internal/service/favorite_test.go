package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

func TestFavoriteAddEmbedsRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db, testLogger())

	recipe := model.Recipe{Name: "糖醋里脊"}
	require.NoError(t, db.Create(&recipe).Error)

	favorite := model.Favorite{RecipeID: recipe.ID, Notes: "周末做"}
	require.NoError(t, svc.Add(&favorite))

	require.NotNil(t, favorite.Recipe)
	assert.Equal(t, "糖醋里脊", favorite.Recipe.Name)
}

func TestListGroupsWithCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db, testLogger())

	recipe := model.Recipe{Name: "麻婆豆腐"}
	require.NoError(t, db.Create(&recipe).Error)

	group := model.FavoriteGroup{Name: "家常菜"}
	require.NoError(t, svc.CreateGroup(&group))
	empty := model.FavoriteGroup{Name: "减脂餐"}
	require.NoError(t, svc.CreateGroup(&empty))

	require.NoError(t, svc.Add(&model.Favorite{RecipeID: recipe.ID, GroupID: &group.ID}))
	require.NoError(t, svc.Add(&model.Favorite{RecipeID: recipe.ID, GroupID: &group.ID}))

	views, err := svc.ListGroups()
	require.NoError(t, err)
	require.Len(t, views, 2)

	counts := map[string]int{}
	for _, v := range views {
		counts[v.Name] = v.FavoritesCount
	}
	assert.Equal(t, 2, counts["家常菜"])
	assert.Equal(t, 0, counts["减脂餐"])
}

func TestDeleteGroupUngroupsFavorites(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db, testLogger())

	recipe := model.Recipe{Name: "清蒸鱼"}
	require.NoError(t, db.Create(&recipe).Error)
	group := model.FavoriteGroup{Name: "宴客菜"}
	require.NoError(t, svc.CreateGroup(&group))

	favorite := model.Favorite{RecipeID: recipe.ID, GroupID: &group.ID}
	require.NoError(t, svc.Add(&favorite))

	require.NoError(t, svc.DeleteGroup(group.ID))

	var reloaded model.Favorite
	require.NoError(t, db.First(&reloaded, favorite.ID).Error)
	assert.Nil(t, reloaded.GroupID)
}

func TestUpdateGroupPartial(t *testing.T) {
	svc := NewFavoriteService(newTestDB(t), testLogger())

	group := model.FavoriteGroup{Name: "快手菜", Description: "15分钟"}
	require.NoError(t, svc.CreateGroup(&group))

	desc := "20分钟以内"
	got, err := svc.UpdateGroup(group.ID, GroupUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "快手菜", got.Name)
	assert.Equal(t, "20分钟以内", got.Description)
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	svc := NewFavoriteService(newTestDB(t), testLogger())
	assert.ErrorIs(t, svc.Remove(5), gorm.ErrRecordNotFound)
}
