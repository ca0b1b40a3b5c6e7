// Command seed creates the schema and loads the sample pantry, favorite
// groups and substitution table. It is idempotent and skips seeding when
// the database already holds ingredients.
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/database"
	"github.com/smartcook/smartcook-backend/internal/logger"
	"github.com/smartcook/smartcook-backend/internal/model"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}

	var count int64
	if err := db.Model(&model.Ingredient{}).Count(&count).Error; err != nil {
		zl.Fatal("failed to inspect database", zap.Error(err))
	}
	if count > 0 {
		zl.Info("database already seeded, skipping", zap.Int64("ingredients", count))
		return
	}

	ingredients := sampleIngredients()
	if err := db.Create(&ingredients).Error; err != nil {
		zl.Fatal("failed to seed ingredients", zap.Error(err))
	}
	groups := sampleGroups()
	if err := db.Create(&groups).Error; err != nil {
		zl.Fatal("failed to seed favorite groups", zap.Error(err))
	}
	substitutions := sampleSubstitutions()
	if err := db.Create(&substitutions).Error; err != nil {
		zl.Fatal("failed to seed substitutions", zap.Error(err))
	}

	zl.Info("seeding complete",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("groups", len(groups)),
		zap.Int("substitutions", len(substitutions)))
}

func sampleIngredients() []model.Ingredient {
	return []model.Ingredient{
		{Name: "新鲜鸡蛋", Quantity: "6个", State: "新鲜", Category: "主食", StorageLocation: "fridge", IsCommon: true},
		{Name: "全脂牛奶", Quantity: "2盒", State: "新鲜", Category: "主食", StorageLocation: "fridge", IsCommon: true},
		{Name: "西红柿", Quantity: "4个", State: "新鲜", Category: "蔬菜", StorageLocation: "fridge"},
		{Name: "肥牛卷", Quantity: "1盒", State: "冷冻", Category: "肉禽", StorageLocation: "freezer"},
		{Name: "大米", Quantity: "5kg", State: "常温", Category: "主食", StorageLocation: "pantry", IsCommon: true},
		{Name: "酱油", Quantity: "1瓶", State: "常温", Category: "调料", StorageLocation: "pantry", IsCommon: true},
	}
}

func sampleGroups() []model.FavoriteGroup {
	return []model.FavoriteGroup{
		{Name: "减脂餐", Description: "健康低卡路里食谱"},
		{Name: "快手菜", Description: "15分钟快速料理"},
		{Name: "家常菜", Description: "经典家常美味"},
	}
}

func sampleSubstitutions() []model.IngredientSubstitution {
	return []model.IngredientSubstitution{
		{OriginalIngredient: "柠檬汁", SubstituteIngredient: "白醋", SimilarityScore: 0.85, SubstitutionRatio: "1:1", Notes: "酸味替代，适合凉拌菜和腌制", Category: "调料"},
		{OriginalIngredient: "柠檬汁", SubstituteIngredient: "青柠汁", SimilarityScore: 0.95, SubstitutionRatio: "1:1", Notes: "风味相近，可直接替代", Category: "调料"},
		{OriginalIngredient: "黄油", SubstituteIngredient: "植物油", SimilarityScore: 0.75, SubstitutionRatio: "1:0.8", Notes: "减少用量，口感略有差异", Category: "调料"},
		{OriginalIngredient: "黄油", SubstituteIngredient: "椰子油", SimilarityScore: 0.80, SubstitutionRatio: "1:1", Notes: "健康替代，带有椰香", Category: "调料"},
		{OriginalIngredient: "生抽", SubstituteIngredient: "老抽", SimilarityScore: 0.70, SubstitutionRatio: "1:0.5", Notes: "颜色更深，减少用量", Category: "调料"},
		{OriginalIngredient: "料酒", SubstituteIngredient: "白葡萄酒", SimilarityScore: 0.85, SubstitutionRatio: "1:1", Notes: "去腥效果相似", Category: "调料"},
		{OriginalIngredient: "蚝油", SubstituteIngredient: "生抽+糖", SimilarityScore: 0.70, SubstitutionRatio: "1勺蚝油=1勺生抽+少许糖", Notes: "鲜味略有差异", Category: "调料"},
		{OriginalIngredient: "牛奶", SubstituteIngredient: "豆浆", SimilarityScore: 0.80, SubstitutionRatio: "1:1", Notes: "植物蛋白替代，适合乳糖不耐受", Category: "蛋奶"},
		{OriginalIngredient: "牛奶", SubstituteIngredient: "椰奶", SimilarityScore: 0.75, SubstitutionRatio: "1:1", Notes: "带有椰香，适合东南亚菜", Category: "蛋奶"},
		{OriginalIngredient: "淡奶油", SubstituteIngredient: "牛奶+黄油", SimilarityScore: 0.80, SubstitutionRatio: "1杯奶油=3/4杯牛奶+1/4杯黄油", Notes: "口感相似", Category: "蛋奶"},
		{OriginalIngredient: "面粉", SubstituteIngredient: "玉米淀粉", SimilarityScore: 0.60, SubstitutionRatio: "1:0.5", Notes: "仅适合勾芡，不适合做面食", Category: "主食"},
		{OriginalIngredient: "白米", SubstituteIngredient: "糙米", SimilarityScore: 0.85, SubstitutionRatio: "1:1", Notes: "更健康，需要更长烹饪时间", Category: "主食"},
		{OriginalIngredient: "意大利面", SubstituteIngredient: "荞麦面", SimilarityScore: 0.75, SubstitutionRatio: "1:1", Notes: "口感略有不同，更健康", Category: "主食"},
		{OriginalIngredient: "洋葱", SubstituteIngredient: "大葱", SimilarityScore: 0.75, SubstitutionRatio: "1:1", Notes: "辛辣味相似，适合炒菜", Category: "蔬菜"},
		{OriginalIngredient: "西兰花", SubstituteIngredient: "菜花", SimilarityScore: 0.90, SubstitutionRatio: "1:1", Notes: "口感和营养相似", Category: "蔬菜"},
		{OriginalIngredient: "菠菜", SubstituteIngredient: "小白菜", SimilarityScore: 0.80, SubstitutionRatio: "1:1", Notes: "绿叶菜替代", Category: "蔬菜"},
		{OriginalIngredient: "鸡胸肉", SubstituteIngredient: "鸡腿肉", SimilarityScore: 0.85, SubstitutionRatio: "1:1", Notes: "鸡腿肉更嫩，脂肪含量稍高", Category: "肉禽"},
		{OriginalIngredient: "猪肉", SubstituteIngredient: "牛肉", SimilarityScore: 0.70, SubstitutionRatio: "1:1", Notes: "口感不同，烹饪时间可能需要调整", Category: "肉禽"},
		{OriginalIngredient: "虾", SubstituteIngredient: "鱿鱼", SimilarityScore: 0.75, SubstitutionRatio: "1:1", Notes: "海鲜类替代，口感略有不同", Category: "海鲜"},
		{OriginalIngredient: "白糖", SubstituteIngredient: "蜂蜜", SimilarityScore: 0.80, SubstitutionRatio: "1:0.75", Notes: "蜂蜜更甜，减少用量", Category: "调料"},
		{OriginalIngredient: "盐", SubstituteIngredient: "酱油", SimilarityScore: 0.70, SubstitutionRatio: "1勺盐=2勺酱油", Notes: "会增加颜色和鲜味", Category: "调料"},
		{OriginalIngredient: "大蒜", SubstituteIngredient: "蒜粉", SimilarityScore: 0.75, SubstitutionRatio: "1瓣蒜=1/8勺蒜粉", Notes: "风味略有差异", Category: "调料"},
		{OriginalIngredient: "生姜", SubstituteIngredient: "姜粉", SimilarityScore: 0.70, SubstitutionRatio: "1片姜=1/4勺姜粉", Notes: "新鲜生姜风味更佳", Category: "调料"},
		{OriginalIngredient: "香菜", SubstituteIngredient: "葱花", SimilarityScore: 0.65, SubstitutionRatio: "1:1", Notes: "提香作用相似", Category: "蔬菜"},
		{OriginalIngredient: "番茄酱", SubstituteIngredient: "番茄+糖", SimilarityScore: 0.75, SubstitutionRatio: "1勺番茄酱=2个番茄+少许糖", Notes: "需要煮制浓缩", Category: "调料"},
	}
}
