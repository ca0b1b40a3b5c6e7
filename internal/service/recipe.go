package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcook/smartcook-backend/internal/model"
)

// RecipeService generates recipes through the model provider and manages
// the recipe history and step progress.
type RecipeService struct {
	db     *gorm.DB
	llm    LLMClient
	logger *zap.Logger
}

// NewRecipeService creates a RecipeService instance.
func NewRecipeService(db *gorm.DB, llm LLMClient, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, llm: llm, logger: logger}
}

// flexString accepts both string and numeric JSON values; the model
// occasionally emits calories as a bare number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(fmt.Sprintf("%g", num))
		return nil
	}
	return fmt.Errorf("invalid string value")
}

// aiRecipe mirrors the loose JSON shape recipes arrive in from the model.
type aiRecipe struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Difficulty  string                   `json:"difficulty"`
	Time        string                   `json:"time"`
	CookingTime string                   `json:"cooking_time"`
	Calories    flexString               `json:"calories"`
	Cuisine     string                   `json:"cuisine"`
	Taste       string                   `json:"taste"`
	Scenario    string                   `json:"scenario"`
	SkillLevel  string                   `json:"skill_level"`
	Ingredients []model.RecipeIngredient `json:"ingredients"`
	Steps       []string                 `json:"steps"`
	Tags        []string                 `json:"tags"`
}

// toModel normalizes field-name variants into a Recipe row. The model may
// report cooking time as "time" and skill level as "difficulty".
func (r aiRecipe) toModel() model.Recipe {
	cookingTime := r.Time
	if cookingTime == "" {
		cookingTime = r.CookingTime
	}
	skill := r.SkillLevel
	if skill == "" {
		skill = r.Difficulty
	}
	return model.Recipe{
		Name:        r.Name,
		Description: r.Description,
		Difficulty:  r.Difficulty,
		CookingTime: cookingTime,
		Calories:    string(r.Calories),
		Cuisine:     r.Cuisine,
		Taste:       r.Taste,
		Scenario:    r.Scenario,
		SkillLevel:  skill,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Tags:        r.Tags,
	}
}

// GenerateRecipes builds the prompts, invokes the model once, parses the
// response and persists every parsed recipe. It never returns an error:
// model failures and unparseable responses degrade to the fallback recipe
// list, and a recipe whose save fails is skipped.
func (s *RecipeService) GenerateRecipes(ctx context.Context, ingredients []IngredientInput, filters RecipeFilters) []model.Recipe {
	start := time.Now()
	s.logger.Info("generating recipes",
		zap.Int("ingredient_count", len(ingredients)),
		zap.Any("filters", filters),
	)

	response, err := s.llm.Chat(ctx, generationSystemPrompt, buildGenerationUserPrompt(ingredients, filters))
	if err != nil {
		s.logger.Error("model call failed, using fallback recipes",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return fallbackRecipes()
	}

	parsed := s.parseRecipes(response)
	if len(parsed) == 0 {
		s.logger.Warn("response parse failed, using fallback recipes")
		return fallbackRecipes()
	}

	saved := make([]model.Recipe, 0, len(parsed))
	for i := range parsed {
		if err := s.db.Create(&parsed[i]).Error; err != nil {
			s.logger.Warn("failed to save recipe, skipping",
				zap.String("name", parsed[i].Name),
				zap.Error(err),
			)
			continue
		}
		saved = append(saved, parsed[i])
	}

	s.logger.Info("recipe generation finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("saved", len(saved)),
	)

	if len(saved) == 0 {
		// Nothing persisted; hand the caller the raw parse instead.
		return parsed
	}
	return saved
}

// parseRecipes extracts a recipe array from the raw model output. A single
// object response is wrapped into a one-element list.
func (s *RecipeService) parseRecipes(text string) []model.Recipe {
	var list []aiRecipe
	if !decodeFirstJSON(text, arrayStrategies, &list) {
		var one aiRecipe
		if !decodeFirstJSON(text, valueStrategies, &one) || one.Name == "" {
			return nil
		}
		list = []aiRecipe{one}
	}

	recipes := make([]model.Recipe, 0, len(list))
	for _, r := range list {
		recipes = append(recipes, r.toModel())
	}
	return recipes
}

// fallbackRecipes returns the deterministic recipe used when the model call
// or response parsing fails.
func fallbackRecipes() []model.Recipe {
	return []model.Recipe{
		{
			Name:        "经典家常炒饭",
			Description: "简单快手的美味炒饭",
			Difficulty:  "新手",
			CookingTime: "15分钟",
			Calories:    "约500卡",
			SkillLevel:  "新手",
			Ingredients: model.JSONIngredientList{
				{Name: "米饭", Quantity: "1碗", Status: model.StatusHave},
				{Name: "鸡蛋", Quantity: "2个", Status: model.StatusHave},
				{Name: "酱油", Quantity: "1勺", Status: model.StatusNeeded},
			},
			Steps: model.JSONStringList{
				"将鸡蛋打散，加少许盐",
				"热锅下油，炒散鸡蛋后盛出",
				"下米饭翻炒，加入鸡蛋和酱油",
				"翻炒均匀即可出锅",
			},
			Tags: model.JSONStringList{"快手菜", "经典美味"},
		},
	}
}

const generationSystemPrompt = `你是一位专业的美食顾问和创意厨师，擅长根据现有食材创造美味且可执行的食谱。

你的任务：
1. 根据用户提供的食材，生成 3 个创意食谱
2. 每个食谱必须包含：创意菜名、所需食材（标注[已有]和[需补充]）、难度等级、烹饪时间、大致热量、详细步骤
3. 食谱必须合理可行，避免奇怪的食材组合（除非用户明确要求）
4. 优先使用用户已有的食材，尽量减少需要补充的食材
5. 菜名要有创意和吸引力，例如"黄金满屋蛋炒饭"而不是"蛋炒饭"

输出格式（JSON）：
` + "```json" + `
[
  {
    "name": "创意菜名",
    "description": "简短描述",
    "difficulty": "新手/进阶",
    "time": "15分钟",
    "calories": "约450卡",
    "ingredients": [
      {"name": "鸡蛋", "quantity": "2个", "status": "已有"},
      {"name": "酱油", "quantity": "1勺", "status": "需补充"}
    ],
    "steps": [
      "步骤1：...",
      "步骤2：..."
    ],
    "tags": ["快手菜", "营养丰富"]
  }
]
` + "```" + `

重要约束：
- 不要生成"西瓜炒月饼"等不合理组合
- 考虑食材的新鲜度和状态（冷冻、新鲜等）
- 步骤要清晰具体，适合烹饪新手`

// buildGenerationUserPrompt lists each ingredient and the supplied
// preference filters.
func buildGenerationUserPrompt(ingredients []IngredientInput, filters RecipeFilters) string {
	var b strings.Builder
	b.WriteString("我的冰箱里有以下食材：\n")
	for _, ing := range ingredients {
		n := ing.Normalize()
		fmt.Fprintf(&b, "- %s (%s) - %s\n", n.Name, n.Quantity, n.State)
	}
	b.WriteString("\n")

	var prefs []string
	if filters.Cuisine != "" {
		prefs = append(prefs, "菜系："+filters.Cuisine)
	}
	if filters.Taste != "" {
		prefs = append(prefs, "口味："+filters.Taste)
	}
	if filters.Scenario != "" {
		prefs = append(prefs, "场景："+filters.Scenario)
	}
	if filters.Skill != "" {
		prefs = append(prefs, "技能水平："+filters.Skill)
	}
	if len(prefs) > 0 {
		b.WriteString("我的偏好：\n" + strings.Join(prefs, "\n") + "\n\n")
	}

	b.WriteString("请根据这些食材，为我生成 3 个创意食谱。请严格按照 JSON 格式输出。")
	return b.String()
}

// History returns the most recent generated recipes.
func (s *RecipeService) History(limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetByID returns one recipe with its step progress loaded.
func (s *RecipeService) GetByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.Preload("StepProgress").First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe together with its favorites and step progress.
// Shopping list items that reference the recipe are kept.
func (s *RecipeService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var recipe model.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeStepProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// GetProgress returns all step progress rows for a recipe.
func (s *RecipeService) GetProgress(recipeID uint) ([]model.RecipeStepProgress, error) {
	var progress []model.RecipeStepProgress
	if err := s.db.Where("recipe_id = ?", recipeID).Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// UpdateProgress finds or creates the row for (recipeID, stepIndex) and sets
// its completion state. Completing stamps the current time; un-completing
// clears it. The step index is accepted as-is.
func (s *RecipeService) UpdateProgress(recipeID uint, stepIndex int, isCompleted bool) (*model.RecipeStepProgress, error) {
	var progress model.RecipeStepProgress
	err := s.db.Where("recipe_id = ? AND step_index = ?", recipeID, stepIndex).First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		progress = model.RecipeStepProgress{RecipeID: recipeID, StepIndex: stepIndex}
	}

	progress.IsCompleted = isCompleted
	if isCompleted {
		now := time.Now().UTC()
		progress.CompletedAt = &now
	} else {
		progress.CompletedAt = nil
	}

	if err := s.db.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}
