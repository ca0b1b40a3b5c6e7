package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/model"
)

// ChainService orchestrates the multi-turn pipeline: intent analysis,
// recipe generation and substitution recommendation, with parse fallbacks
// between the model calls.
type ChainService struct {
	recipes       *RecipeService
	substitutions *SubstitutionService
	llm           LLMClient
	logger        *zap.Logger
}

// NewChainService creates a ChainService instance.
func NewChainService(recipes *RecipeService, substitutions *SubstitutionService, llm LLMClient, logger *zap.Logger) *ChainService {
	return &ChainService{
		recipes:       recipes,
		substitutions: substitutions,
		llm:           llm,
		logger:        logger,
	}
}

// Process runs the full pipeline on one free-form input. Parse failures in
// any stage degrade to heuristic or database-backed fallbacks; only an
// error from the model transport itself is returned.
func (s *ChainService) Process(ctx context.Context, userInput string) (*ChainResult, error) {
	start := time.Now()
	s.logger.Info("chain processing started", zap.String("input", userInput))

	analysis, err := s.analyze(ctx, userInput)
	if err != nil {
		return nil, err
	}

	var recipes []model.Recipe
	if len(analysis.Ingredients) == 0 {
		s.logger.Warn("no ingredients recognized, skipping recipe generation")
		recipes = []model.Recipe{}
	} else {
		recipes = s.recipes.GenerateRecipes(ctx, analysis.Ingredients, analysis.Filters)
	}

	missing, candidates := s.collectCandidates(analysis, recipes)

	plan, err := s.recommendSubstitutions(ctx, userInput, missing, candidates)
	if err != nil {
		return nil, err
	}

	s.logger.Info("chain processing finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("recipes", len(recipes)),
		zap.Int("missing_ingredients", len(missing)),
	)

	return &ChainResult{
		Analysis:               analysis,
		Recipes:                recipes,
		Substitutions:          plan,
		MissingIngredients:     missing,
		SubstitutionCandidates: candidates,
	}, nil
}

// analyze runs the analysis model call and parses its output, degrading to
// a keyword heuristic when the response is not a usable JSON object.
func (s *ChainService) analyze(ctx context.Context, userInput string) (Analysis, error) {
	text, err := s.llm.Chat(ctx, buildAnalysisSystemPrompt(), "用户输入："+userInput+"\n只输出 JSON。")
	if err != nil {
		return Analysis{}, fmt.Errorf("analysis stage failed: %w", err)
	}

	var parsed Analysis
	if !decodeFirstJSON(text, valueStrategies, &parsed) {
		s.logger.Warn("analysis parse failed, using heuristic fallback")
		parsed = heuristicAnalysis(userInput)
	}

	normalized := make([]IngredientInput, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		n := ing.Normalize()
		if n.Name == "" {
			continue
		}
		normalized = append(normalized, n)
	}

	analysis := Analysis{
		Intent:      strings.TrimSpace(parsed.Intent),
		Ingredients: normalized,
		Filters:     parsed.Filters.Normalize(),
		Constraints: parsed.Constraints,
	}
	if analysis.Intent == "" {
		analysis.Intent = inferIntent(userInput)
	}
	if analysis.Constraints == nil {
		analysis.Constraints = []string{}
	}

	s.logger.Info("analysis completed",
		zap.String("intent", analysis.Intent),
		zap.Int("ingredients", len(analysis.Ingredients)),
	)
	return analysis, nil
}

// collectCandidates determines the missing-ingredient set and queries the
// substitution store for each one.
func (s *ChainService) collectCandidates(analysis Analysis, recipes []model.Recipe) ([]string, map[string][]model.IngredientSubstitution) {
	var missing []string
	if analysis.Intent == IntentSubstitution && len(analysis.Ingredients) > 0 {
		seen := make(map[string]bool)
		for _, ing := range analysis.Ingredients {
			if ing.Name != "" && !seen[ing.Name] {
				seen[ing.Name] = true
				missing = append(missing, ing.Name)
			}
		}
		sort.Strings(missing)
	} else {
		missing = extractMissingIngredients(recipes)
	}

	candidates := make(map[string][]model.IngredientSubstitution)
	for _, name := range missing {
		subs, err := s.substitutions.GetSubstitutes(name, config.SubstituteLimit)
		if err != nil {
			s.logger.Warn("substitute lookup failed", zap.String("ingredient", name), zap.Error(err))
			continue
		}
		if len(subs) > 0 {
			candidates[name] = subs
		}
	}

	if missing == nil {
		missing = []string{}
	}
	return missing, candidates
}

// extractMissingIngredients collects the needs-supply ingredient names of
// the generated recipes, deduplicated and sorted.
func extractMissingIngredients(recipes []model.Recipe) []string {
	set := make(map[string]bool)
	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			if strings.Contains(ing.Status, model.StatusNeeded) {
				name := strings.TrimSpace(ing.Name)
				if name != "" {
					set[name] = true
				}
			}
		}
	}

	missing := make([]string, 0, len(set))
	for name := range set {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// recommendSubstitutions runs the substitution model call, or short-circuits
// to a canned answer when nothing is missing. A parse failure falls back to
// a plan built directly from the database candidates.
func (s *ChainService) recommendSubstitutions(ctx context.Context, userInput string, missing []string, candidates map[string][]model.IngredientSubstitution) (SubstitutionPlan, error) {
	if len(missing) == 0 {
		return SubstitutionPlan{
			Summary: "当前食谱未包含需补充食材，无需替代方案。",
			Items:   []SubstitutionItem{},
		}, nil
	}

	text, err := s.llm.Chat(ctx, substitutionSystemPrompt, buildSubstitutionUserPrompt(userInput, missing, candidates))
	if err != nil {
		return SubstitutionPlan{}, fmt.Errorf("substitution stage failed: %w", err)
	}

	var plan SubstitutionPlan
	if !decodeFirstJSON(text, valueStrategies, &plan) {
		s.logger.Warn("substitution parse failed, falling back to database candidates")
		plan = fallbackSubstitutions(missing, candidates)
	}

	if plan.Items == nil {
		plan.Items = []SubstitutionItem{}
	}
	if plan.Summary == "" {
		plan.Summary = "已为缺失食材生成替代建议。"
	}
	return plan, nil
}

// fallbackSubstitutions builds a plan out of the database candidates alone.
func fallbackSubstitutions(missing []string, candidates map[string][]model.IngredientSubstitution) SubstitutionPlan {
	items := make([]SubstitutionItem, 0, len(missing))
	for _, name := range missing {
		recommendations := make([]SubstitutionRecommendation, 0, len(candidates[name]))
		for _, c := range candidates[name] {
			recommendations = append(recommendations, SubstitutionRecommendation{
				Name:   c.SubstituteIngredient,
				Ratio:  c.SubstitutionRatio,
				Note:   c.Notes,
				Source: "数据库",
			})
		}
		items = append(items, SubstitutionItem{
			Ingredient:      name,
			Reason:          "根据库存与口味偏好推荐替代。",
			Recommendations: recommendations,
		})
	}

	return SubstitutionPlan{
		Summary: "基于数据库替代关系生成建议。",
		Items:   items,
	}
}

// inferIntent classifies the input into one of three intents by keyword.
func inferIntent(userInput string) string {
	for _, kw := range []string{"替代", "没有", "缺少"} {
		if strings.Contains(userInput, kw) {
			return IntentSubstitution
		}
	}
	for _, kw := range []string{"做", "菜", "食谱", "做饭"} {
		if strings.Contains(userInput, kw) {
			return IntentRecipe
		}
	}
	return IntentAnalysis
}

// heuristicAnalysis scans the input for literal allow-list values; the
// first match wins each filter slot. No ingredients are recovered this way.
func heuristicAnalysis(userInput string) Analysis {
	filters := RecipeFilters{}
	for _, cuisine := range config.AllowedCuisines {
		if strings.Contains(userInput, cuisine) {
			filters.Cuisine = cuisine
			break
		}
	}
	for _, taste := range config.AllowedTastes {
		if strings.Contains(userInput, taste) {
			filters.Taste = taste
			break
		}
	}
	for _, scenario := range config.AllowedScenarios {
		if strings.Contains(userInput, scenario) {
			filters.Scenario = scenario
			break
		}
	}
	for _, skill := range config.AllowedSkills {
		if strings.Contains(userInput, skill) {
			filters.Skill = skill
			break
		}
	}

	return Analysis{
		Intent:      inferIntent(userInput),
		Ingredients: []IngredientInput{},
		Filters:     filters,
		Constraints: []string{},
	}
}

// buildAnalysisSystemPrompt embeds the allow-lists into the analysis
// instructions.
func buildAnalysisSystemPrompt() string {
	return fmt.Sprintf(`你是专业的食材分析与烹饪意图识别助手。请从用户的模糊输入中提取信息。
可选菜系: %s
可选口味: %s
可选场景: %s
可选技能: %s
可选食材状态: %s

输出严格 JSON：
{
  "intent": "食谱生成/替代方案/食材分析/其他",
  "ingredients": [
    {"name": "食材名", "quantity": "数量(可空)", "state": "状态(可空)"}
  ],
  "filters": {
    "cuisine": "菜系(可空)",
    "taste": "口味(可空)",
    "scenario": "场景(可空)",
    "skill": "技能(可空)"
  },
  "constraints": ["忌口/过敏/限制(可空)"]
}`,
		strings.Join(config.AllowedCuisines, "、"),
		strings.Join(config.AllowedTastes, "、"),
		strings.Join(config.AllowedScenarios, "、"),
		strings.Join(config.AllowedSkills, "、"),
		strings.Join(config.AllowedStates, "、"),
	)
}

const substitutionSystemPrompt = `你是专业的食材替代方案顾问。请结合数据库检索结果，生成完整替代方案。
要求：优先使用数据库候选项；若不足，可补充常见替代。
输出严格 JSON：
{
  "summary": "整体说明",
  "items": [
    {
      "ingredient": "缺失食材",
      "reason": "替代原因",
      "recommendations": [
        {"name": "替代品", "ratio": "比例", "note": "说明", "source": "数据库/补充建议"}
      ]
    }
  ]
}`

// buildSubstitutionUserPrompt lists the missing ingredients and the
// database candidates for the model to work from.
func buildSubstitutionUserPrompt(userInput string, missing []string, candidates map[string][]model.IngredientSubstitution) string {
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		candidatesJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("用户输入：" + userInput + "\n")
	b.WriteString("缺失食材：" + strings.Join(missing, "、") + "\n")
	b.WriteString("数据库候选：" + string(candidatesJSON) + "\n")
	b.WriteString("只输出 JSON。")
	return b.String()
}
