package plan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/application/shopping"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/domain/plan"
	"github.com/mealforge/v1/internal/domain/profile"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
	"github.com/mealforge/v1/pkg/random"
	"go.uber.org/zap"
)

// Cache keys. Entries are whole-value replacements keyed per client
// (profile) or catalog-wide (meals).
const (
	catalogCacheKey    = "catalog:all"
	profileCachePrefix = "profile:"
)

// ServiceConfig carries the tunables the engine needs at runtime.
type ServiceConfig struct {
	CacheTTL       time.Duration
	LoadTimeout    time.Duration
	MinCatalogSize int
}

// PlanService implements the meal-plan generation use cases.
type PlanService struct {
	profiles  outbound.ProfileRepository
	meals     outbound.MealRepository
	plans     outbound.PlanRepository
	cache     outbound.CacheRepository
	rng       random.Source
	assembler *PlanAssembler
	cfg       ServiceConfig
	logger    *zap.Logger
}

// NewPlanService creates a new plan service.
func NewPlanService(
	profiles outbound.ProfileRepository,
	meals outbound.MealRepository,
	plans outbound.PlanRepository,
	cache outbound.CacheRepository,
	rng random.Source,
	cfg ServiceConfig,
	logger *zap.Logger,
) inbound.PlanService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Second
	}
	if cfg.MinCatalogSize <= 0 {
		cfg.MinCatalogSize = meal.MinUsableCatalogSize
	}

	return &PlanService{
		profiles:  profiles,
		meals:     meals,
		plans:     plans,
		cache:     cache,
		rng:       rng,
		assembler: NewPlanAssembler(rng, logger),
		cfg:       cfg,
		logger:    logger.Named("plan-service"),
	}
}

// GenerateWeekPlan runs the full pipeline: load, score, assemble,
// analyze, aggregate and persist. A persistence failure is reported
// alongside the plan; the generated plan stays usable either way.
func (s *PlanService) GenerateWeekPlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (*inbound.WeekPlanResult, error) {
	if cmd.ClientID == uuid.Nil {
		return nil, errors.NewBadRequestError("client id is required")
	}

	s.logger.Info("Generating week plan",
		zap.String("client_id", cmd.ClientID.String()),
		zap.Int("days", cmd.Days),
		zap.String("variation_level", string(cmd.VariationLevel)),
	)

	client, err := s.loadProfile(ctx, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	meals, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	prof := profile.Resolve(*client, s.logger)

	engine := NewScoringEngine(s.rng)
	scored := engine.ScoreAll(meals, prof, cmd.ExcludedIngredients, cmd.SelectedIngredients)

	forced := make(map[string][]string, len(cmd.ForcedMeals))
	for _, f := range cmd.ForcedMeals {
		forced[f.Timing] = append(forced[f.Timing], f.MealID)
	}

	week, err := s.assembler.Assemble(ctx, prof, meals, scored, AssembleOptions{
		Days:            cmd.Days,
		VariationLevel:  string(cmd.VariationLevel),
		AvoidDuplicates: cmd.AvoidDuplicates,
		ForcedMeals:     forced,
	})
	if err != nil {
		return nil, err
	}

	week.Analysis = Analyze(week, cmd.SelectedIngredients)

	result := &inbound.WeekPlanResult{
		Plan:           week,
		ShoppingList:   shopping.Aggregate(week),
		DerivedTargets: prof.Targets.Derived,
	}

	if err := s.plans.Save(ctx, week); err != nil {
		saveErr := errors.NewPlanSaveFailedError(cmd.ClientID.String(), err)
		s.logger.Error("Plan generated but could not be saved",
			zap.String("client_id", cmd.ClientID.String()),
			zap.Error(err),
		)
		result.SaveError = saveErr.Error()
	}

	return result, nil
}

// GetActivePlan returns the client's currently active plan.
func (s *PlanService) GetActivePlan(ctx context.Context, clientID uuid.UUID) (*plan.WeekPlan, error) {
	week, err := s.plans.FindActive(ctx, clientID)
	if err != nil {
		return nil, errors.NewDatabaseError("load active plan", err)
	}
	if week == nil {
		return nil, errors.NewPlanNotFoundError(clientID.String())
	}
	return week, nil
}

// ListPlans returns the client's plan history, newest first. An empty
// history is a valid result, not an error.
func (s *PlanService) ListPlans(ctx context.Context, clientID uuid.UUID) ([]*plan.WeekPlan, error) {
	plans, err := s.plans.FindByClient(ctx, clientID)
	if err != nil {
		return nil, errors.NewDatabaseError("list plans", err)
	}
	return plans, nil
}

// GetMeal returns a single catalog meal by id.
func (s *PlanService) GetMeal(ctx context.Context, mealID string) (*meal.Meal, error) {
	m, err := s.meals.FindByID(ctx, mealID)
	if err != nil {
		return nil, errors.NewDatabaseError("load meal", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("meal " + mealID)
	}
	return m, nil
}

// ExportShoppingList aggregates the active plan's ingredients and
// renders them in the requested format.
func (s *PlanService) ExportShoppingList(ctx context.Context, clientID uuid.UUID, format string) ([]byte, string, error) {
	week, err := s.GetActivePlan(ctx, clientID)
	if err != nil {
		return nil, "", err
	}

	payload, contentType := shopping.Aggregate(week).Export(format)
	return payload, contentType, nil
}

// loadProfile fetches the client record through the cache.
func (s *PlanService) loadProfile(ctx context.Context, clientID uuid.UUID) (*profile.Client, error) {
	key := profileCachePrefix + clientID.String()

	if cached, err := s.cache.Get(ctx, key); err == nil && len(cached) > 0 {
		var client profile.Client
		if err := json.Unmarshal(cached, &client); err == nil {
			return &client, nil
		}
		// Poisoned entry: drop and fall through to the store.
		_ = s.cache.Delete(ctx, key)
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
	defer cancel()

	client, err := s.profiles.FindByClientID(loadCtx, clientID)
	if err != nil {
		if loadCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewTimeoutError("load client profile", err)
		}
		return nil, errors.NewDatabaseError("load client profile", err)
	}
	if client == nil {
		return nil, errors.NewProfileNotFoundError(clientID.String())
	}

	if data, err := json.Marshal(client); err == nil {
		_ = s.cache.Set(ctx, key, data, s.cfg.CacheTTL)
	}

	return client, nil
}

// loadCatalog fetches and normalizes the catalog through the cache,
// expanding small catalogs with synthesized variations.
func (s *PlanService) loadCatalog(ctx context.Context) ([]*meal.Meal, error) {
	if cached, err := s.cache.Get(ctx, catalogCacheKey); err == nil && len(cached) > 0 {
		var snapshots []meal.Snapshot
		if err := json.Unmarshal(cached, &snapshots); err == nil && len(snapshots) > 0 {
			meals := make([]*meal.Meal, len(snapshots))
			for i, snap := range snapshots {
				meals[i] = meal.FromSnapshot(snap)
			}
			return meals, nil
		}
		_ = s.cache.Delete(ctx, catalogCacheKey)
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
	defer cancel()

	meals, err := s.meals.FindAll(loadCtx)
	if err != nil {
		if loadCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewTimeoutError("load meal catalog", err)
		}
		return nil, errors.NewDatabaseError("load meal catalog", err)
	}
	if len(meals) == 0 {
		return nil, errors.NewNoCatalogDataError()
	}

	meals = meal.ExpandCatalog(meals, s.cfg.MinCatalogSize)

	snapshots := make([]meal.Snapshot, len(meals))
	for i, m := range meals {
		snapshots[i] = m.Snapshot()
	}
	if data, err := json.Marshal(snapshots); err == nil {
		_ = s.cache.Set(ctx, catalogCacheKey, data, s.cfg.CacheTTL)
	}

	return meals, nil
}
