// Package app wires the repositories, the planning core and the optional
// LLM-backed features into the operations the CLI and the Telegram bot call.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"meal-budget-planner/internal/catalog"
	"meal-budget-planner/internal/config"
	"meal-budget-planner/internal/database"
	"meal-budget-planner/internal/ghost"
	"meal-budget-planner/internal/importer"
	"meal-budget-planner/internal/ingest"
	"meal-budget-planner/internal/llm"
	"meal-budget-planner/internal/metrics"
	"meal-budget-planner/internal/pantry"
	"meal-budget-planner/internal/planner"
	"meal-budget-planner/internal/recipe"
	"meal-budget-planner/internal/shopping"
	"meal-budget-planner/internal/storage"
)

// App holds the application's dependencies. The LLM, Ghost and importer
// fields may be nil; the planning and shopping core never needs them.
type App struct {
	cfg *config.Config
	db  *database.DB

	recipeRepo  *recipe.Repository
	catalogRepo *catalog.Repository
	pantryRepo  *pantry.Repository
	planRepo    *planner.PlanRepository
	listRepo    *shopping.Repository
	vectorRepo  *llm.VectorRepository
	metricsRepo *metrics.Store
	archive     *storage.PlanArchive

	ghostClient ghost.Client
	textGen     llm.TextGenerator
	embedGen    llm.EmbeddingGenerator
	clipper     *importer.Importer
}

// NewApp creates and initializes a new App instance.
func NewApp(cfg *config.Config, db *database.DB) *App {
	archive, err := storage.NewPlanArchive(filepath.Join(filepath.Dir(cfg.DatabasePath), "plans"))
	if err != nil {
		// Plans still persist to the database; only the file snapshots stop.
		log.Printf("Warning: plan archive unavailable: %v", err)
	}

	return &App{
		cfg:         cfg,
		db:          db,
		recipeRepo:  recipe.NewRepository(db.SQL),
		catalogRepo: catalog.NewRepository(db.SQL),
		pantryRepo:  pantry.NewRepository(db.SQL),
		planRepo:    planner.NewPlanRepository(db.SQL),
		listRepo:    shopping.NewRepository(db.SQL),
		vectorRepo:  llm.NewVectorRepository(db.SQL),
		metricsRepo: metrics.NewStore(db.SQL),
		archive:     archive,
	}
}

// WithLLM attaches the language-model clients that unlock the advisor,
// ingestion, discovery and import features.
func (a *App) WithLLM(textGen llm.TextGenerator, embedGen llm.EmbeddingGenerator) *App {
	a.textGen = textGen
	a.embedGen = embedGen
	return a
}

// WithGhost attaches the recipe blog client.
func (a *App) WithGhost(client ghost.Client) *App {
	a.ghostClient = client
	if a.textGen != nil {
		a.clipper = importer.New(a.textGen, a.recipeRepo, client)
	}
	return a
}

// Repos exposed for the Telegram bot's direct listing commands.

func (a *App) PantryRepo() *pantry.Repository   { return a.pantryRepo }
func (a *App) RecipeRepo() *recipe.Repository   { return a.recipeRepo }
func (a *App) CatalogRepo() *catalog.Repository { return a.catalogRepo }

// WeekStartOf rolls a timestamp back to the Sunday midnight (UTC) that
// starts its planning week.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// AddIngredient validates and upserts a catalog entry. A missing id gets a
// generated one so callers can add entries by name alone.
func (a *App) AddIngredient(ctx context.Context, ing catalog.Ingredient) (*catalog.Ingredient, error) {
	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}
	if err := ing.Validate(); err != nil {
		return nil, err
	}
	if err := a.catalogRepo.Save(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to save ingredient %q: %w", ing.Name, err)
	}
	return &ing, nil
}

// ImportCatalog bulk-upserts catalog entries from a JSON array. The batch is
// validated up front, so a bad file changes nothing.
func (a *App) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	ingredients, err := catalog.DecodeIngredients(r)
	if err != nil {
		return 0, err
	}

	for i := range ingredients {
		if ingredients[i].ID == "" {
			ingredients[i].ID = uuid.NewString()
		}
		if err := a.catalogRepo.Save(ctx, ingredients[i]); err != nil {
			return 0, fmt.Errorf("failed to save ingredient %q: %w", ingredients[i].Name, err)
		}
	}
	return len(ingredients), nil
}

// AddPantryItem parses a free-text line ("2 cups rice"), links it to the
// catalog when a match exists, and stores it.
func (a *App) AddPantryItem(ctx context.Context, line string, mustUse bool) (*pantry.Item, error) {
	candidates, err := a.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	item, err := buildPantryItem(line, mustUse, candidates)
	if err != nil {
		return nil, err
	}
	if err := a.pantryRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save pantry item %q: %w", item.Name, err)
	}
	return &item, nil
}

// RemovePantryItem deletes an item by id or case-insensitive name.
func (a *App) RemovePantryItem(ctx context.Context, key string) (*pantry.Item, error) {
	items, err := a.pantryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == key || strings.EqualFold(item.Name, key) {
			if err := a.pantryRepo.Delete(ctx, item.ID); err != nil {
				return nil, fmt.Errorf("failed to remove pantry item %q: %w", item.Name, err)
			}
			return &item, nil
		}
	}
	return nil, fmt.Errorf("no pantry item matches %q", key)
}

// buildPantryItem turns a free-text line into a pantry item, binding it to a
// catalog id when the matcher accepts one so netting can work by id.
func buildPantryItem(line string, mustUse bool, candidates []catalog.Ingredient) (pantry.Item, error) {
	parsed := recipe.ParseLine(line)
	if parsed.Name == "" {
		return pantry.Item{}, fmt.Errorf("nothing to add in %q", line)
	}

	item := pantry.Item{
		ID:       uuid.NewString(),
		Name:     parsed.Name,
		Quantity: parsed.Quantity,
		Unit:     parsed.Unit,
		MustUse:  mustUse,
		AddedAt:  time.Now().UTC(),
	}
	if m, ok := catalog.BestMatch(parsed.Name, candidates, catalog.DefaultMatchConfig()); ok {
		item.IngredientID = m.Ingredient.ID
	}
	if err := item.Validate(); err != nil {
		return pantry.Item{}, err
	}
	return item, nil
}

// RecostAll reprices every stored recipe against the catalog and persists
// the refreshed totals. Returns the number of recipes costed and the
// accumulated warnings.
func (a *App) RecostAll(ctx context.Context) (int, []string, error) {
	recipes, err := a.recipeRepo.List(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	allIngredients, err := a.catalogRepo.List(ctx)
	if err != nil {
		return 0, nil, err
	}

	costed := 0
	var warnings []string
	now := time.Now().UTC()

	for _, rec := range recipes {
		costing, err := recipe.Cost(rec, allIngredients, catalog.DefaultMatchConfig())
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", rec.Title, err))
			continue
		}
		for _, w := range costing.Warnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", rec.Title, w))
		}

		rec.ApplyCosting(costing)
		rec.IngredientIDs = resolvedIDs(costing)
		if err := a.recipeRepo.Save(ctx, rec); err != nil {
			return costed, warnings, fmt.Errorf("failed to save recosted recipe %s: %w", rec.ID, err)
		}
		for _, id := range rec.IngredientIDs {
			if err := a.catalogRepo.MarkCosted(ctx, id, now); err != nil {
				log.Printf("Warning: failed to mark ingredient %s as costed: %v", id, err)
			}
		}
		if costing.Costable() {
			costed++
		}
	}
	return costed, warnings, nil
}

// CostRecipe prices a single recipe and persists the refreshed totals.
func (a *App) CostRecipe(ctx context.Context, recipeID string) (*recipe.Costing, error) {
	rec, err := a.recipeRepo.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("recipe %s not found", recipeID)
	}

	allIngredients, err := a.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	costing, err := recipe.Cost(*rec, allIngredients, catalog.DefaultMatchConfig())
	if err != nil {
		return nil, err
	}

	rec.ApplyCosting(costing)
	rec.IngredientIDs = resolvedIDs(costing)
	if err := a.recipeRepo.Save(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to save recosted recipe %s: %w", rec.ID, err)
	}
	return &costing, nil
}

// PlanWeek selects recipes for the week containing the given time, asks the
// advisor for a note when an LLM is configured, and persists the plan along
// with its usage records. seed fixes the exploration noise for reproducible
// runs; pass nil for a time-seeded run.
func (a *App) PlanWeek(ctx context.Context, at time.Time, seed *int64) (*planner.WeekPlan, error) {
	weekStart := WeekStartOf(at)

	candidates, err := a.recipeRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	lookback := weekStart.AddDate(0, 0, -7*planner.DefaultScoreConfig().LookbackWeeks)
	usage, err := a.planRepo.ListUsageSince(ctx, lookback)
	if err != nil {
		return nil, err
	}
	onHand, err := a.pantryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	}

	plan, err := planner.SelectWeek(planner.SelectInput{
		WeekStart:  weekStart,
		Budget:     a.cfg.WeeklyBudget,
		Candidates: candidates,
		Usage:      usage,
		Pantry:     onHand,
		Rand:       rng,
	})
	if err != nil {
		return nil, err
	}

	if a.textGen != nil {
		advice, err := planner.AdviseWeek(ctx, a.textGen, plan)
		if err != nil {
			// The plan stands on its own; the note is best effort.
			log.Printf("Warning: advisor failed: %v", err)
		} else {
			plan.Notes = advice.Notes
			if err := a.metricsRepo.RecordMeta(ctx, plan.ID, advice.Meta); err != nil {
				log.Printf("Warning: failed to record advisor metrics: %v", err)
			}
		}
	}

	if err := a.planRepo.SavePlan(ctx, plan); err != nil {
		return nil, err
	}
	if a.archive != nil {
		if err := a.archive.Save(plan); err != nil {
			log.Printf("Warning: failed to archive plan snapshot: %v", err)
		}
	}
	return &plan, nil
}

// GroceryList builds and persists the grocery list for the week containing
// the given time. The week must already be planned.
func (a *App) GroceryList(ctx context.Context, at time.Time) (*shopping.GroceryList, error) {
	weekStart := WeekStartOf(at)

	plan, err := a.planRepo.GetPlanByWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("no plan stored for week of %s, plan first", weekStart.Format("Jan 2"))
	}

	recipes, err := a.recipeRepo.GetByIDs(ctx, plan.CookRecipeIDs())
	if err != nil {
		return nil, err
	}
	allIngredients, err := a.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	onHand, err := a.pantryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := shopping.Consolidate(weekStart, recipes, allIngredients, onHand, catalog.DefaultMatchConfig())
	if err := a.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Ingest fetches recipe posts from the Ghost blog, normalizes each with the
// LLM and stores recipes plus embeddings. Failures on individual posts are
// logged and skipped.
func (a *App) Ingest(ctx context.Context) (int, error) {
	if a.ghostClient == nil {
		return 0, fmt.Errorf("ghost is not configured")
	}
	if a.textGen == nil || a.embedGen == nil {
		return 0, fmt.Errorf("an LLM is required for ingestion")
	}

	posts, err := a.ghostClient.FetchRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch recipes from ghost: %w", err)
	}
	log.Printf("Fetched %d recipe posts from Ghost.", len(posts))

	ingested := 0
	for _, post := range posts {
		existing, err := a.recipeRepo.Get(ctx, "ghost-"+post.ID)
		if err == nil && existing != nil && existing.UpdatedAt == post.UpdatedAt {
			log.Printf("Recipe '%s' is up to date. Skipping.", post.Title)
			continue
		}

		log.Printf("Normalizing '%s'...", post.Title)
		res, err := ingest.NormalizePost(ctx, a.textGen, a.embedGen, post)
		if err != nil {
			log.Printf("Failed to normalize '%s': %v", post.Title, err)
			continue
		}

		if err := a.recipeRepo.Save(ctx, res.Recipe); err != nil {
			log.Printf("Failed to save recipe '%s': %v", res.Recipe.Title, err)
			continue
		}
		if err := a.vectorRepo.Save(ctx, res.Recipe.ID, res.Embedding); err != nil {
			log.Printf("Failed to save embedding for '%s': %v", res.Recipe.Title, err)
			continue
		}
		if err := a.metricsRepo.RecordMeta(ctx, res.Recipe.ID, res.Meta); err != nil {
			log.Printf("Warning: failed to record ingest metrics: %v", err)
		}
		ingested++
	}
	return ingested, nil
}

// Discover embeds a free-text craving and returns the most similar stored
// recipes, best match first.
func (a *App) Discover(ctx context.Context, query string, limit int) ([]recipe.Recipe, error) {
	if a.embedGen == nil {
		return nil, fmt.Errorf("an LLM is required for discovery")
	}

	queryEmbedding, err := a.embedGen.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := a.vectorRepo.FindSimilar(ctx, queryEmbedding, limit, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.RecipeID)
	}

	found, err := a.recipeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// GetByIDs does not preserve similarity order; restore it.
	byID := make(map[string]recipe.Recipe, len(found))
	for _, rec := range found {
		byID[rec.ID] = rec
	}
	ordered := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			ordered = append(ordered, rec)
		}
	}
	return ordered, nil
}

// Import clips a recipe from a URL into the store.
func (a *App) Import(ctx context.Context, url string) (*recipe.Recipe, error) {
	if a.textGen == nil {
		return nil, fmt.Errorf("an LLM is required for import")
	}
	clip := a.clipper
	if clip == nil {
		clip = importer.New(a.textGen, a.recipeRepo, nil)
	}

	rec, meta, err := clip.ImportURL(ctx, url)
	if meta.Usage.TotalTokens > 0 {
		runID := url
		if rec != nil {
			runID = rec.ID
		}
		if mErr := a.metricsRepo.RecordMeta(ctx, runID, meta); mErr != nil {
			log.Printf("Warning: failed to record import metrics: %v", mErr)
		}
	}
	return rec, err
}

// Usage reports LLM token consumption for the last N days plus process
// health.
func (a *App) Usage(ctx context.Context, days int) ([]metrics.DailyUsage, metrics.SysHealth, error) {
	daily, err := a.metricsRepo.GetDailyUsage(ctx, days)
	if err != nil {
		return nil, metrics.SysHealth{}, err
	}
	return daily, metrics.GetSysHealth(a.cfg.DatabasePath), nil
}

// CleanupMetrics removes metric rows older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, olderThanDays int) error {
	return a.metricsRepo.Cleanup(ctx, olderThanDays)
}

func resolvedIDs(c recipe.Costing) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, line := range c.Lines {
		if line.Resolved && !seen[line.IngredientID] {
			ids = append(ids, line.IngredientID)
			seen[line.IngredientID] = true
		}
	}
	return ids
}
