package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"meal-budget-planner/internal/app"
	"meal-budget-planner/internal/config"
	"meal-budget-planner/internal/database"
	"meal-budget-planner/internal/ghost"
	"meal-budget-planner/internal/llm"
	"meal-budget-planner/internal/shopping"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	application := app.NewApp(cfg, db)

	// The LLM and Ghost clients are optional; planning, costing and the
	// grocery list run fully local without them.
	if cfg.HasLLM() {
		var textGen llm.TextGenerator
		var embedGen llm.EmbeddingGenerator

		if cfg.GeminiAPIKey != "" {
			geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
			if err != nil {
				log.Fatalf("Failed to initialize Gemini client: %v", err)
			}
			defer geminiClient.Close()
			textGen = geminiClient
			embedGen = geminiClient
		}
		if cfg.GroqAPIKey != "" {
			textGen = llm.NewGroqClient(cfg.GroqAPIKey)
		}

		application.WithLLM(textGen, embedGen)
	}
	if cfg.HasGhost() {
		application.WithGhost(ghost.NewClient(cfg.GhostURL, cfg.GhostContentKey, cfg.GhostAdminKey))
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		seed := planCmd.Int64("seed", 0, "Fix the exploration noise for a reproducible plan")
		planCmd.Parse(os.Args[2:])

		var seedPtr *int64
		if *seed != 0 {
			seedPtr = seed
		}

		plan, err := application.PlanWeek(ctx, time.Now(), seedPtr)
		if err != nil {
			log.Fatalf("Planning failed: %v", err)
		}

		fmt.Printf("Week of %s — budget $%.2f, planned $%.2f\n\n", plan.WeekStart.Format("Jan 2, 2006"), plan.Budget, plan.Spent)
		for _, day := range plan.Days {
			switch {
			case day.Unmet:
				fmt.Printf("  %-10s (nothing affordable)\n", day.Day)
			case day.RecipeTitle != "":
				fmt.Printf("  %-10s %s  $%.2f\n", day.Day, day.RecipeTitle, day.Cost)
			default:
				fmt.Printf("  %-10s leftovers\n", day.Day)
			}
		}
		if plan.Notes != "" {
			fmt.Printf("\n%s\n", plan.Notes)
		}
		for _, w := range plan.Warnings {
			fmt.Printf("\n! %s\n", w)
		}

	case "grocery":
		list, err := application.GroceryList(ctx, time.Now())
		if err != nil {
			log.Fatalf("Grocery list failed: %v", err)
		}
		fmt.Println(shopping.FormatText(*list))

	case "cost":
		costCmd := flag.NewFlagSet("cost", flag.ExitOnError)
		recipeID := costCmd.String("recipe", "", "Recipe id to price; all recipes when empty")
		costCmd.Parse(os.Args[2:])

		if *recipeID != "" {
			costing, err := application.CostRecipe(ctx, *recipeID)
			if err != nil {
				log.Fatalf("Costing failed: %v", err)
			}
			fmt.Printf("Total: $%.2f\n", costing.Total)
			if costing.PerServing != nil {
				fmt.Printf("Per serving: $%.2f\n", *costing.PerServing)
			}
			for _, w := range costing.Warnings {
				fmt.Printf("! %s\n", w)
			}
			return
		}

		costed, warnings, err := application.RecostAll(ctx)
		if err != nil {
			log.Fatalf("Costing failed: %v", err)
		}
		fmt.Printf("Costed %d recipes.\n", costed)
		for _, w := range warnings {
			fmt.Printf("! %s\n", w)
		}

	case "catalog":
		if len(os.Args) < 3 {
			log.Fatal("Usage: meal-planner catalog <import <file.json> | list>")
		}
		switch os.Args[2] {
		case "import":
			if len(os.Args) < 4 {
				log.Fatal("Usage: meal-planner catalog import <file.json>")
			}
			f, err := os.Open(os.Args[3])
			if err != nil {
				log.Fatalf("Failed to open catalog file: %v", err)
			}
			defer f.Close()

			n, err := application.ImportCatalog(ctx, f)
			if err != nil {
				log.Fatalf("Catalog import failed: %v", err)
			}
			fmt.Printf("Imported %d catalog entries.\n", n)
		case "list":
			ingredients, err := application.CatalogRepo().List(ctx)
			if err != nil {
				log.Fatalf("Failed to list the catalog: %v", err)
			}
			for _, ing := range ingredients {
				if ing.HasPackageData() {
					fmt.Printf("  %-30s $%.2f / %g %s  [%s]\n", ing.Name, ing.PricePerPackage, ing.PackageSize, ing.PackageUnit, ing.ID)
				} else {
					fmt.Printf("  %-30s (no price data)  [%s]\n", ing.Name, ing.ID)
				}
			}
		default:
			log.Fatalf("Unknown catalog command: %s", os.Args[2])
		}

	case "pantry":
		if len(os.Args) < 3 {
			log.Fatal("Usage: meal-planner pantry <add \"<qty> <unit> <name>\" | remove <name> | list>")
		}
		switch os.Args[2] {
		case "add":
			addCmd := flag.NewFlagSet("pantry add", flag.ExitOnError)
			mustUse := addCmd.Bool("must-use", false, "Flag the item as needing to be used soon")
			addCmd.Parse(os.Args[3:])
			if addCmd.NArg() < 1 {
				log.Fatal("Usage: meal-planner pantry add [-must-use] \"<qty> <unit> <name>\"")
			}

			item, err := application.AddPantryItem(ctx, strings.Join(addCmd.Args(), " "), *mustUse)
			if err != nil {
				log.Fatalf("Failed to add pantry item: %v", err)
			}
			fmt.Printf("Added %s to the pantry.\n", item.Name)
		case "remove":
			if len(os.Args) < 4 {
				log.Fatal("Usage: meal-planner pantry remove <name or id>")
			}
			item, err := application.RemovePantryItem(ctx, os.Args[3])
			if err != nil {
				log.Fatalf("Failed to remove pantry item: %v", err)
			}
			fmt.Printf("Removed %s from the pantry.\n", item.Name)
		case "list":
			items, err := application.PantryRepo().List(ctx)
			if err != nil {
				log.Fatalf("Failed to list the pantry: %v", err)
			}
			for _, item := range items {
				line := fmt.Sprintf("  %s", item.Name)
				if item.Quantity > 0 {
					line += fmt.Sprintf(" — %g %s", item.Quantity, item.Unit)
				}
				if item.MustUse {
					line += " (use soon)"
				}
				fmt.Println(line)
			}
		default:
			log.Fatalf("Unknown pantry command: %s", os.Args[2])
		}

	case "ingest":
		n, err := application.Ingest(ctx)
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		fmt.Printf("Ingested %d recipes.\n", n)

	case "import":
		if len(os.Args) < 3 {
			log.Fatal("Usage: meal-planner import <url>")
		}
		rec, err := application.Import(ctx, os.Args[2])
		if err != nil {
			if rec != nil {
				fmt.Printf("Saved '%s' locally, but publishing failed: %v\n", rec.Title, err)
				return
			}
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported '%s' (%s).\n", rec.Title, rec.ID)

	case "discover":
		if len(os.Args) < 3 {
			log.Fatal("Usage: meal-planner discover <craving>")
		}
		recipes, err := application.Discover(ctx, os.Args[2], 5)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		for _, rec := range recipes {
			if rec.CostPerServing != nil {
				fmt.Printf("  %s  ($%.2f/serving)\n", rec.Title, *rec.CostPerServing)
			} else {
				fmt.Printf("  %s\n", rec.Title)
			}
		}

	case "usage":
		daily, health, err := application.Usage(ctx, 7)
		if err != nil {
			log.Fatalf("Usage report failed: %v", err)
		}
		fmt.Println("Recent LLM activity:")
		if len(daily) == 0 {
			fmt.Println("  (no data yet)")
		}
		for _, d := range daily {
			fmt.Printf("  %s: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
		}
		fmt.Printf("\nRAM: %dMB alloc / %dMB sys, goroutines: %d, disk: %s\n",
			health.AllocMB, health.SysMB, health.Goroutines, health.DataDiskSize)

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := application.CleanupMetrics(ctx, *days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Old metric records removed.")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Select recipes for the current week within budget")
	fmt.Println("  grocery            Build the consolidated grocery list for the planned week")
	fmt.Println("  cost               Reprice recipes against the ingredient catalog")
	fmt.Println("  catalog            Import or list ingredient catalog entries")
	fmt.Println("  pantry             Add, remove or list what is on hand")
	fmt.Println("  ingest             Fetch and normalize recipes from Ghost")
	fmt.Println("  import <url>       Clip a recipe from a web page")
	fmt.Println("  discover <text>    Find stored recipes similar to a craving")
	fmt.Println("  usage              Show LLM token usage and process health")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
