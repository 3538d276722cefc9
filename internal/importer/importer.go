// Package importer clips a recipe from any web page: fetch the page, strip
// the noise, have the LLM extract the structured recipe, and store it ready
// for costing and planning.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"meal-budget-planner/internal/ghost"
	"meal-budget-planner/internal/llm"
	"meal-budget-planner/internal/recipe"
	"meal-budget-planner/internal/shared"
)

// RecipeSaver is the slice of the recipe repository the importer needs.
type RecipeSaver interface {
	Save(ctx context.Context, rec recipe.Recipe) error
}

// Importer handles fetching and extracting recipes from URLs.
type Importer struct {
	textGen     llm.TextGenerator
	recipes     RecipeSaver
	ghostClient ghost.Client // optional, publishes imported recipes back to the blog
	httpClient  *http.Client
}

// ExtractedRecipe represents the data structured by the AI.
type ExtractedRecipe struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prep_time"`
	Servings    int      `json:"servings"`
}

// New creates a new Importer. ghostClient may be nil when no blog is
// configured; imports then stay local.
func New(textGen llm.TextGenerator, recipes RecipeSaver, ghostClient ghost.Client) *Importer {
	return &Importer{
		textGen:     textGen,
		recipes:     recipes,
		ghostClient: ghostClient,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ImportURL fetches the URL, extracts the recipe using the LLM and saves it
// to the recipe store. The returned meta carries token usage for metrics.
func (i *Importer) ImportURL(ctx context.Context, url string) (*recipe.Recipe, shared.AgentMeta, error) {
	start := time.Now()
	meta := shared.AgentMeta{AgentName: "Importer"}

	content, err := i.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "category": "main protein or dish type, e.g. chicken, beef, vegetarian",
  "ingredients": ["quantity unit name", "quantity unit name", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "prep_time": "e.g. 30 mins",
  "servings": 4
}

Each ingredient line must start with its quantity and unit when the page gives them.
Return ONLY the raw JSON, no markdown fences.

Page Content:
%s
`, content)

	resp, err := i.textGen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		return nil, meta, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted ExtractedRecipe
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, meta, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if extracted.Title == "" || len(extracted.Ingredients) == 0 {
		return nil, meta, fmt.Errorf("extraction produced no usable recipe from %s", url)
	}

	rec := recipe.Recipe{
		ID:           uuid.NewString(),
		Title:        extracted.Title,
		Category:     strings.ToLower(extracted.Category),
		Servings:     extracted.Servings,
		Ingredients:  extracted.Ingredients,
		Instructions: strings.Join(extracted.Steps, "\n"),
		PrepTime:     extracted.PrepTime,
		SourceURL:    url,
	}
	if err := i.recipes.Save(ctx, rec); err != nil {
		return nil, meta, fmt.Errorf("failed to save imported recipe: %w", err)
	}

	if i.ghostClient != nil {
		html := formatToHTML(extracted, url)
		if _, err := i.ghostClient.CreatePost(ctx, extracted.Title, html, true); err != nil {
			// The recipe is already stored locally; publishing is best effort.
			return &rec, meta, fmt.Errorf("recipe saved but failed to publish to ghost: %w", err)
		}
	}

	return &rec, meta, nil
}

func (i *Importer) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

func formatToHTML(r ExtractedRecipe, sourceURL string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p><i>Imported from: <a href=\"%s\">%s</a></i></p>", sourceURL, sourceURL))

	sb.WriteString("<h2>Ingredients</h2><ul>")
	for _, ing := range r.Ingredients {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", ing))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Instructions</h2><ol>")
	for _, step := range r.Steps {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", step))
	}
	sb.WriteString("</ol>")

	sb.WriteString("<hr>")
	sb.WriteString(fmt.Sprintf("<p><strong>Prep Time:</strong> %s | <strong>Servings:</strong> %d</p>", r.PrepTime, r.Servings))

	return sb.String()
}
