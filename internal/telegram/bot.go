// Package telegram exposes the planner over a Telegram bot: plan the week,
// fetch the grocery list, peek at the pantry, clip recipes by URL.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meal-budget-planner/internal/app"
	"meal-budget-planner/internal/config"
	"meal-budget-planner/internal/shopping"
)

// Bot wraps the Telegram API and the application operations.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and, when a webhook URL is configured,
// registers it. Without a webhook URL the bot runs in long-polling mode.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	if cfg.TelegramWebhookURL != "" {
		wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
		resp, err := api.Request(wh)
		if err != nil {
			return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
		}
		log.Printf("Webhook set response: %s", resp.Description)
	}

	return &Bot{api: api, app: application, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Poll consumes updates in long-polling mode. Blocks until the update
// channel closes.
func (b *Bot) Poll() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil {
			continue
		}
		if !b.allowed(update.Message) {
			continue
		}
		go b.processMessage(update.Message)
	}
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}
	if !b.allowed(update.Message) {
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) allowed(msg *tgbotapi.Message) bool {
	if b.cfg.TelegramAllowUserID == 0 || msg.From.ID == b.cfg.TelegramAllowUserID {
		return true
	}
	log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", msg.From.ID, msg.From.UserName)
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	// Bare URLs clip like /import does.
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		b.handleImport(msg, text)
		return
	}

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/plan":
		b.handlePlan(msg)
	case "/grocery":
		b.handleGrocery(msg)
	case "/pantry":
		b.handlePantry(msg, arg)
	case "/discover":
		b.handleDiscover(msg, arg)
	case "/import":
		b.handleImport(msg, arg)
	case "/usage":
		b.handleUsage(msg)
	default:
		b.send(msg.Chat.ID, "🤖 Commands:\n/plan — plan this week\n/grocery — grocery list for the planned week\n/pantry — what's on hand\n/pantry add 2 cups rice — stock the pantry\n/pantry remove rice — use something up\n/discover <craving> — find similar recipes\n/import <url> — clip a recipe\n/usage — token usage & health")
	}
}

func splitCommand(text string) (string, string) {
	parts := strings.SplitN(text, " ", 2)
	cmd := parts[0]
	// Strip the @botname suffix Telegram appends in groups.
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	if len(parts) == 2 {
		return cmd, strings.TrimSpace(parts[1])
	}
	return cmd, ""
}

func (b *Bot) handlePlan(msg *tgbotapi.Message) {
	working := b.sendAndKeep(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Scoring recipes and filling the week)")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	plan, err := b.app.PlanWeek(ctx, time.Now(), nil)
	if err != nil {
		b.editError(msg.Chat.ID, working, "Error planning the week", err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Week of %s*\n", plan.WeekStart.Format("Jan 2")))
	sb.WriteString(fmt.Sprintf("Budget $%.2f, planned $%.2f\n\n", plan.Budget, plan.Spent))
	for _, day := range plan.Days {
		switch {
		case day.Unmet:
			sb.WriteString(fmt.Sprintf("*%s*: _nothing affordable_\n", day.Day))
		case day.RecipeTitle != "":
			sb.WriteString(fmt.Sprintf("*%s*: %s ($%.2f)\n", day.Day, day.RecipeTitle, day.Cost))
		default:
			sb.WriteString(fmt.Sprintf("*%s*: leftovers\n", day.Day))
		}
	}
	if plan.Notes != "" {
		sb.WriteString(fmt.Sprintf("\n_%s_\n", plan.Notes))
	}
	for _, w := range plan.Warnings {
		sb.WriteString(fmt.Sprintf("\n⚠️ %s", w))
	}

	b.edit(msg.Chat.ID, working, sb.String())
}

func (b *Bot) handleGrocery(msg *tgbotapi.Message) {
	working := b.sendAndKeep(msg.Chat.ID, "🛒 *Building your grocery list...*")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	list, err := b.app.GroceryList(ctx, time.Now())
	if err != nil {
		b.editError(msg.Chat.ID, working, "Error building the grocery list", err)
		return
	}

	b.edit(msg.Chat.ID, working, shopping.FormatText(*list))
}

func (b *Bot) handlePantry(msg *tgbotapi.Message, arg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if action, rest := splitPantryArg(arg); action != "" {
		switch action {
		case "add":
			item, err := b.app.AddPantryItem(ctx, rest, false)
			if err != nil {
				b.send(msg.Chat.ID, fmt.Sprintf("❌ Couldn't add that: %v", err))
				return
			}
			b.send(msg.Chat.ID, fmt.Sprintf("🧺 Added *%s* to the pantry.", item.Name))
		case "remove":
			item, err := b.app.RemovePantryItem(ctx, rest)
			if err != nil {
				b.send(msg.Chat.ID, fmt.Sprintf("❌ Couldn't remove that: %v", err))
				return
			}
			b.send(msg.Chat.ID, fmt.Sprintf("🧺 Removed *%s* from the pantry.", item.Name))
		default:
			b.send(msg.Chat.ID, "Usage: /pantry, /pantry add 2 cups rice, or /pantry remove rice")
		}
		return
	}

	items, err := b.app.PantryRepo().List(ctx)
	if err != nil {
		b.send(msg.Chat.ID, fmt.Sprintf("❌ Error listing the pantry: %v", err))
		return
	}
	if len(items) == 0 {
		b.send(msg.Chat.ID, "🧺 The pantry is empty.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🧺 *Pantry*\n\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s", item.Name))
		if item.Quantity > 0 {
			sb.WriteString(fmt.Sprintf(" — %g %s", item.Quantity, item.Unit))
		}
		if item.MustUse {
			sb.WriteString(" ❗use soon")
		}
		sb.WriteString("\n")
	}
	b.send(msg.Chat.ID, sb.String())
}

// splitPantryArg separates the pantry action from its argument. An empty
// action means "just list".
func splitPantryArg(arg string) (string, string) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", ""
	}
	parts := strings.SplitN(arg, " ", 2)
	rest := ""
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return parts[0], rest
}

func (b *Bot) handleDiscover(msg *tgbotapi.Message, query string) {
	if query == "" {
		b.send(msg.Chat.ID, "Usage: /discover something cozy with chicken")
		return
	}

	working := b.sendAndKeep(msg.Chat.ID, "🔎 *Searching your recipes...*")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	recipes, err := b.app.Discover(ctx, query, 5)
	if err != nil {
		b.editError(msg.Chat.ID, working, "Error searching", err)
		return
	}
	if len(recipes) == 0 {
		b.edit(msg.Chat.ID, working, "No similar recipes found. Ingest or import some first.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔎 *Closest matches for* _%s_\n\n", query))
	for _, rec := range recipes {
		sb.WriteString(fmt.Sprintf("• *%s*", rec.Title))
		if rec.CostPerServing != nil {
			sb.WriteString(fmt.Sprintf(" ($%.2f/serving)", *rec.CostPerServing))
		}
		sb.WriteString("\n")
	}
	b.edit(msg.Chat.ID, working, sb.String())
}

func (b *Bot) handleImport(msg *tgbotapi.Message, url string) {
	if url == "" {
		b.send(msg.Chat.ID, "Usage: /import https://example.com/recipe")
		return
	}

	working := b.sendAndKeep(msg.Chat.ID, "✂️ *Clipping recipe...*")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, err := b.app.Import(ctx, url)
	if err != nil {
		if rec != nil {
			// Saved locally, only the blog publish failed.
			b.edit(msg.Chat.ID, working, fmt.Sprintf("✅ *%s* saved locally, but publishing failed:\n%v", rec.Title, err))
			return
		}
		b.editError(msg.Chat.ID, working, "Error clipping recipe", err)
		return
	}

	b.edit(msg.Chat.ID, working, fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\nRun /plan to work it into the week.", rec.Title))
}

func (b *Bot) handleUsage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	daily, health, err := b.app.Usage(ctx, 7)
	if err != nil {
		b.send(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(daily) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range daily {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.send(msg.Chat.ID, sb.String())
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

// sendAndKeep posts a status message and returns its id so it can be edited
// in place once the slow operation finishes.
func (b *Bot) sendAndKeep(chatID int64, text string) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	if messageID == 0 {
		b.send(chatID, text)
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) editError(chatID int64, messageID int, heading string, err error) {
	log.Printf("%s: %v", heading, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.edit(chatID, messageID, fmt.Sprintf("❌ *%s:*\n```\n%v\n```", heading, safeErr))
}
