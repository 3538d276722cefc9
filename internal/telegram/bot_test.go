package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meal-budget-planner/internal/config"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input string
		cmd   string
		arg   string
	}{
		{"/plan", "/plan", ""},
		{"/discover something cozy with chicken", "/discover", "something cozy with chicken"},
		{"/import https://example.com/recipe", "/import", "https://example.com/recipe"},
		{"/plan@mealbot", "/plan", ""},
		{"/discover@mealbot beef stew", "/discover", "beef stew"},
	}

	for _, tt := range tests {
		cmd, arg := splitCommand(tt.input)
		if cmd != tt.cmd {
			t.Errorf("splitCommand(%q) cmd = %q, want %q", tt.input, cmd, tt.cmd)
		}
		if arg != tt.arg {
			t.Errorf("splitCommand(%q) arg = %q, want %q", tt.input, arg, tt.arg)
		}
	}
}

func TestSplitPantryArg(t *testing.T) {
	tests := []struct {
		input  string
		action string
		rest   string
	}{
		{"", "", ""},
		{"add 2 cups rice", "add", "2 cups rice"},
		{"remove rice", "remove", "rice"},
		{"add", "add", ""},
		{"  add   2 onions", "add", "2 onions"},
	}

	for _, tt := range tests {
		action, rest := splitPantryArg(tt.input)
		if action != tt.action {
			t.Errorf("splitPantryArg(%q) action = %q, want %q", tt.input, action, tt.action)
		}
		if rest != tt.rest {
			t.Errorf("splitPantryArg(%q) rest = %q, want %q", tt.input, rest, tt.rest)
		}
	}
}

func TestAllowed(t *testing.T) {
	msgFrom := func(id int64) *tgbotapi.Message {
		return &tgbotapi.Message{From: &tgbotapi.User{ID: id, UserName: "tester"}}
	}

	t.Run("NoAllowlistAdmitsEveryone", func(t *testing.T) {
		b := &Bot{cfg: &config.Config{}}
		if !b.allowed(msgFrom(42)) {
			t.Error("Expected any user to be allowed when no allowlist is set")
		}
	})

	t.Run("MatchingUser", func(t *testing.T) {
		b := &Bot{cfg: &config.Config{TelegramAllowUserID: 42}}
		if !b.allowed(msgFrom(42)) {
			t.Error("Expected the allow-listed user to be admitted")
		}
	})

	t.Run("OtherUser", func(t *testing.T) {
		b := &Bot{cfg: &config.Config{TelegramAllowUserID: 42}}
		if b.allowed(msgFrom(43)) {
			t.Error("Expected other users to be rejected")
		}
	})
}
