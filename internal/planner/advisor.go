package planner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"meal-budget-planner/internal/llm"
	"meal-budget-planner/internal/shared"
)

//go:embed advisor_prompt.md
var advisorPrompt string

type advisorPromptData struct {
	Budget   float64
	Spent    float64
	Days     []DaySlot
	Warnings []string
}

// AdvisorResult carries the advisor's note alongside token accounting.
type AdvisorResult struct {
	Notes string
	Meta  shared.AgentMeta
}

// AdviseWeek asks the LLM for a short prep-and-shopping note on a finished
// plan. The plan is already final; the advisor only annotates it, so a
// failure here never invalidates the selection.
func AdviseWeek(ctx context.Context, textGen llm.TextGenerator, plan WeekPlan) (AdvisorResult, error) {
	start := time.Now()
	prompt, err := buildAdvisorPrompt(advisorPromptData{
		Budget:   plan.Budget,
		Spent:    plan.Spent,
		Days:     plan.Days,
		Warnings: plan.Warnings,
	})
	if err != nil {
		return AdvisorResult{}, err
	}

	resp, err := textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return AdvisorResult{}, fmt.Errorf("failed to get advisor response: %w", err)
	}

	return AdvisorResult{
		Notes: resp.Content,
		Meta: shared.AgentMeta{
			AgentName: "Advisor",
			Usage:     resp.Usage,
			Latency:   time.Since(start),
		},
	}, nil
}

func buildAdvisorPrompt(data advisorPromptData) (string, error) {
	tmpl, err := template.New("advisor").Parse(advisorPrompt)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build advisor prompt: %w", err)
	}
	return buf.String(), nil
}
