package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
)

const explanationSystemPrompt = "You are a recruiting assistant. " +
	"Write professional, concise candidate summaries grounded in the provided scores."

// Explainer implements ai.ExplanationWriter on top of the Gemini generator.
// It only polishes prose; the caller keeps a local fallback.
type Explainer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewExplainer(generator contentGenerator, logger *zap.Logger) *Explainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explainer{generator: generator, logger: logger}
}

// WriteExplanation asks the model for a short explanation of the ranking.
func (e *Explainer) WriteExplanation(ctx context.Context, req *ai.ExplanationRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("explanation request is required")
	}

	prompt := fmt.Sprintf(`Generate a brief 2-3 sentence explanation for why this candidate is ranked #%d.

Candidate: %s
Overall Score: %.1f%%
Skills Score: %.1f%%
Experience Score: %.1f%%
Education Score: %.1f%%
Matched Skills: %s
Missing Skills: %s
Strengths: %s

Write a professional, concise explanation. Return ONLY the explanation text.`,
		req.Rank,
		req.Name,
		req.OverallScore*100,
		req.SkillScore*100,
		req.ExperienceScore*100,
		req.EducationScore*100,
		joinOrNone(req.MatchedSkills),
		joinOrNone(req.MissingSkills),
		joinOrNone(req.Strengths),
	)

	raw, err := e.generator.GenerateContent(ctx, explanationSystemPrompt, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(raw), nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
