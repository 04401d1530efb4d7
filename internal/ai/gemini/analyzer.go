package gemini

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
	"github.com/RahulMirji/Resume-Screener/internal/util"
)

const jobSystemPrompt = "You are a precise requirement extraction assistant. " +
	"Extract only requirements explicitly mentioned in the job description."

const jobPromptTemplate = `Extract structured requirements from this job description. Return ONLY valid JSON with this exact structure:
{
    "title": "Job Title",
    "required_skills": ["skill1", "skill2"],
    "preferred_skills": ["skill3", "skill4"],
    "min_experience_years": 3,
    "minimum_education": "one of: none, high_school, bachelors, masters, doctorate"
}

Job description:
%s

Return ONLY the JSON, no other text.`

// Analyzer implements ai.JobAnalyzer on top of the Gemini generator.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Analyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// AnalyzeJob asks the model for the structured requirement JSON and decodes it.
func (a *Analyzer) AnalyzeJob(ctx context.Context, description string) (*ai.JobExtraction, error) {
	prompt := fmt.Sprintf(jobPromptTemplate, description)

	a.logger.Debug("job analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, jobSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("job analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, a.maxLogLen)),
	)

	var extraction ai.JobExtraction
	if err := decodeResponse(raw, &extraction); err != nil {
		return nil, err
	}

	return &extraction, nil
}
