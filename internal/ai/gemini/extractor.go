package gemini

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
	"github.com/RahulMirji/Resume-Screener/internal/util"
)

const defaultMaxLogLength = 200

// contentGenerator abstracts the Gemini client for testing.
type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

const resumeSystemPrompt = "You are a precise resume parsing assistant. " +
	"Extract only information explicitly present in the resume text."

const resumePromptTemplate = `Extract structured information from this resume text. Return ONLY valid JSON with this exact structure:
{
    "name": "Full Name",
    "email": "email@example.com or null",
    "phone": "phone number or null",
    "skills": ["skill1", "skill2"],
    "experience": [
        {
            "title": "Job Title",
            "company": "Company Name",
            "duration_months": 24,
            "description": "Brief description"
        }
    ],
    "education": [
        {
            "degree": "Degree Name",
            "institution": "University Name",
            "year": 2020,
            "field": "Field of Study or null"
        }
    ]
}

Resume text:
%s

Return ONLY the JSON, no other text.`

// Extractor implements ai.ResumeExtractor on top of the Gemini generator.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// ExtractResume asks the model for the structured resume JSON and decodes
// it. A malformed response is returned as an error for the parser stage to
// classify.
func (e *Extractor) ExtractResume(ctx context.Context, text string) (*ai.ResumeExtraction, error) {
	prompt := fmt.Sprintf(resumePromptTemplate, text)

	e.logger.Debug("resume extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, resumeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("resume extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
	)

	var extraction ai.ResumeExtraction
	if err := decodeResponse(raw, &extraction); err != nil {
		return nil, err
	}

	return &extraction, nil
}
