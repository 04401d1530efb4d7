package screening

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
)

// UnknownCandidate is the placeholder name used when the model cannot find
// one on the resume.
const UnknownCandidate = "Unknown"

// Parser turns raw extracted resume text into a Resume record via the
// extractor collaborator. Missing or malformed fields are filled with
// defaults; only empty input or an unrecoverable extractor failure produce
// a ParseError, and that error is scoped to the one resume.
type Parser struct {
	extractor ai.ResumeExtractor
	timeout   time.Duration
	logger    *zap.Logger
}

func NewParser(extractor ai.ResumeExtractor, timeout time.Duration, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		extractor: extractor,
		timeout:   timeout,
		logger:    logger,
	}
}

// Parse produces the Resume record for one resume. source identifies the
// resume in errors and in the final report.
func (p *Parser) Parse(ctx context.Context, text, source string) (*Resume, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Source: source, Err: ErrEmptyText}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	extraction, err := p.extractor.ExtractResume(ctx, text)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	resume := buildResume(extraction, source)
	if err := ValidateResume(resume); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	p.logger.Debug("resume parsed",
		zap.String("source", source),
		zap.String("candidate", resume.Name),
		zap.Int("skills", len(resume.Skills)),
		zap.Float64("experience_years", resume.ExperienceYears),
		zap.String("education", resume.Education.String()),
	)

	return resume, nil
}

// buildResume converts the model extraction into the immutable record,
// filling defaults for anything missing or out of range.
func buildResume(extraction *ai.ResumeExtraction, source string) *Resume {
	if extraction == nil {
		extraction = &ai.ResumeExtraction{}
	}

	name := strings.TrimSpace(extraction.Name)
	if name == "" {
		name = UnknownCandidate
	}

	var totalMonths float64
	for _, entry := range extraction.Experience {
		if entry.DurationMonths > 0 {
			totalMonths += entry.DurationMonths
		}
	}

	highest := EducationNone
	for _, entry := range extraction.Education {
		if level := ParseEducationLevel(entry.Degree); level > highest {
			highest = level
		}
	}

	return &Resume{
		Name:            name,
		Skills:          dedupeSkills(extraction.Skills),
		ExperienceYears: totalMonths / 12,
		Education:       highest,
		Source:          source,
		Email:           strings.TrimSpace(extraction.Email),
		Phone:           strings.TrimSpace(extraction.Phone),
	}
}
