package screening

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
)

// UnknownPosition is the placeholder title used when the model cannot find
// one in the job description.
const UnknownPosition = "Unknown Position"

// Analyzer turns the job description into the single Job record for the
// run. An analyzer failure is fatal: no candidate can be matched without
// the Job record.
type Analyzer struct {
	analyzer ai.JobAnalyzer
	logger   *zap.Logger
}

func NewAnalyzer(analyzer ai.JobAnalyzer, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{analyzer: analyzer, logger: logger}
}

// Analyze produces the Job record from the description text.
func (a *Analyzer) Analyze(ctx context.Context, description string) (*Job, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &ParseError{Source: "job description", Err: ErrEmptyText}
	}

	extraction, err := a.analyzer.AnalyzeJob(ctx, description)
	if err != nil {
		return nil, &ParseError{Source: "job description", Err: err}
	}

	job := buildJob(extraction)
	if err := ValidateJob(job); err != nil {
		return nil, &ParseError{Source: "job description", Err: err}
	}

	a.logger.Debug("job description analyzed",
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.Float64("min_experience_years", job.MinExperienceYears),
		zap.String("min_education", job.MinEducation.String()),
	)

	return job, nil
}

func buildJob(extraction *ai.JobExtraction) *Job {
	if extraction == nil {
		extraction = &ai.JobExtraction{}
	}

	title := strings.TrimSpace(extraction.Title)
	if title == "" {
		title = UnknownPosition
	}

	minYears := extraction.MinExperienceYears
	if minYears < 0 {
		minYears = 0
	}

	return &Job{
		Title:              title,
		RequiredSkills:     dedupeSkills(extraction.RequiredSkills),
		PreferredSkills:    dedupeSkills(extraction.PreferredSkills),
		MinExperienceYears: minYears,
		MinEducation:       ParseEducationLevel(extraction.MinimumEducation),
	}
}
