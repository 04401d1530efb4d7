package screening

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
)

// Ranker orders the match records and assigns dense 1-based ranks. The
// order is a pure function of the deterministic scores; the optional
// explanation writer only affects prose, never position.
type Ranker struct {
	writer ai.ExplanationWriter
	logger *zap.Logger
}

// NewRanker creates a ranker. writer may be nil, in which case every
// explanation is built locally from the match record.
func NewRanker(writer ai.ExplanationWriter, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{writer: writer, logger: logger}
}

// Rank sorts the matches by overall score descending, skill score
// descending, then submission order, and attaches rank and explanation.
func (r *Ranker) Rank(ctx context.Context, matches []*Match) ([]*Candidate, error) {
	if len(matches) == 0 {
		return nil, &RankingError{Err: ErrNoCandidates}
	}

	ordered := make([]*Match, len(matches))
	copy(ordered, matches)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.OverallScore() != b.OverallScore() {
			return a.OverallScore() > b.OverallScore()
		}
		if a.SkillScore != b.SkillScore {
			return a.SkillScore > b.SkillScore
		}
		return a.SubmissionIndex < b.SubmissionIndex
	})

	candidates := make([]*Candidate, 0, len(ordered))
	for i, match := range ordered {
		rank := i + 1
		candidates = append(candidates, &Candidate{
			Rank:        rank,
			Resume:      match.Resume,
			Match:       match,
			Explanation: r.explain(ctx, match, rank),
		})
	}

	return candidates, nil
}

// explain asks the writer for prose and falls back to the local summary
// when the writer is missing or fails.
func (r *Ranker) explain(ctx context.Context, match *Match, rank int) string {
	local := localExplanation(match, rank)
	if r.writer == nil {
		return local
	}

	prose, err := r.writer.WriteExplanation(ctx, &ai.ExplanationRequest{
		Name:            match.Resume.Name,
		Rank:            rank,
		OverallScore:    match.OverallScore(),
		SkillScore:      match.SkillScore,
		ExperienceScore: match.ExperienceScore,
		EducationScore:  match.EducationScore,
		MatchedSkills:   match.MatchedSkills,
		MissingSkills:   match.SkillGaps,
		Strengths:       match.Strengths,
	})
	if err != nil || strings.TrimSpace(prose) == "" {
		r.logger.Warn("explanation writer failed, using local summary",
			zap.String("candidate", match.Resume.Name),
			zap.Int("rank", rank),
			zap.Error(err),
		)
		return local
	}

	return strings.TrimSpace(prose)
}

// localExplanation summarizes the match from its deterministic fields.
func localExplanation(match *Match, rank int) string {
	parts := []string{fmt.Sprintf("Ranked #%d with a %.1f%% match.", rank, match.OverallScore()*100)}

	if len(match.MatchedSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Matches %d required skills (%s).", len(match.MatchedSkills), strings.Join(match.MatchedSkills, ", ")))
	}
	if len(match.SkillGaps) > 0 {
		parts = append(parts, fmt.Sprintf("Missing %d required skills (%s).", len(match.SkillGaps), strings.Join(match.SkillGaps, ", ")))
	}

	if gap := match.Job.MinExperienceYears - match.Resume.ExperienceYears; gap > 0 {
		parts = append(parts, fmt.Sprintf("%.1f years short of the experience requirement.", gap))
	}
	if match.Resume.Education < match.Job.MinEducation {
		parts = append(parts, fmt.Sprintf("Education (%s) is below the required %s.", match.Resume.Education, match.Job.MinEducation))
	}

	if len(match.Strengths) > 0 {
		parts = append(parts, fmt.Sprintf("Strengths: %s.", strings.Join(match.Strengths, "; ")))
	}

	return strings.Join(parts, " ")
}
