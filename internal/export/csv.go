// Package export renders the final candidate ordering for consumption
// outside the pipeline.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/RahulMirji/Resume-Screener/internal/screening"
)

// Keep header order stable; downstream sheets key on column position.
var csvHeader = []string{
	"Rank",
	"Name",
	"Source",
	"Overall Score",
	"Skills Score",
	"Experience Score",
	"Education Score",
	"Matched Skills",
	"Skill Gaps",
	"Strengths",
	"Explanation",
}

// WriteCSV writes a metadata comment block followed by one row per
// candidate, in rank order.
func WriteCSV(w io.Writer, job *screening.Job, candidates []*screening.Candidate, now time.Time) error {
	title := ""
	if job != nil {
		title = job.Title
	}

	metadata := fmt.Sprintf("# Resume Screening Results\n# Generated: %s\n# Position: %s\n# Total Candidates: %d\n#\n",
		now.Format(time.RFC3339), title, len(candidates))
	if _, err := io.WriteString(w, metadata); err != nil {
		return fmt.Errorf("write csv metadata: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, candidate := range candidates {
		if err := cw.Write(toRow(candidate)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func toRow(c *screening.Candidate) []string {
	return []string{
		strconv.Itoa(c.Rank),
		c.Resume.Name,
		c.Resume.Source,
		formatPercent(c.Match.OverallScore()),
		formatPercent(c.Match.SkillScore),
		formatPercent(c.Match.ExperienceScore),
		formatPercent(c.Match.EducationScore),
		strings.Join(c.Match.MatchedSkills, ", "),
		strings.Join(c.Match.SkillGaps, ", "),
		strings.Join(c.Match.Strengths, "; "),
		c.Explanation,
	}
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
