package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/RahulMirji/Resume-Screener/internal/screening"
)

type jsonCandidate struct {
	Rank            int      `json:"rank"`
	Name            string   `json:"name"`
	Source          string   `json:"source"`
	OverallScore    float64  `json:"overall_score"`
	SkillScore      float64  `json:"skill_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	MatchedSkills   []string `json:"matched_skills,omitempty"`
	SkillGaps       []string `json:"skill_gaps,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
}

type jsonReport struct {
	Position   string          `json:"position"`
	Candidates []jsonCandidate `json:"candidates"`
}

// WriteJSON writes the candidate list as an indented JSON report.
func WriteJSON(w io.Writer, job *screening.Job, candidates []*screening.Candidate) error {
	report := jsonReport{Candidates: make([]jsonCandidate, 0, len(candidates))}
	if job != nil {
		report.Position = job.Title
	}

	for _, c := range candidates {
		report.Candidates = append(report.Candidates, jsonCandidate{
			Rank:            c.Rank,
			Name:            c.Resume.Name,
			Source:          c.Resume.Source,
			OverallScore:    c.Match.OverallScore(),
			SkillScore:      c.Match.SkillScore,
			ExperienceScore: c.Match.ExperienceScore,
			EducationScore:  c.Match.EducationScore,
			MatchedSkills:   c.Match.MatchedSkills,
			SkillGaps:       c.Match.SkillGaps,
			Strengths:       c.Match.Strengths,
			Explanation:     c.Explanation,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// DumpToTmpFile writes the JSON report to a temporary file and returns its
// name.
func DumpToTmpFile(job *screening.Job, candidates []*screening.Candidate) (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteJSON(file, job, candidates); err != nil {
		return "", err
	}
	return file.Name(), nil
}
