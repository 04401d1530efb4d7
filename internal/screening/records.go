package screening

import (
	"strings"
)

// EducationLevel is the ordinal education ranking used for scoring.
// Higher values satisfy requirements expressed with lower ones.
type EducationLevel int

const (
	EducationNone EducationLevel = iota
	EducationHighSchool
	EducationBachelors
	EducationMasters
	EducationDoctorate
)

var educationNames = map[EducationLevel]string{
	EducationNone:       "none",
	EducationHighSchool: "high_school",
	EducationBachelors:  "bachelors",
	EducationMasters:    "masters",
	EducationDoctorate:  "doctorate",
}

func (l EducationLevel) String() string {
	if name, ok := educationNames[l]; ok {
		return name
	}
	return "none"
}

// ParseEducationLevel maps free-form degree descriptions to a level. Model
// output is not normalized, so matching is keyword based. Unknown input maps
// to EducationNone.
func ParseEducationLevel(s string) EducationLevel {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return EducationNone
	}

	for level, name := range educationNames {
		if name == normalized {
			return level
		}
	}

	contains := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("phd", "ph.d", "doctor", "dsc", "d.sc"):
		return EducationDoctorate
	case contains("master", "msc", "m.sc", "m.s.", "mba", "m.eng", "meng", "ma "):
		return EducationMasters
	case contains("bachelor", "bsc", "b.sc", "b.s.", "b.tech", "btech", "b.eng", "beng", "ba ", "undergraduate"):
		return EducationBachelors
	case contains("high school", "highschool", "secondary", "diploma", "ged", "a-level"):
		return EducationHighSchool
	default:
		return EducationNone
	}
}

// Resume is the structured record the parser stage produces from one
// resume's extracted text. Immutable once created.
type Resume struct {
	// Name of the candidate, "Unknown" when extraction could not find one.
	Name string
	// Skills in resume order, deduplicated case-insensitively.
	Skills []string
	// ExperienceYears is the total professional experience, may be fractional.
	ExperienceYears float64
	// Education is the highest level found on the resume.
	Education EducationLevel
	// Source identifies where the resume came from, usually the filename.
	Source string

	Email string
	Phone string
}

// Job is the single structured record the analyzer stage produces from the
// job description. Immutable once created.
type Job struct {
	Title              string
	RequiredSkills     []string
	PreferredSkills    []string
	MinExperienceYears float64
	MinEducation       EducationLevel
}

// Match holds the deterministic sub-scores for one resume against the job.
// The overall score is always derived from the sub-scores, never stored, so
// the weighted-sum invariant cannot drift.
type Match struct {
	Resume *Resume
	Job    *Job

	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64

	MatchedSkills []string
	SkillGaps     []string
	Strengths     []string

	// SubmissionIndex is the zero-based position of the resume in the
	// original batch, used as the final ranking tie-break.
	SubmissionIndex int
}

// Score weights. Must sum to 1.
const (
	skillWeight      = 0.4
	experienceWeight = 0.4
	educationWeight  = 0.2
)

// OverallScore returns the weighted sum of the sub-scores, in [0,1].
func (m *Match) OverallScore() float64 {
	return skillWeight*m.SkillScore + experienceWeight*m.ExperienceScore + educationWeight*m.EducationScore
}

// Candidate is a ranked entry in the final ordering.
type Candidate struct {
	// Rank is the dense 1-based position in the total order.
	Rank        int
	Resume      *Resume
	Match       *Match
	Explanation string
}

// dedupeSkills removes case-insensitive duplicates while preserving order
// and original casing of the first occurrence.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
