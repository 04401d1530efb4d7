package screening

import (
	"fmt"
	"strings"
)

// Matcher computes the deterministic similarity scores between one resume
// and the job. It is a pure function of its inputs and never calls the
// model, so repeated runs over the same records produce identical scores.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match scores the resume against the job. submissionIndex is the resume's
// position in the original batch and is carried through for the ranking
// tie-break. The inputs must already satisfy their record invariants.
func (m *Matcher) Match(resume *Resume, job *Job, submissionIndex int) (*Match, error) {
	if err := ValidateResume(resume); err != nil {
		return nil, err
	}
	if err := ValidateJob(job); err != nil {
		return nil, err
	}

	matched, gaps := splitSkills(resume.Skills, job.RequiredSkills)

	match := &Match{
		Resume:          resume,
		Job:             job,
		SkillScore:      skillScore(matched, job.RequiredSkills),
		ExperienceScore: experienceScore(resume.ExperienceYears, job.MinExperienceYears),
		EducationScore:  educationScore(resume.Education, job.MinEducation),
		MatchedSkills:   matched,
		SkillGaps:       gaps,
		SubmissionIndex: submissionIndex,
	}
	match.Strengths = strengths(resume, job, match)

	if err := ValidateMatch(match); err != nil {
		return nil, err
	}

	return match, nil
}

// skillScore is the fraction of required skills present on the resume.
// An empty requirement list is a vacuous match.
func skillScore(matched, required []string) float64 {
	if len(required) == 0 {
		return 1.0
	}
	return float64(len(matched)) / float64(len(required))
}

// experienceScore is the candidate's experience relative to the requirement,
// clamped to [0,1]. A zero requirement is always satisfied.
func experienceScore(years, minYears float64) float64 {
	if minYears == 0 {
		return 1.0
	}
	score := years / minYears
	if score > 1 {
		return 1.0
	}
	if score < 0 {
		return 0
	}
	return score
}

// educationScore gives full credit when the candidate meets the required
// level and proportional partial credit below it. A requirement of
// EducationNone is vacuously satisfied, so the division is always guarded.
func educationScore(level, minLevel EducationLevel) float64 {
	if level >= minLevel {
		return 1.0
	}
	if level < EducationNone {
		return 0
	}
	return float64(level) / float64(minLevel)
}

// splitSkills partitions the required skills into matched and missing,
// comparing case-insensitively. Matched skills keep the resume's casing,
// gaps keep the job's.
func splitSkills(resumeSkills, requiredSkills []string) (matched, gaps []string) {
	byKey := make(map[string]string, len(resumeSkills))
	for _, skill := range resumeSkills {
		byKey[strings.ToLower(strings.TrimSpace(skill))] = skill
	}

	for _, required := range requiredSkills {
		if original, ok := byKey[strings.ToLower(strings.TrimSpace(required))]; ok {
			matched = append(matched, original)
		} else {
			gaps = append(gaps, required)
		}
	}
	return matched, gaps
}

// strengths summarizes where the candidate clearly meets or exceeds the
// requirements. Derived from the deterministic fields only.
func strengths(resume *Resume, job *Job, match *Match) []string {
	var out []string

	if len(match.MatchedSkills) > 0 && len(job.RequiredSkills) > 0 {
		out = append(out, fmt.Sprintf("has %d of %d required skills", len(match.MatchedSkills), len(job.RequiredSkills)))
	}

	if job.MinExperienceYears > 0 && resume.ExperienceYears >= job.MinExperienceYears {
		out = append(out, fmt.Sprintf("meets the experience requirement (%.1f years)", resume.ExperienceYears))
	}

	if preferred, _ := splitSkills(resume.Skills, job.PreferredSkills); len(preferred) > 0 {
		out = append(out, fmt.Sprintf("has %d preferred skills", len(preferred)))
	}

	if job.MinEducation > EducationNone && resume.Education > job.MinEducation {
		out = append(out, fmt.Sprintf("education (%s) exceeds the requirement (%s)", resume.Education, job.MinEducation))
	}

	return out
}
