package screening

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Batch limits carried over from the upstream product. The pipeline refuses
// batches outside these bounds before any model call is made.
const (
	MaxResumes              = 50
	MinJobDescriptionLength = 1
	MaxJobDescriptionLength = 10000

	scoreEpsilon = 1e-9
)

// ValidateResume checks the resume record invariants: non-empty name,
// non-negative experience, known education level and a duplicate-free skill
// list.
func ValidateResume(r *Resume) error {
	if r == nil {
		return &ValidationError{Field: "resume", Reason: "record is nil"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "resume.name", Reason: "must not be empty"}
	}
	if r.ExperienceYears < 0 {
		return &ValidationError{Field: "resume.experience_years", Reason: fmt.Sprintf("must be non-negative, got %v", r.ExperienceYears)}
	}
	if r.Education < EducationNone || r.Education > EducationDoctorate {
		return &ValidationError{Field: "resume.education", Reason: fmt.Sprintf("unknown level %d", r.Education)}
	}

	seen := make(map[string]struct{}, len(r.Skills))
	for _, skill := range r.Skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if _, ok := seen[key]; ok {
			return &ValidationError{Field: "resume.skills", Reason: fmt.Sprintf("duplicate skill %q", skill)}
		}
		seen[key] = struct{}{}
	}

	return nil
}

// ValidateJob checks the job record invariants.
func ValidateJob(j *Job) error {
	if j == nil {
		return &ValidationError{Field: "job", Reason: "record is nil"}
	}
	if j.MinExperienceYears < 0 {
		return &ValidationError{Field: "job.min_experience_years", Reason: fmt.Sprintf("must be non-negative, got %v", j.MinExperienceYears)}
	}
	if j.MinEducation < EducationNone || j.MinEducation > EducationDoctorate {
		return &ValidationError{Field: "job.min_education", Reason: fmt.Sprintf("unknown level %d", j.MinEducation)}
	}
	return nil
}

// ValidateMatch checks that every sub-score stays within [0,1]. The overall
// score is derived and needs no check of its own.
func ValidateMatch(m *Match) error {
	if m == nil {
		return &ValidationError{Field: "match", Reason: "record is nil"}
	}
	scores := map[string]float64{
		"match.skill_score":      m.SkillScore,
		"match.experience_score": m.ExperienceScore,
		"match.education_score":  m.EducationScore,
	}
	for field, score := range scores {
		if score < -scoreEpsilon || score > 1+scoreEpsilon {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("must be in [0,1], got %v", score)}
		}
	}
	return nil
}

// ValidateJobDescription bounds the job description input before it reaches
// the analyzer stage.
func ValidateJobDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	length := utf8.RuneCountInString(trimmed)
	if length < MinJobDescriptionLength {
		return &ValidationError{Field: "job_description", Reason: "must not be empty"}
	}
	if length > MaxJobDescriptionLength {
		return &ValidationError{Field: "job_description", Reason: fmt.Sprintf("too long: %d characters, limit is %d", length, MaxJobDescriptionLength)}
	}
	return nil
}

// ValidateBatchSize bounds the number of resumes processed in one run.
func ValidateBatchSize(count int) error {
	if count < 1 {
		return &ValidationError{Field: "resumes", Reason: "at least one resume is required"}
	}
	if count > MaxResumes {
		return &ValidationError{Field: "resumes", Reason: fmt.Sprintf("too many resumes: %d, limit is %d", count, MaxResumes)}
	}
	return nil
}
