package ai

import (
	"context"
)

// ExperienceEntry is one work experience item as reported by the model.
type ExperienceEntry struct {
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	DurationMonths float64 `json:"duration_months"`
	Description    string  `json:"description"`
}

// EducationEntry is one education item as reported by the model.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year"`
	Field       string `json:"field"`
}

// ResumeExtraction is the model's structured reading of one resume. Fields
// may be missing or loosely typed; the parser stage applies defaults and
// builds the immutable record.
type ResumeExtraction struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}

// JobExtraction is the model's structured reading of the job description.
type JobExtraction struct {
	Title              string   `json:"title"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	MinExperienceYears float64  `json:"min_experience_years"`
	MinimumEducation   string   `json:"minimum_education"`
}

// ExplanationRequest carries the deterministic ranking facts the writer may
// turn into prose. The ranking itself never depends on the writer's output.
type ExplanationRequest struct {
	Name            string
	Rank            int
	OverallScore    float64
	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64
	MatchedSkills   []string
	MissingSkills   []string
	Strengths       []string
}

// ResumeExtractor turns raw resume text into a structured extraction.
type ResumeExtractor interface {
	ExtractResume(ctx context.Context, text string) (*ResumeExtraction, error)
}

// JobAnalyzer turns the job description into a structured extraction.
type JobAnalyzer interface {
	AnalyzeJob(ctx context.Context, description string) (*JobExtraction, error)
}

// ExplanationWriter produces a natural-language ranking explanation.
type ExplanationWriter interface {
	WriteExplanation(ctx context.Context, req *ExplanationRequest) (string, error)
}
