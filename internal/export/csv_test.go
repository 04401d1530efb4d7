package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/RahulMirji/Resume-Screener/internal/screening"
)

func sampleCandidates() (*screening.Job, []*screening.Candidate) {
	job := &screening.Job{
		Title:              "Backend Engineer",
		RequiredSkills:     []string{"Go", "SQL"},
		MinExperienceYears: 2,
		MinEducation:       screening.EducationBachelors,
	}

	alice := &screening.Resume{Name: "Alice Smith", Source: "alice.pdf", Skills: []string{"Go", "SQL"}, ExperienceYears: 4, Education: screening.EducationMasters}
	bob := &screening.Resume{Name: "Bob Jones", Source: "bob.pdf", Skills: []string{"Go"}, ExperienceYears: 1, Education: screening.EducationBachelors}

	candidates := []*screening.Candidate{
		{
			Rank:   1,
			Resume: alice,
			Match: &screening.Match{
				Resume:          alice,
				Job:             job,
				SkillScore:      1,
				ExperienceScore: 1,
				EducationScore:  1,
				MatchedSkills:   []string{"Go", "SQL"},
			},
			Explanation: "Complete match.",
		},
		{
			Rank:   2,
			Resume: bob,
			Match: &screening.Match{
				Resume:          bob,
				Job:             job,
				SkillScore:      0.5,
				ExperienceScore: 0.5,
				EducationScore:  1,
				MatchedSkills:   []string{"Go"},
				SkillGaps:       []string{"SQL"},
				SubmissionIndex: 1,
			},
			Explanation: "Partial match, missing SQL.",
		},
	}

	return job, candidates
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	job, candidates := sampleCandidates()
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, job, candidates, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	for _, fragment := range []string{
		"# Resume Screening Results",
		"# Generated: 2026-08-25T12:00:00Z",
		"# Position: Backend Engineer",
		"# Total Candidates: 2",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected metadata %q in output:\n%s", fragment, out)
		}
	}

	// The comment block ends before the csv body starts.
	body := out[strings.Index(out, "#\n")+2:]

	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv body: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Rank" || records[0][len(records[0])-1] != "Explanation" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	alice := records[1]
	if alice[0] != "1" || alice[1] != "Alice Smith" || alice[3] != "100.0%" {
		t.Fatalf("unexpected first row: %v", alice)
	}

	bob := records[2]
	if bob[0] != "2" || bob[8] != "SQL" {
		t.Fatalf("unexpected second row: %v", bob)
	}

	// 0.4*0.5 + 0.4*0.5 + 0.2*1.0 = 0.6
	if bob[3] != "60.0%" {
		t.Fatalf("expected derived overall score 60.0%%, got %q", bob[3])
	}
}

func TestWriteCSVEmptyBatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, nil, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "# Total Candidates: 0") {
		t.Fatalf("expected zero-candidate metadata, got:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	job, candidates := sampleCandidates()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, job, candidates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, fragment := range []string{
		`"position": "Backend Engineer"`,
		`"name": "Alice Smith"`,
		`"rank": 2`,
		`"overall_score": 1`,
		`"skill_score": 0.5`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}
