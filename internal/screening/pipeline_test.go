package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
)

type stubExtractor struct {
	mu      sync.Mutex
	byText  map[string]*ai.ResumeExtraction
	err     error
	calls   int
	inUse   int
	maxBusy int
}

func (s *stubExtractor) ExtractResume(_ context.Context, text string) (*ai.ResumeExtraction, error) {
	s.mu.Lock()
	s.calls++
	s.inUse++
	if s.inUse > s.maxBusy {
		s.maxBusy = s.inUse
	}
	s.mu.Unlock()

	time.Sleep(time.Millisecond)

	s.mu.Lock()
	s.inUse--
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if extraction, ok := s.byText[text]; ok {
		return extraction, nil
	}
	return &ai.ResumeExtraction{Name: "Candidate " + text, Skills: []string{text}}, nil
}

type stubAnalyzer struct {
	extraction *ai.JobExtraction
	err        error
}

func (s *stubAnalyzer) AnalyzeJob(_ context.Context, _ string) (*ai.JobExtraction, error) {
	return s.extraction, s.err
}

func newTestPipeline(extractor ai.ResumeExtractor, analyzer ai.JobAnalyzer, opts ...Option) *Pipeline {
	return NewPipeline(
		NewParser(extractor, 0, nil),
		NewAnalyzer(analyzer, nil),
		NewMatcher(),
		NewRanker(nil, nil),
		nil,
		opts...,
	)
}

func standardJobExtraction() *ai.JobExtraction {
	return &ai.JobExtraction{
		Title:              "Backend Engineer",
		RequiredSkills:     []string{"Go", "SQL"},
		MinExperienceYears: 2,
		MinimumEducation:   "bachelors",
	}
}

func TestPipelinePartialFailure(t *testing.T) {
	t.Parallel()

	extractor := &stubExtractor{byText: map[string]*ai.ResumeExtraction{}}
	pipeline := newTestPipeline(extractor, &stubAnalyzer{extraction: standardJobExtraction()})

	// Resume #3 produced no text upstream, the rest are fine.
	inputs := []Input{
		{Source: "a.pdf", Text: "alice"},
		{Source: "b.pdf", Text: "bob"},
		{Source: "c.pdf", Text: ""},
		{Source: "d.pdf", Text: "dave"},
		{Source: "e.pdf", Text: "eve"},
	}

	result, err := pipeline.Run(context.Background(), "We need a backend engineer.", inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Candidates) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(result.Candidates))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}

	failure := result.Failures[0]
	if failure.Index != 2 || failure.Source != "c.pdf" {
		t.Fatalf("expected failure for input 2 (c.pdf), got index %d source %s", failure.Index, failure.Source)
	}

	var parseErr *ParseError
	if !errors.As(failure.Err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", failure.Err)
	}
	if !errors.Is(failure.Err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText in the chain, got %v", failure.Err)
	}
}

// stallingExtractor hangs on one marked input until its context expires
// and answers everything else immediately.
type stallingExtractor struct {
	slowText string
}

func (s *stallingExtractor) ExtractResume(ctx context.Context, text string) (*ai.ResumeExtraction, error) {
	if text == s.slowText {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &ai.ResumeExtraction{Name: "Candidate " + text, Skills: []string{text}}, nil
}

func TestPipelinePerCallTimeoutIsPerResumeFailure(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(
		NewParser(&stallingExtractor{slowText: "stuck"}, 50*time.Millisecond, nil),
		NewAnalyzer(&stubAnalyzer{extraction: standardJobExtraction()}, nil),
		NewMatcher(),
		NewRanker(nil, nil),
		nil,
	)

	result, err := pipeline.Run(context.Background(), "some description", []Input{
		{Source: "a.pdf", Text: "alice"},
		{Source: "b.pdf", Text: "stuck"},
		{Source: "c.pdf", Text: "carol"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Candidates) != 2 {
		t.Fatalf("expected the rest of the batch to be ranked, got %d candidates", len(result.Candidates))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}

	failure := result.Failures[0]
	if failure.Index != 1 || failure.Source != "b.pdf" {
		t.Fatalf("expected the timed-out resume reported, got index %d source %s", failure.Index, failure.Source)
	}

	var parseErr *ParseError
	if !errors.As(failure.Err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", failure.Err)
	}
	if !errors.Is(failure.Err, context.DeadlineExceeded) {
		t.Fatalf("expected the deadline in the chain, got %v", failure.Err)
	}
}

func TestPipelineAnalyzerFailureIsFatal(t *testing.T) {
	t.Parallel()

	extractor := &stubExtractor{}
	pipeline := newTestPipeline(extractor, &stubAnalyzer{err: fmt.Errorf("model unavailable")})

	_, err := pipeline.Run(context.Background(), "some description", []Input{{Source: "a.pdf", Text: "alice"}})

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected fatal ParseError, got %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("expected no parser calls after analyzer failure, got %d", extractor.calls)
	}
}

func TestPipelineAllResumesFailed(t *testing.T) {
	t.Parallel()

	extractor := &stubExtractor{err: fmt.Errorf("model unavailable")}
	pipeline := newTestPipeline(extractor, &stubAnalyzer{extraction: standardJobExtraction()})

	_, err := pipeline.Run(context.Background(), "some description", []Input{
		{Source: "a.pdf", Text: "alice"},
		{Source: "b.pdf", Text: "bob"},
	})

	var rankingErr *RankingError
	if !errors.As(err, &rankingErr) {
		t.Fatalf("expected RankingError when nothing survived parsing, got %v", err)
	}
}

func TestPipelineRejectsBadInput(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(&stubExtractor{}, &stubAnalyzer{extraction: standardJobExtraction()})

	cases := []struct {
		name        string
		description string
		inputs      []Input
	}{
		{name: "empty job description", description: "   ", inputs: []Input{{Source: "a.pdf", Text: "alice"}}},
		{name: "oversized job description", description: strings.Repeat("x", MaxJobDescriptionLength+1), inputs: []Input{{Source: "a.pdf", Text: "alice"}}},
		{name: "no resumes", description: "some description", inputs: nil},
		{name: "too many resumes", description: "some description", inputs: make([]Input, MaxResumes+1)},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.Run(context.Background(), tt.description, tt.inputs)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestPipelineCancellation(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(&stubExtractor{}, &stubAnalyzer{extraction: standardJobExtraction()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := pipeline.Run(ctx, "some description", []Input{{Source: "a.pdf", Text: "alice"}})
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if result != nil {
		t.Fatal("expected no partial result after cancellation")
	}
}

func TestPipelineBoundedConcurrency(t *testing.T) {
	t.Parallel()

	extractor := &stubExtractor{}
	pipeline := newTestPipeline(extractor, &stubAnalyzer{extraction: standardJobExtraction()}, WithConcurrency(2))

	inputs := make([]Input, 10)
	for i := range inputs {
		inputs[i] = Input{Source: fmt.Sprintf("%d.pdf", i), Text: fmt.Sprintf("candidate-%d", i)}
	}

	if _, err := pipeline.Run(context.Background(), "some description", inputs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if extractor.maxBusy > 2 {
		t.Fatalf("expected at most 2 concurrent extractor calls, observed %d", extractor.maxBusy)
	}
	if extractor.calls != 10 {
		t.Fatalf("expected 10 extractor calls, got %d", extractor.calls)
	}
}

func TestPipelineRanksAcrossBatch(t *testing.T) {
	t.Parallel()

	extractor := &stubExtractor{byText: map[string]*ai.ResumeExtraction{
		"strong": {
			Name:       "Strong Candidate",
			Skills:     []string{"Go", "SQL"},
			Experience: []ai.ExperienceEntry{{Title: "Engineer", DurationMonths: 48}},
			Education:  []ai.EducationEntry{{Degree: "BSc Computer Science"}},
		},
		"weak": {
			Name:   "Weak Candidate",
			Skills: []string{"Excel"},
		},
	}}
	pipeline := newTestPipeline(extractor, &stubAnalyzer{extraction: standardJobExtraction()})

	result, err := pipeline.Run(context.Background(), "some description", []Input{
		{Source: "weak.pdf", Text: "weak"},
		{Source: "strong.pdf", Text: "strong"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(result.Candidates))
	}
	if result.Candidates[0].Resume.Name != "Strong Candidate" {
		t.Fatalf("expected the strong candidate first, got %s", result.Candidates[0].Resume.Name)
	}
	if result.Candidates[0].Rank != 1 || result.Candidates[1].Rank != 2 {
		t.Fatalf("expected dense ranks 1 and 2, got %d and %d", result.Candidates[0].Rank, result.Candidates[1].Rank)
	}
	if result.Job.Title != "Backend Engineer" {
		t.Fatalf("expected the analyzed job on the result, got %q", result.Job.Title)
	}
}

func TestPipelineProgressReachesCompletion(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var stages []Stage

	pipeline := newTestPipeline(
		&stubExtractor{},
		&stubAnalyzer{extraction: standardJobExtraction()},
		WithProgress(func(p Progress) {
			mu.Lock()
			stages = append(stages, p.Stage)
			mu.Unlock()
		}),
	)

	if _, err := pipeline.Run(context.Background(), "some description", []Input{{Source: "a.pdf", Text: "alice"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if len(stages) == 0 || stages[0] != StageAnalyzer {
		t.Fatalf("expected progress to start with the analyzer stage, got %v", stages)
	}
	if stages[len(stages)-1] != StageComplete {
		t.Fatalf("expected progress to end with completion, got %v", stages)
	}
}
