package screening

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Stage names reported through progress updates.
type Stage string

const (
	StageAnalyzer Stage = "analyzer"
	StageParser   Stage = "parser"
	StageMatcher  Stage = "matcher"
	StageRanker   Stage = "ranker"
	StageComplete Stage = "complete"
)

const defaultConcurrency = 4

// Progress describes how far the run has come. Total counts resumes for the
// parser and matcher stages and candidates for the ranker.
type Progress struct {
	Stage     Stage
	Processed int
	Total     int
}

// Input is one resume's raw extracted text. Text may be empty when the
// upstream extraction failed; the parser treats that as a per-resume
// failure.
type Input struct {
	Source string
	Text   string
}

// ResumeFailure records a per-resume error. Failed resumes are excluded
// from the ranking but never abort the batch.
type ResumeFailure struct {
	Index  int
	Source string
	Err    error
}

// Result is the outcome of one pipeline run.
type Result struct {
	Job        *Job
	Candidates []*Candidate
	Failures   []ResumeFailure
}

// Pipeline chains the four stages: analyze once, parse each resume
// concurrently, match each parsed resume, then rank across the batch.
type Pipeline struct {
	parser      *Parser
	analyzer    *Analyzer
	matcher     *Matcher
	ranker      *Ranker
	concurrency int
	logger      *zap.Logger
	onProgress  func(Progress)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds the number of parallel parser-stage model calls.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithProgress registers a callback invoked on stage transitions and after
// each resume is parsed or matched.
func WithProgress(fn func(Progress)) Option {
	return func(p *Pipeline) {
		p.onProgress = fn
	}
}

func NewPipeline(parser *Parser, analyzer *Analyzer, matcher *Matcher, ranker *Ranker, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		parser:      parser,
		analyzer:    analyzer,
		matcher:     matcher,
		ranker:      ranker,
		concurrency: defaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes one batch of resumes against one job description. Analyzer
// and ranker errors are fatal; parser and matcher errors are collected per
// resume. On cancellation no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, jobDescription string, inputs []Input) (*Result, error) {
	if err := ValidateJobDescription(jobDescription); err != nil {
		return nil, err
	}
	if err := ValidateBatchSize(len(inputs)); err != nil {
		return nil, err
	}

	p.notify(Progress{Stage: StageAnalyzer, Processed: 0, Total: len(inputs)})

	job, err := p.analyzer.Analyze(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	p.logger.Info("job description analyzed",
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)),
	)

	resumes, failures := p.parseAll(ctx, inputs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Info("resumes parsed",
		zap.Int("parsed", countParsed(resumes)),
		zap.Int("failed", len(failures)),
	)

	parsed := countParsed(resumes)
	matches := make([]*Match, 0, parsed)
	for index, resume := range resumes {
		if resume == nil {
			continue
		}
		match, err := p.matcher.Match(resume, job, index)
		if err != nil {
			p.logger.Warn("matching failed",
				zap.String("source", resume.Source),
				zap.Error(err),
			)
			failures = append(failures, ResumeFailure{Index: index, Source: resume.Source, Err: err})
			continue
		}
		matches = append(matches, match)
		p.notify(Progress{Stage: StageMatcher, Processed: len(matches), Total: parsed})
	}

	p.notify(Progress{Stage: StageRanker, Processed: 0, Total: len(matches)})

	candidates, err := p.ranker.Rank(ctx, matches)
	if err != nil {
		return nil, err
	}

	p.notify(Progress{Stage: StageComplete, Processed: len(candidates), Total: len(candidates)})

	return &Result{
		Job:        job,
		Candidates: candidates,
		Failures:   failures,
	}, nil
}

// parseAll runs the parser stage for every input with bounded parallelism.
// Results keep their input position so the submission order survives the
// concurrent execution.
func (p *Pipeline) parseAll(ctx context.Context, inputs []Input) ([]*Resume, []ResumeFailure) {
	resumes := make([]*Resume, len(inputs))
	failures := make([]ResumeFailure, 0)

	workers := p.concurrency
	if workers > len(inputs) {
		workers = len(inputs)
	}

	type outcome struct {
		index  int
		resume *Resume
		err    error
	}

	jobs := make(chan int, len(inputs))
	results := make(chan outcome, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resume, err := p.parser.Parse(ctx, inputs[index].Text, inputs[index].Source)
				results <- outcome{index: index, resume: resume, err: err}
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	processed := 0
	for res := range results {
		if res.err != nil {
			p.logger.Warn("resume parsing failed",
				zap.String("source", inputs[res.index].Source),
				zap.Error(res.err),
			)
			failures = append(failures, ResumeFailure{Index: res.index, Source: inputs[res.index].Source, Err: res.err})
		} else {
			resumes[res.index] = res.resume
		}
		processed++
		p.notify(Progress{Stage: StageParser, Processed: processed, Total: len(inputs)})
	}

	sortFailures(failures)

	return resumes, failures
}

func (p *Pipeline) notify(progress Progress) {
	if p.onProgress != nil {
		p.onProgress(progress)
	}
}

func countParsed(resumes []*Resume) int {
	count := 0
	for _, r := range resumes {
		if r != nil {
			count++
		}
	}
	return count
}

// sortFailures keeps the failure report in submission order regardless of
// which worker finished first.
func sortFailures(failures []ResumeFailure) {
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Index < failures[j].Index
	})
}
