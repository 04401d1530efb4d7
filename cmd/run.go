package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/RahulMirji/Resume-Screener/internal/ai"
	"github.com/RahulMirji/Resume-Screener/internal/ai/gemini"
	"github.com/RahulMirji/Resume-Screener/internal/export"
	"github.com/RahulMirji/Resume-Screener/internal/extract"
	"github.com/RahulMirji/Resume-Screener/internal/logger"
	"github.com/RahulMirji/Resume-Screener/internal/screening"
	"github.com/RahulMirji/Resume-Screener/internal/secrets"
)

const (
	PromptExportCSV  = "Export results to CSV"
	PromptDumpJSON   = "Dump results to a JSON file"
	PromptQuit       = "Quit"
	defaultCSVPath   = "screening_results.csv"
	defaultParseWait = 60 * time.Second
)

var errExit = errors.New("exit requested")

var exportPrompt = promptui.Select{
	Label: "Screening finished. What next?",
	Items: []string{PromptExportCSV, PromptDumpJSON, PromptQuit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the screening pipeline for one batch of resumes",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume-dir", "r", "", "directory with PDF resumes to screen")
	runCmd.Flags().StringP("job-file", "J", "", "file with the job description text")
	runCmd.Flags().BoolP("auto-approve", "y", false, "export without asking for confirmation")
	runCmd.Flags().Bool("no-explanations", false, "skip AI-generated explanations, use local summaries")

	viper.BindPFlag("resume-dir", runCmd.Flags().Lookup("resume-dir"))
	viper.BindPFlag("job-file", runCmd.Flags().Lookup("job-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating a logger: %s\n", err)
		os.Exit(1)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}
	applyDefaults(config)

	log.Info("starting the resume-screener", zap.String("version", version))

	resumeDir := viper.GetString("resume-dir")
	if resumeDir == "" {
		resumeDir = config.ResumeDir
	}
	jobFile := viper.GetString("job-file")
	if jobFile == "" {
		jobFile = config.JobFile
	}

	if resumeDir == "" || jobFile == "" {
		log.Fatal("resume directory and job description file are required",
			zap.String("hint", "set resume-dir and job-file in the config or pass --resume-dir/--job-file"),
		)
	}

	jobDescription, err := os.ReadFile(jobFile)
	if err != nil {
		log.Fatal("reading job description", zap.String("path", jobFile), zap.Error(err))
	}

	inputs, err := loadResumes(resumeDir, log)
	if err != nil {
		log.Fatal("loading resumes", zap.String("dir", resumeDir), zap.Error(err))
	}

	log.Info("resumes loaded", zap.Int("count", len(inputs)))

	pipeline, err := buildPipeline(ctx, cmd, config, log)
	if err != nil {
		log.Fatal("building the screening pipeline", zap.Error(err))
	}

	result, err := pipeline.Run(ctx, string(jobDescription), inputs)
	if err != nil {
		log.Fatal("screening failed", zap.Error(err))
	}

	printResults(result)

	for _, failure := range result.Failures {
		log.Warn("resume excluded from ranking",
			zap.String("source", failure.Source),
			zap.Error(failure.Err),
		)
	}

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"
	if autoApprove {
		if err := exportCSV(config, result); err != nil {
			log.Fatal("exporting results", zap.Error(err))
		}
		log.Info("results exported", zap.String("path", csvPath(config)))
		return
	}

	for {
		_, action, err := exportPrompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, config, result, log); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, config *Config, result *screening.Result, log *zap.Logger) error {
	switch action {
	case PromptExportCSV:
		if err := exportCSV(config, result); err != nil {
			return err
		}
		log.Info("results exported", zap.String("path", csvPath(config)))
		return nil
	case PromptDumpJSON:
		filename, err := dumpJSON(config, result)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptQuit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadResumes reads every PDF in the directory and extracts its text. An
// unreadable file becomes an empty input so the pipeline records it as a
// per-resume failure instead of aborting the batch.
func loadResumes(dir string, log *zap.Logger) ([]screening.Input, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	if err := screening.ValidateBatchSize(len(paths)); err != nil {
		return nil, err
	}

	inputs := make([]screening.Input, 0, len(paths))
	for _, path := range paths {
		source := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("reading resume failed", zap.Error(&screening.ExtractionError{Source: source, Err: err}))
			inputs = append(inputs, screening.Input{Source: source})
			continue
		}

		text, err := extract.Text(data)
		if err != nil {
			log.Warn("extracting resume text failed", zap.Error(&screening.ExtractionError{Source: source, Err: err}))
			inputs = append(inputs, screening.Input{Source: source})
			continue
		}

		inputs = append(inputs, screening.Input{Source: source, Text: text})
	}

	return inputs, nil
}

func buildPipeline(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger) (*screening.Pipeline, error) {
	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	aiLogger := logger.WithCommonFields(log, "gemini", config.AI.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, aiLogger)
	if err != nil {
		return nil, err
	}

	var writer ai.ExplanationWriter
	noExplanations := cmd.Flag("no-explanations").Value.String() == "true"
	if config.AI.Explanations && !noExplanations {
		writer = gemini.NewExplainer(generator, aiLogger)
	}

	timeout := defaultParseWait
	if config.AI.TimeoutSeconds > 0 {
		timeout = time.Duration(config.AI.TimeoutSeconds) * time.Second
	}

	parser := screening.NewParser(gemini.NewExtractor(generator, aiLogger, config.AI.Gemini.MaxLogLength), timeout, log)
	analyzer := screening.NewAnalyzer(gemini.NewAnalyzer(generator, aiLogger, config.AI.Gemini.MaxLogLength), log)

	return screening.NewPipeline(
		parser,
		analyzer,
		screening.NewMatcher(),
		screening.NewRanker(writer, log),
		log,
		screening.WithConcurrency(config.AI.Concurrency),
		screening.WithProgress(func(p screening.Progress) {
			log.Debug("pipeline progress",
				zap.String(logger.FieldStage, string(p.Stage)),
				zap.Int("processed", p.Processed),
				zap.Int("total", p.Total),
			)
		}),
	), nil
}

func printResults(result *screening.Result) {
	fmt.Printf("\nPosition: %s\nCandidates ranked: %d\n\n", result.Job.Title, len(result.Candidates))

	for _, candidate := range result.Candidates {
		fmt.Printf("#%d %s (%s) - %.1f%%\n", candidate.Rank, candidate.Resume.Name, candidate.Resume.Source, candidate.Match.OverallScore()*100)
		fmt.Printf("    %s\n", candidate.Explanation)
	}

	fmt.Println()
}

func exportCSV(config *Config, result *screening.Result) error {
	file, err := os.Create(csvPath(config))
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	return export.WriteCSV(file, result.Job, result.Candidates, time.Now())
}

// dumpJSON writes the report to the configured path, or a temp file when
// none is set.
func dumpJSON(config *Config, result *screening.Result) (string, error) {
	path := ""
	if config.Export != nil {
		path = config.Export.JSON
	}
	if path == "" {
		return export.DumpToTmpFile(result.Job, result.Candidates)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create json file: %w", err)
	}
	defer file.Close()

	if err := export.WriteJSON(file, result.Job, result.Candidates); err != nil {
		return "", err
	}
	return path, nil
}

func csvPath(config *Config) string {
	if config.Export != nil && config.Export.CSV != "" {
		return config.Export.CSV
	}
	return defaultCSVPath
}

func applyDefaults(config *Config) {
	if config.AI == nil {
		config.AI = &AIConfig{Explanations: true}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Export == nil {
		config.Export = &ExportConfig{}
	}
}
