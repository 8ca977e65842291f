package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sumitmahankale/ShabdSetu/internal/cli"
	"github.com/sumitmahankale/ShabdSetu/internal/config"
	"github.com/sumitmahankale/ShabdSetu/internal/language"
	"github.com/sumitmahankale/ShabdSetu/internal/logging"
	"github.com/sumitmahankale/ShabdSetu/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env")
	from := fs.String("from", "auto", "Source language: auto, English, Marathi, or a tag such as en or mr-IN")
	to := fs.String("to", "auto", "Target language: auto, English, Marathi, or a tag")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	noStore := fs.Bool("no-store", false, "Skip the persistent store even when DATABASE_URL is set")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	text := joinArgs(fs.Args())
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: shabdsetu translate [--from auto] [--to auto] [--format table|json] <text>")
		return 2
	}

	req, err := buildTranslateRequest(text, *from, *to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	if _, err := envLoader.Load(); err != nil && !errors.Is(err, cli.ErrNoEnvFile) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Logs go to stderr so stdout carries only the result.
	logger, err := logging.NewWithWriter(os.Stderr, cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	if *timeout <= 0 {
		*timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rt, err := newRuntime(ctx, cfg, logger, runtimeOptions{connectStore: !*noStore})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer rt.Close()

	result, err := rt.orchestrator.Translate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	if err := renderTranslation(os.Stdout, outputFormat, result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render result: %v\n", err)
		return 1
	}
	if translation.IsUnavailable(result) {
		return 1
	}
	return 0
}

func buildTranslateRequest(text, from, to string) (translation.Request, error) {
	source, err := language.ParseHint(from)
	if err != nil {
		return translation.Request{}, fmt.Errorf("invalid --from: %w", err)
	}
	target, err := language.ParseHint(to)
	if err != nil {
		return translation.Request{}, fmt.Errorf("invalid --to: %w", err)
	}
	return translation.Request{Text: text, Source: source, Target: target}, nil
}

type translationOutput struct {
	OriginalText      string   `json:"original_text"`
	TranslatedText    string   `json:"translated_text"`
	SourceLanguage    string   `json:"source_language"`
	TargetLanguage    string   `json:"target_language"`
	TranslationMethod string   `json:"translation_method"`
	Attempts          []string `json:"attempts,omitempty"`
	Cached            bool     `json:"cached"`
}

func renderTranslation(w io.Writer, format string, result translation.Result) error {
	out := translationOutput{
		OriginalText:      result.OriginalText,
		TranslatedText:    result.TranslatedText,
		SourceLanguage:    result.Source.Code(),
		TargetLanguage:    result.Target.Code(),
		TranslationMethod: result.Method,
		Attempts:          result.AttemptStrings(),
		Cached:            result.Cached,
	}
	if format == outputFormatJSON {
		return printJSON(w, out)
	}

	attempts := strings.Join(out.Attempts, " ")
	if attempts == "" {
		attempts = "-"
	}
	return writeFields(w, [][2]string{
		{"original", truncateForTable(out.OriginalText, 80)},
		{"translation", out.TranslatedText},
		{"languages", out.SourceLanguage + " -> " + out.TargetLanguage},
		{"method", out.TranslationMethod},
		{"attempts", attempts},
	})
}
