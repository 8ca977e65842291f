package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sumitmahankale/ShabdSetu/internal/langdetect"
)

func runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	statistical := fs.Bool("statistical", false, "Refine English defaults with the statistical detector")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	text := joinArgs(fs.Args())
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: shabdsetu detect [--statistical] [--format table|json] <text>")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	var opts []langdetect.Option
	if *statistical {
		opts = append(opts, langdetect.WithRefiner(langdetect.NewLinguaRefiner()))
	}
	result := langdetect.New(opts...).Detect(text)

	if err := renderDetection(os.Stdout, outputFormat, result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render result: %v\n", err)
		return 1
	}
	return 0
}

func renderDetection(w io.Writer, format string, result langdetect.Result) error {
	if format == outputFormatJSON {
		return printJSON(w, result)
	}
	return writeFields(w, [][2]string{
		{"language", result.Language.Code() + " (" + result.Language.Name() + ")"},
		{"confidence", strconv.FormatFloat(result.Confidence, 'f', 2, 64)},
		{"signal", string(result.Signal)},
	})
}
