package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// reporter prints progress lines to stdout and warnings to stderr.
// In JSON mode progress is suppressed and warnings are collected for the
// final result object instead.
type reporter struct {
	out      io.Writer
	errOut   io.Writer
	printer  *message.Printer
	json     bool
	warnings []string
}

func newReporter(out, errOut io.Writer, jsonMode bool) *reporter {
	return &reporter{
		out:     out,
		errOut:  errOut,
		printer: message.NewPrinter(language.English),
		json:    jsonMode,
	}
}

// status prints one progress line.
func (r *reporter) status(s model.Status, args ...interface{}) {
	// In JSON mode stdout carries exactly one document, written by done.
	if r.json {
		return
	}
	r.printer.Fprintf(r.out, s.Format()+"\n", args...)
}

// warn records a non-fatal problem.
func (r *reporter) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.warnings = append(r.warnings, msg)
	if !r.json {
		fmt.Fprintf(r.errOut, "Warning: %s\n", msg)
	}
}

// createResult is the --json output of a successful run.
type createResult struct {
	Name           string   `json:"name"`
	Path           string   `json:"path"`
	Source         string   `json:"source"`
	Commit         string   `json:"commit,omitempty"`
	FilesCopied    int      `json:"filesCopied"`
	PackageManager string   `json:"packageManager"`
	Installed      bool     `json:"installed"`
	Warnings       []string `json:"warnings,omitempty"`
	NextSteps      []string `json:"nextSteps"`
}

// done prints the completion message and next-step hints.
func (r *reporter) done(res *createResult) {
	// Warnings were already printed in text mode; JSON carries them here.
	res.Warnings = r.warnings

	if r.json {
		data, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(r.out, string(data))
		return
	}

	r.status(model.StatusDone, res.Name, res.Path)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "We suggest that you begin by typing:")
	fmt.Fprintln(r.out)
	for _, step := range res.NextSteps {
		fmt.Fprintf(r.out, "  %s\n", step)
	}
}
