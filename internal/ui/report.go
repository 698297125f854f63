// Package ui renders batch check results for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/gubarz/mmconv/internal/executor"
)

// Summary counts the outcome of a batch.
type Summary struct {
	Files       int
	FailedFiles int
	Recipes     int
	Failures    int
}

// OK reports whether the batch had no failures at all.
func (s Summary) OK() bool {
	return s.FailedFiles == 0
}

// Summarize counts reports.
func Summarize(reports []executor.FileReport) Summary {
	var s Summary
	for _, r := range reports {
		s.Files++
		s.Recipes += len(r.Recipes)
		s.Failures += len(r.Failures)
		if r.Err != nil {
			s.Failures++
		}
		if !r.OK() {
			s.FailedFiles++
		}
	}
	return s
}

// Report renders reports with the global styles.
func Report(reports []executor.FileReport, verbose bool) string {
	return styles.Report(reports, verbose)
}

// Report renders one line per file, the failures of failed files and a
// summary box. Verbose output also lists recipe titles.
func (s *StyleManager) Report(reports []executor.FileReport, verbose bool) string {
	var b strings.Builder
	b.WriteString(s.Header.Render("MealMaster check") + "\n")

	for _, r := range reports {
		mark := s.OK.Render("ok  ")
		if !r.OK() {
			mark = s.Fail.Render("FAIL")
		}
		b.WriteString(mark + " " + s.Path.Render(r.Path) + " " + s.Dim.Render(plural(len(r.Recipes), "recipe")) + "\n")

		if r.Err != nil {
			b.WriteString("     " + s.Fail.Render(r.Err.Error()) + "\n")
		}
		for _, err := range r.Failures {
			b.WriteString("     " + s.Fail.Render(err.Error()) + "\n")
		}
		if verbose {
			for _, rec := range r.Recipes {
				b.WriteString("     " + s.Dim.Render("- "+rec.Title) + "\n")
			}
		}
	}

	sum := Summarize(reports)
	line := fmt.Sprintf("%s, %s, %s",
		plural(sum.Files, "file"), plural(sum.Recipes, "recipe"), plural(sum.Failures, "failure"))
	if sum.OK() {
		line = s.OK.Render(line)
	} else {
		line = s.Fail.Render(line)
	}
	b.WriteString(s.Border.Render(line) + "\n")
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
