package tcemlint

import (
	"fmt"
	"io"
)

// VerboseReporter handles detailed statistics and offender summaries
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs detailed linting statistics
func (r *VerboseReporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "TCEM Lint Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Defined Classes:     %d\n", result.TotalClasses)
	fmt.Fprintf(r.w, "Referenced:          %d (%.1f%%)\n", result.UsedClasses, result.UsagePercentage)
	fmt.Fprintf(r.w, "Unused:              %d\n", len(result.UnusedClasses))
	fmt.Fprintf(r.w, "Stylesheets Parsed:  %d\n", result.StylesheetsParsed)
	fmt.Fprintf(r.w, "Markup Files:        %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Class References:    %d\n", result.ReferencesFound)
}

// PrintUsageProgress shows a visual progress bar for class usage
func (r *VerboseReporter) PrintUsageProgress(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class Usage", r.useColors))
	fmt.Fprintln(r.w, "-------------------")
	printProgressBar(r.w, result.UsagePercentage)
}

// PrintOffenders shows the most frequently flagged class names
func (r *VerboseReporter) PrintOffenders(result LintResult) {
	if len(result.Offenders) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Top Offenders", r.useColors))
	fmt.Fprintln(r.w, "-------------")
	fmt.Fprintln(r.w, "Renaming one class clears every occurrence:")

	for i, off := range result.Offenders {
		fmt.Fprintf(r.w, "%d. %q - %d occurrence%s (%s)\n",
			i+1, off.ClassName, off.Occurrences, pluralize(off.Occurrences), off.Rule)
	}
}

// PrintUnusedClasses lists defined classes with no markup reference,
// grouped by pyramid layer.
func (r *VerboseReporter) PrintUnusedClasses(result LintResult) {
	if len(result.UnusedClasses) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Unused Classes", r.useColors))
	fmt.Fprintln(r.w, "---------------")

	byLayer := make(map[string][]UnusedClass)
	var layers []string
	for _, unused := range result.UnusedClasses {
		if _, ok := byLayer[unused.Layer]; !ok {
			layers = append(layers, unused.Layer)
		}
		byLayer[unused.Layer] = append(byLayer[unused.Layer], unused)
	}

	for _, layer := range layers {
		classes := byLayer[layer]
		fmt.Fprintf(r.w, "\nLayer: %s (%d unused)\n", layer, len(classes))
		for _, cls := range classes {
			fmt.Fprintf(r.w, "  • %-24s %s\n", cls.ClassName, cls.DefinedIn)
		}
	}
}

// PrintWarnings shows linter warnings
func (r *VerboseReporter) PrintWarnings(result LintResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
