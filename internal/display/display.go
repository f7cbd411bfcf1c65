package display

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/markkurossi/tabulate"
	progressbar "github.com/schollz/progressbar/v3"

	"github.com/autobrr/pwdigest/internal/pwhash"
	"github.com/autobrr/pwdigest/internal/types"
	"github.com/autobrr/pwdigest/internal/utils"
)

type Display struct {
	formatter *Formatter
	bar       *progressbar.ProgressBar
	out       io.Writer
	quiet     bool
}

// Ensure Display implements all required interfaces
var _ Displayer = (*Display)(nil)
var _ DigestDisplayer = (*Display)(nil)

func NewDisplay(formatter *Formatter) *Display {
	return &Display{
		formatter: formatter,
		out:       os.Stdout,
	}
}

// SetOutput redirects all output to w
func (d *Display) SetOutput(w io.Writer) {
	d.out = w
}

func (d *Display) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.out, format, args...)
}

func (d *Display) ShowProgress(total int) {
	if d.quiet {
		return
	}
	fmt.Fprintln(d.out)
	d.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(d.out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][bold]Hashing passwords...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (d *Display) UpdateProgress(completed int, rate float64) {
	if d.quiet {
		return
	}
	if d.bar != nil {
		if err := d.bar.Set(completed); err != nil {
			log.Printf("failed to update progress bar: %v", err)
		}

		if rate > 0 {
			description := fmt.Sprintf("[cyan][bold]Hashing passwords...[reset] [%.0f/s]", rate)
			d.bar.Describe(description)
		}
	}
}

func (d *Display) FinishProgress() {
	if d.quiet {
		return
	}
	if d.bar != nil {
		if err := d.bar.Finish(); err != nil {
			log.Printf("failed to finish progress bar: %v", err)
		}
		fmt.Fprintln(d.out)
	}
}

func (d *Display) IsQuiet() bool {
	return d.quiet
}

func (d *Display) SetQuiet(quiet bool) {
	d.quiet = quiet
}

var (
	magenta    = color.New(color.FgMagenta).SprintFunc()
	yellow     = color.New(color.FgYellow).SprintFunc()
	success    = color.New(color.FgGreen).SprintFunc()
	label      = color.New(color.FgCyan).SprintFunc()
	highlight  = color.New(color.FgHiWhite).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
)

func (d *Display) ShowMessage(msg string) {
	d.printf("%s %s\n", success("\nInfo:"), msg)
}

func (d *Display) ShowWarning(msg string) {
	d.printf("%s %s\n", yellow("Warning:"), msg)
}

// ShowDigest prints a digest. Quiet mode prints the digest alone,
// verbose mode adds the input label and size.
func (d *Display) ShowDigest(name string, size int, digest string) {
	switch {
	case d.quiet:
		fmt.Fprintln(d.out, digest)
	case d.formatter.verbose:
		d.printf("\n%s\n", magenta("Digest:"))
		d.printf("  %-10s %s\n", label("Input:"), name)
		d.printf("  %-10s %s\n", label("Size:"), d.formatter.FormatBytes(int64(size)))
		if size > pwhash.SeedSize {
			d.printf("  %-10s %s\n", label("Ignored:"), yellow(fmt.Sprintf("%d bytes past offset %d", size-pwhash.SeedSize, pwhash.SeedSize)))
		}
		d.printf("  %-10s %s\n", label("Value:"), success(digest))
	default:
		d.printf("%s  %s\n", digest, name)
	}
}

func (d *Display) ShowCheckResult(match bool) {
	if d.quiet {
		if match {
			fmt.Fprintln(d.out, "OK")
		} else {
			fmt.Fprintln(d.out, "FAILED")
		}
		return
	}
	if match {
		d.printf("%s %s\n", success("Match:"), "password matches digest")
	} else {
		d.printf("%s %s\n", errorColor("Mismatch:"), "password does not match digest")
	}
}

// ShowTrace prints normalization details, the message schedule and,
// in verbose mode, the accumulator state after every round.
func (d *Display) ShowTrace(tr *pwhash.Trace, digest string) {
	d.printf("\n%s\n", magenta("Input:"))
	d.printf("  %-13s %s\n", label("Normalized:"), utils.FormatBytesHex(tr.Normalized, 16))
	d.printf("  %-13s %s\n", label("Size:"), d.formatter.FormatBytes(int64(len(tr.Normalized))))
	d.printf("  %-13s %d\n", label("Seed bytes:"), tr.SeedLen())
	if tr.IgnoredLen() > 0 {
		d.printf("  %-13s %s\n", label("Ignored:"), yellow(fmt.Sprintf("%d", tr.IgnoredLen())))
	} else {
		d.printf("  %-13s %d\n", label("Ignored:"), 0)
	}

	d.printf("\n%s\n", magenta("Message schedule:"))
	tab := tabulate.New(tabulate.UnicodeLight)
	for i := 0; i < 4; i++ {
		tab.Header("Word").SetAlign(tabulate.MR)
		tab.Header("Value").SetAlign(tabulate.ML)
	}
	const perRow = 4
	for i := 0; i < pwhash.Rounds; i += perRow {
		row := tab.Row()
		for j := i; j < i+perRow; j++ {
			row.Column(fmt.Sprintf("%d", j))
			row.Column(utils.FormatWord(tr.Schedule[j]))
		}
	}
	tab.Print(d.out)

	if d.formatter.verbose {
		d.printf("\n%s\n", magenta("Rounds:"))
		tab := tabulate.New(tabulate.UnicodeLight)
		tab.Header("Round").SetAlign(tabulate.MR)
		for _, h := range []string{"a", "b", "c", "d", "e"} {
			tab.Header(h).SetAlign(tabulate.ML)
		}
		for i, s := range tr.States {
			row := tab.Row()
			if i == 0 {
				row.Column("init")
			} else {
				row.Column(fmt.Sprintf("%d", i-1))
			}
			for _, w := range s {
				row.Column(utils.FormatWord(w))
			}
		}
		tab.Print(d.out)
	}

	d.printf("\n%s %s\n", label("Digest:"), success(digest))
}

func (d *Display) ShowBatchResults(results []types.Result, duration time.Duration) {
	if d.quiet {
		for _, result := range results {
			if result.Success {
				d.printf("%s  %s\n", result.Digest, result.Label)
			} else {
				d.printf("FAILED  %s\n", result.Label)
			}
		}
		return
	}

	d.printf("\n%s\n", magenta("Batch processing results:"))

	successful := 0
	failed := 0
	verified := 0
	totalSize := int64(0)

	for _, result := range results {
		if result.Success {
			successful++
			totalSize += int64(result.Size)
			if result.Verified {
				verified++
			}
		} else {
			failed++
		}
	}

	d.printf("  %-15s %d\n", label("Total jobs:"), len(results))
	d.printf("  %-15s %s\n", label("Successful:"), success(successful))
	d.printf("  %-15s %s\n", label("Verified:"), success(verified))
	d.printf("  %-15s %s\n", label("Failed:"), errorColor(failed))
	d.printf("  %-15s %s\n", label("Total size:"), d.formatter.FormatBytes(totalSize))
	d.printf("  %-15s %s\n", label("Processing time:"), d.formatter.FormatDuration(duration))

	if d.formatter.verbose {
		d.printf("\n%s\n", magenta("Detailed results:"))
		for i, result := range results {
			d.printf("\n%s %d: %s\n", label("Job"), i+1, highlight(result.Label))
			if result.Success {
				d.printf("  %-11s %s\n", label("Status:"), success("Success"))
				d.printf("  %-11s %s\n", label("Digest:"), result.Digest)
				d.printf("  %-11s %s\n", label("Size:"), d.formatter.FormatBytes(int64(result.Size)))
				d.printf("  %-11s %s\n", label("Elapsed:"), d.formatter.FormatDuration(result.Elapsed))
				if result.Job.Expect != "" {
					d.printf("  %-11s %s\n", label("Expected:"), success("matched"))
				}
			} else {
				d.printf("  %-11s %s\n", label("Status:"), errorColor("Failed"))
				d.printf("  %-11s %v\n", label("Error:"), result.Error)
			}
		}
	} else if failed > 0 {
		d.printf("\n%s\n", yellow("Failed jobs:"))
		for _, result := range results {
			if !result.Success {
				d.printf("  %s %s: %v\n", "└─", result.Label, result.Error)
			}
		}
	}
}

type Formatter struct {
	verbose bool
}

func NewFormatter(verbose bool) *Formatter {
	return &Formatter{verbose: verbose}
}

func (f *Formatter) FormatBytes(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}

func (f *Formatter) FormatDuration(dur time.Duration) string {
	if dur < time.Second {
		return fmt.Sprintf("%dms", dur.Milliseconds())
	}
	return humanize.RelTime(time.Now().Add(-dur), time.Now(), "", "")
}
