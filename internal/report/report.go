package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/idelchi/duim/internal/diskusage"
)

// DefaultLength is the default bar width.
const DefaultLength = 20

var (
	// ErrTargetMissing is returned when the target does not exist.
	ErrTargetMissing = errors.New("does not exist")
	// ErrNotDirectory is returned when the target is not a directory.
	ErrNotDirectory = errors.New("is not a directory")
)

// Options configures report generation and CLI behavior.
type Options struct {
	// Target is the directory to report on.
	Target string
	// Length is the bar width in characters.
	Length int
	// HumanReadable requests formatted size labels.
	HumanReadable bool
	// Provider names the disk usage provider (du or walk).
	Provider string
	// Output represents output format (table or json).
	Output string
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Version indicates whether to show version and exit.
	Version bool
	// Integration indicates whether to output integration script.
	Integration bool
}

// Entry is a single subdirectory row.
type Entry struct {
	// Path is the subdirectory path as reported by the provider.
	Path string `json:"path"`
	// Size is the raw size.
	Size int64 `json:"size"`
	// Percent is Size relative to the report total.
	Percent float64 `json:"percent"`
	// Bar is the rendered bar.
	Bar string `json:"bar"`
	// Label is the displayed size.
	Label string `json:"label"`
}

// Report is the result of a single run.
type Report struct {
	// Target is the directory as given.
	Target string `json:"target"`
	// Total is the size the percentages are relative to.
	Total int64 `json:"total"`
	// TotalLabel is the displayed total.
	TotalLabel string `json:"total_label"`
	// Entries are sorted by size, largest first. The target itself is excluded.
	Entries []Entry `json:"entries"`
}

// ValidateTarget checks that target exists and is a directory.
func ValidateTarget(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("target '%s' %w", target, ErrTargetMissing)
		}

		return fmt.Errorf("accessing target '%s': %w", target, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("target '%s' %w", target, ErrNotDirectory)
	}

	return nil
}

// Build validates opt.Target, lists it with provider and computes the report.
//
// In human-readable mode provider is invoked again for each entry, and once
// more for the target, to obtain formatted labels.
func Build(ctx context.Context, provider diskusage.Provider, opt Options, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if opt.Target == "" {
		opt.Target = "."
	}

	if err := ValidateTarget(opt.Target); err != nil {
		return nil, err
	}

	lines, err := provider.List(ctx, opt.Target, false)
	if err != nil {
		return nil, err
	}

	sizes := diskusage.ParseLines(lines)
	logger.Debug("parsed listing", "lines", len(lines), "entries", sizes.Len())

	total, ok := sizes.Get(opt.Target)
	if !ok {
		total = sizes.Sum()
		logger.Debug("no entry for target, summing entries", "target", opt.Target, "total", total)
	}

	entries := sizes.Entries()
	slices.SortStableFunc(entries, func(a, b diskusage.SizeEntry) int {
		switch {
		case a.Size > b.Size:
			return -1
		case a.Size < b.Size:
			return 1
		default:
			return 0
		}
	})

	report := &Report{
		Target:  opt.Target,
		Total:   total,
		Entries: make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		if e.Path == opt.Target {
			continue
		}

		pct := 0.0
		if total > 0 {
			pct = float64(e.Size) / float64(total) * 100
		}

		bar, err := RenderBar(pct, opt.Length)
		if err != nil {
			return nil, err
		}

		label := strconv.FormatInt(e.Size, 10)
		if opt.HumanReadable {
			label, err = humanLabel(ctx, provider, e.Path, label, first)
			if err != nil {
				return nil, err
			}
		}

		report.Entries = append(report.Entries, Entry{
			Path:    e.Path,
			Size:    e.Size,
			Percent: pct,
			Bar:     bar,
			Label:   label,
		})
	}

	report.TotalLabel = strconv.FormatInt(total, 10)
	if opt.HumanReadable {
		report.TotalLabel, err = humanLabel(ctx, provider, opt.Target, report.TotalLabel, last)
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

func first(lines []string) string { return lines[0] }

func last(lines []string) string { return lines[len(lines)-1] }

// humanLabel lists path in human-readable mode and returns the size token of
// the line chosen by pick. fallback is used when nothing is listed.
func humanLabel(
	ctx context.Context,
	provider diskusage.Provider,
	path, fallback string,
	pick func([]string) string,
) (string, error) {
	lines, err := provider.List(ctx, path, true)
	if err != nil {
		return "", err
	}

	if len(lines) == 0 {
		return fallback, nil
	}

	return diskusage.SizeToken(pick(lines)), nil
}
