package diskusage

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Walker computes depth-1 listings in-process with fastwalk.
//
// Sizes are apparent file sizes in bytes, not allocated blocks, so results
// differ from du for sparse files, hard links and small files.
type Walker struct {
	// Logger receives debug output. May be nil.
	Logger *log.Logger
	// ProgressHook is called with running file and byte counts. May be nil.
	ProgressHook func(files, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// collector aggregates sizes from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	children   map[string]int64
	fileCount  int64
	totalBytes int64
	errorCount int64
}

func newCollector() *collector {
	return &collector{children: make(map[string]int64)}
}

// addDir registers an immediate child directory so that empty ones are listed.
func (c *collector) addDir(child string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.children[child]; !ok {
		c.children[child] = 0
	}
}

// add records a regular file. child is empty for files directly in the root.
func (c *collector) add(child string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size

	if child != "" {
		c.children[child] += size
	}
}

func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
// The returned channel is closed once no further hook call can happen.
func startProgressReporter(
	ctx context.Context,
	c *collector,
	hook func(int64, int64),
	interval time.Duration,
) <-chan struct{} {
	done := make(chan struct{})

	if hook == nil {
		close(done)

		return done
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.mu.Lock()

				files := c.fileCount
				bytes := c.totalBytes
				c.mu.Unlock()

				if ctx.Err() != nil {
					return
				}

				hook(files, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()

	return done
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath, err := filepath.Rel(root, path)
	if err != nil || relPath == "." {
		return 0
	}

	return strings.Count(filepath.ToSlash(relPath), "/") + 1
}

// childOf returns the first path component of path below root, or "" if
// path is the root itself.
func childOf(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return ""
	}

	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")

	return first
}

// joinChild joins like du does: the root is kept as given.
func joinChild(root, name string) string {
	if strings.HasSuffix(root, "/") {
		return root + name
	}

	return root + "/" + name
}

// List walks path and returns one line per immediate child directory in
// name order, followed by a line for path itself.
//
//nolint:varnamelen // d is standard for DirEntry
func (w *Walker) List(ctx context.Context, path string, humanReadable bool) ([]string, error) {
	root := filepath.Clean(path)
	collector := newCollector()

	ctx, cancel := context.WithCancel(ctx)
	reporterDone := startProgressReporter(ctx, collector, w.ProgressHook, w.ProgressInterval)

	defer func() {
		cancel()
		<-reporterDone
	}()

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}

			w.debug("error accessing path", "path", p, "err", err)
			collector.addError()

			return nil // Silently skip errors
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() {
			if calculateDepth(p, root) == 1 {
				collector.addDir(d.Name())
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			collector.addError()

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		child := ""
		if calculateDepth(p, root) > 1 {
			child = childOf(p, root)
		}

		collector.add(child, info.Size())

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %q: %w", path, walkErr)
	}

	collector.mu.Lock()
	defer collector.mu.Unlock()

	w.debug("walk finished", "path", path, "files", collector.fileCount,
		"errors", collector.errorCount, "elapsed", time.Since(start))

	names := make([]string, 0, len(collector.children))
	for name := range collector.children {
		names = append(names, name)
	}

	slices.Sort(names)

	format := strconv.FormatInt
	if humanReadable {
		format = func(size int64, _ int) string {
			return humanize.IBytes(uint64(size)) //nolint:gosec // Sizes are never negative
		}
	}

	lines := make([]string, 0, len(names)+1)
	for _, name := range names {
		lines = append(lines, format(collector.children[name], 10)+"\t"+joinChild(path, name))
	}

	lines = append(lines, format(collector.totalBytes, 10)+"\t"+path)

	return lines, nil
}

func (w *Walker) debug(msg string, keyvals ...any) {
	if w.Logger != nil {
		w.Logger.Debug(msg, keyvals...)
	}
}
