package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"tern/internal/diag"
	"tern/internal/project"
)

// Stage labels the phase an Event was produced in.
type Stage int

const (
	StageStart Stage = iota
	StageParse
	StageCheck
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageParse:
		return "parse"
	case StageCheck:
		return "check"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is one progress notification from CheckPaths. Err is set when the
// manifest could not be processed at all; Diags carries checking output.
type Event struct {
	Path  string
	Stage Stage
	Err   error
	Diags []diag.Diagnostic
}

// ParallelOptions tunes CheckPaths.
type ParallelOptions struct {
	Options
	// Jobs limits concurrent manifests; zero means GOMAXPROCS.
	Jobs int
	// Events receives progress notifications when non-nil. The channel is
	// not closed by CheckPaths.
	Events chan<- Event
}

func (o ParallelOptions) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// CheckPaths checks manifests concurrently and returns results keyed in the
// same order as paths. A manifest load or pipeline failure cancels nothing:
// the failing entry carries a nil Result and the error travels via Events
// and the returned error (first one wins).
func CheckPaths(ctx context.Context, paths []string, opts ParallelOptions) ([]*Result, error) {
	results := make([]*Result, len(paths))
	var mu sync.Mutex
	var firstErr error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(opts.Events, Event{Path: path, Stage: StageStart})

			man, err := project.Load(path)
			if err != nil {
				emit(opts.Events, Event{Path: path, Stage: StageParse, Err: err})
				recordErr(&mu, &firstErr, err)
				return nil
			}
			emit(opts.Events, Event{Path: path, Stage: StageParse})
			emit(opts.Events, Event{Path: path, Stage: StageCheck})

			res, err := CheckManifest(man, path, opts.Options)
			if err != nil {
				emit(opts.Events, Event{Path: path, Stage: StageCheck, Err: err})
				recordErr(&mu, &firstErr, err)
				return nil
			}
			results[i] = res
			emit(opts.Events, Event{Path: path, Stage: StageDone, Diags: res.Bag.Items()})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	mu.Lock()
	defer mu.Unlock()
	return results, firstErr
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}

func recordErr(mu *sync.Mutex, dst *error, err error) {
	mu.Lock()
	if *dst == nil {
		*dst = err
	}
	mu.Unlock()
}

// ListManifests finds check manifests under root. A file path is returned
// as-is; a directory is walked for *.toml entries, sorted for stable runs.
func ListManifests(root string) ([]string, error) {
	info, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(info)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{info}, nil
	}

	var paths []string
	err = filepath.WalkDir(info, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != info {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
