package bench

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/crillab/circuitcount/circuit"
	"github.com/crillab/circuitcount/count"
)

// RunOne runs a single counting query against path and returns the
// CSV row describing its outcome. The query runs in its own
// goroutine; if it has not produced a row within timeout, RunOne
// returns a "timeout" row instead and lets the goroutine finish (or
// not) on its own. A zero timeout disables the deadline.
func RunOne(path string, outIdx int, opts count.Options, timeout time.Duration) Row {
	start := time.Now()
	fileBytes, hasFileBytes := statSize(path)

	base := Row{
		Path:         path,
		Backend:      string(opts.Backend),
		Trials:       opts.Trials,
		R:            opts.R,
		Seed:         opts.Seed,
		FileBytes:    fileBytes,
		HasFileBytes: hasFileBytes,
	}

	if timeout > 0 {
		opts.TimeoutMs = int(timeout / time.Millisecond)
	}

	done := make(chan Row, 1)
	go func() {
		done <- runOneInner(path, outIdx, opts, base)
	}()

	if timeout <= 0 {
		row := <-done
		row.WallMs, row.HasWallMs = elapsedMs(start), true
		return row
	}

	select {
	case row := <-done:
		row.WallMs, row.HasWallMs = elapsedMs(start), true
		return row
	case <-time.After(timeout):
		base.Status = "timeout"
		base.WallMs, base.HasWallMs = elapsedMs(start), true
		return base
	}
}

func runOneInner(path string, outIdx int, opts count.Options, base Row) Row {
	row := base
	row.Status = "ok"

	report, err := count.Count(path, outIdx, opts)
	if err != nil {
		if ce, ok := err.(*count.Error); ok {
			switch ce.Kind {
			case count.ErrParse, count.ErrUnsupportedSequential:
				row.Status = "parse_error"
			default:
				row.Status = "solver_error"
			}
		} else {
			row.Status = "solver_error"
		}
		return row
	}

	row.Mode = string(report.Mode)
	row.SolveCalls, row.HasSolveCalls = report.SolveCalls, true
	row.Result, row.HasResult = report.Result, true
	row.M, row.HasM = report.M, true
	row.CNFVars, row.HasCNFVars = report.Vars, true
	row.CNFClauses, row.HasCNFClauses = report.Clauses, true
	row.AigInputs, row.HasAigInputs = report.InputsCOI, true
	row.AigAnds, row.HasAigAnds = report.Ands, true
	row.ConeInputs, row.HasConeInputs = report.InputsCOI, true

	if report.TimedOut {
		row.Status = "timeout"
	}
	return row
}

// RunDataset walks dir for every file matching format, runs RunOne
// against each in path-sorted order, streams each row to a freshly
// created csvPath as it completes, and returns every row collected.
func RunDataset(dir string, outIdx int, format circuit.Format, opts count.Options, timeout time.Duration, csvPath string, progress bool) ([]Row, error) {
	paths, err := discoverPaths(dir, format)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.WriteString(CSVHeader + "\n"); err != nil {
		return nil, err
	}
	if err := f.Sync(); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(paths))
	for _, p := range paths {
		row := RunOne(p, outIdx, opts, timeout)
		if progress {
			os.Stdout.WriteString(progressLine(row) + "\n")
		}
		if _, err := f.WriteString(row.CSVLine() + "\n"); err != nil {
			return rows, err
		}
		if err := f.Sync(); err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func progressLine(r Row) string {
	return "path=" + r.Path +
		" status=" + r.Status +
		" wall_ms=" + optInt64(r.WallMs, r.HasWallMs) +
		" mode=" + r.Mode +
		" result=" + optUint64(r.Result, r.HasResult)
}

func discoverPaths(dir string, format circuit.Format) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if matchesFormat(p, format) {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func matchesFormat(path string, format circuit.Format) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch format {
	case circuit.FormatAAG:
		return ext == ".aag"
	case circuit.FormatBench:
		return ext == ".bench"
	default:
		return ext == ".aag" || ext == ".bench"
	}
}

func statSize(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
