// Package parallel partitions rectangles into disjoint row intervals and
// runs an operation on each interval concurrently.
//
// Every row of the bounds is visited by exactly one invocation, and the
// caller blocks until all intervals are done:
//
//	err := parallel.Rows(dst.Bounds(), parallel.DefaultSettings(), func(rows parallel.RowInterval) error {
//		for y := rows.Min; y < rows.Max; y++ {
//			processRow(y)
//		}
//		return nil
//	})
package parallel

import (
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-imaging/imaging/buffer"
)

// RowInterval is the half-open row range [Min, Max).
type RowInterval struct {
	Min, Max int
}

// Height returns the number of rows in the interval.
func (r RowInterval) Height() int {
	return r.Max - r.Min
}

// Settings bounds how work is split.
type Settings struct {
	// MaxDegreeOfParallelism caps the number of intervals running at once
	// and the number of intervals produced. Values <= 0 mean GOMAXPROCS.
	MaxDegreeOfParallelism int
	// MinimumRowsPerTask keeps intervals from getting too small.
	// Values <= 0 mean 1.
	MinimumRowsPerTask int
}

// DefaultSettings uses GOMAXPROCS workers and at least one row per task.
func DefaultSettings() Settings {
	return Settings{MaxDegreeOfParallelism: runtime.GOMAXPROCS(0), MinimumRowsPerTask: 1}
}

func (s Settings) finalized() Settings {
	if s.MaxDegreeOfParallelism <= 0 {
		s.MaxDegreeOfParallelism = runtime.GOMAXPROCS(0)
	}
	if s.MinimumRowsPerTask <= 0 {
		s.MinimumRowsPerTask = 1
	}
	return s
}

// Partition splits the rows of bounds into contiguous, disjoint intervals
// that together cover every row exactly once.
func Partition(bounds image.Rectangle, s Settings) []RowInterval {
	height := bounds.Dy()
	if height <= 0 || bounds.Dx() <= 0 {
		return nil
	}
	s = s.finalized()

	tasks := min(s.MaxDegreeOfParallelism, (height+s.MinimumRowsPerTask-1)/s.MinimumRowsPerTask)
	step := (height + tasks - 1) / tasks

	out := make([]RowInterval, 0, tasks)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		out = append(out, RowInterval{Min: y, Max: min(y+step, bounds.Max.Y)})
	}
	return out
}

// RowOperation processes one interval.
type RowOperation func(rows RowInterval) error

// Rows runs op once per interval of Partition(bounds, s) and waits for all
// of them. It returns the first error; the remaining intervals still run to
// completion.
func Rows(bounds image.Rectangle, s Settings, op RowOperation) error {
	intervals := Partition(bounds, s)
	switch len(intervals) {
	case 0:
		return nil
	case 1:
		return op(intervals[0])
	}

	var g errgroup.Group
	g.SetLimit(s.finalized().MaxDegreeOfParallelism)
	for _, rows := range intervals {
		g.Go(func() error {
			return op(rows)
		})
	}
	return g.Wait()
}

// BufferedRowOperation processes one interval with a private scratch buffer.
type BufferedRowOperation[T any] func(rows RowInterval, scratch []T) error

// RowsWithBuffer is Rows with a scratch buffer of length elements rented
// from a for each interval. The buffer is disposed when the operation
// returns, whether or not it failed.
func RowsWithBuffer[T any](bounds image.Rectangle, s Settings, a *buffer.Allocator, length int, op BufferedRowOperation[T]) error {
	return Rows(bounds, s, func(rows RowInterval) error {
		owner, err := buffer.Allocate[T](a, length)
		if err != nil {
			return fmt.Errorf("parallel: scratch for rows [%d, %d): %w", rows.Min, rows.Max, err)
		}
		defer owner.Dispose()

		scratch, err := owner.View()
		if err != nil {
			return err
		}
		return op(rows, scratch)
	})
}
