package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/omrscan/scoring"
)

func TestProcess_OneReportPerInput(t *testing.T) {
	paths := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}

	grade := func(path string) *scoring.Report {
		if path == "b.jpg" {
			return scoring.NewErrorReport(SheetID(path), path, 2, 2, scoring.Strict,
				errors.New("cannot decode image"))
		}
		return &scoring.Report{SheetID: SheetID(path), SheetPath: path, TotalScore: 75}
	}

	res := Process(context.Background(), paths, 2, grade)

	require.Len(t, res.Reports, len(paths))
	assert.NotEmpty(t, res.RunID)

	// Input order survives concurrent grading.
	for i, path := range paths {
		assert.Equal(t, path, res.Reports[i].SheetPath, "index %d", i)
	}

	assert.True(t, res.Reports[1].Failed())
	assert.Equal(t, 0.0, res.Reports[1].TotalScore)
	assert.Equal(t, 4, res.Summary.Count)
	assert.Equal(t, 1, res.Summary.Failed)
}

func TestProcess_BoundsConcurrency(t *testing.T) {
	var active, peak int64

	grade := func(path string) *scoring.Report {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		defer atomic.AddInt64(&active, -1)
		return &scoring.Report{SheetID: SheetID(path)}
	}

	paths := make([]string, 50)
	for i := range paths {
		paths[i] = "sheet.jpg"
	}

	res := Process(context.Background(), paths, 3, grade)
	require.Len(t, res.Reports, 50)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3))
}

func TestProcess_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Process(ctx, []string{"a.jpg", "b.jpg"}, 1, func(path string) *scoring.Report {
		t.Error("Grading must not run after cancellation")
		return nil
	})

	require.Len(t, res.Reports, 2)
	for _, r := range res.Reports {
		assert.True(t, r.Failed())
	}
	assert.Equal(t, 2, res.Summary.Failed)
}

func TestProcess_Empty(t *testing.T) {
	res := Process(context.Background(), nil, 4, func(string) *scoring.Report {
		t.Error("Grading must not run for an empty batch")
		return nil
	})
	assert.Empty(t, res.Reports)
	assert.Equal(t, 0, res.Summary.Count)
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "c.txt", "d.JPEG", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	paths, err := ListImages(dir)
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.True(t, strings.HasSuffix(paths[0], "a.jpg"))
	assert.True(t, strings.HasSuffix(paths[1], "b.png"))
	assert.True(t, strings.HasSuffix(paths[2], "d.JPEG"))
}

func TestListImages_MissingDir(t *testing.T) {
	_, err := ListImages(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSheetID(t *testing.T) {
	assert.Equal(t, "student_042", SheetID("/scans/student_042.jpg"))
	assert.Equal(t, "sheet", SheetID("sheet.png"))
	assert.Equal(t, "archive.tar", SheetID("archive.tar.gz"))
}
