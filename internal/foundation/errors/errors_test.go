package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "kbsite.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "kbsite.yaml", file)
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		err := ConfigError("bad lang").Build()
		assert.True(t, err.IsFatal())
		assert.False(t, err.CanRetry())
		assert.True(t, HasCategory(err, CategoryConfig))

		fsErr := FileSystemError("read").Build()
		assert.True(t, fsErr.CanRetry())
	})

	t.Run("Chain detection", func(t *testing.T) {
		cause := errors.New("permission denied")
		classified := WrapError(cause, CategoryFileSystem, "read document").Build()
		wrapped := fmt.Errorf("sidebar: %w", classified)

		assert.True(t, errors.Is(wrapped, cause))
		assert.True(t, HasCategory(wrapped, CategoryFileSystem))
		assert.Equal(t, CategoryFileSystem, GetCategory(wrapped))
		assert.Equal(t, CategoryInternal, GetCategory(cause))
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := NewError(CategorySearch, "query").Build()
		derived := base.WithContext("q", "llo")

		_, ok := base.Context().Get("q")
		assert.False(t, ok)
		q, ok := derived.Context().GetString("q")
		require.True(t, ok)
		assert.Equal(t, "llo", q)
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"x": 1, "y": 2}
	b := ErrorContext{"y": 3}

	merged := a.Merge(b)
	assert.Equal(t, 1, merged["x"])
	assert.Equal(t, 3, merged["y"])
	assert.Equal(t, 2, a["y"])

	var nilCtx ErrorContext
	assert.Equal(t, b, nilCtx.Merge(b))
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"unclassified", errors.New("boom"), 1},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"not found", NotFoundError("no docs").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"internal", InternalError("bug").Build(), 10},
		{"search", SearchError("index").Build(), 11},
		{"wrapped config", fmt.Errorf("load: %w", ConfigError("bad").Build()), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	quiet := NewCLIErrorAdapter(false, logger)
	err := WrapError(errors.New("EOF"), CategoryConfig, "parse config").WithContext("path", "kbsite.yaml").Build()

	code := quiet.Report(&out, err)
	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: parse config (use -v for details)\n", out.String())
	assert.Contains(t, logs.String(), "path=kbsite.yaml")

	out.Reset()
	verbose := NewCLIErrorAdapter(true, logger)
	verbose.Report(&out, err)
	assert.Contains(t, out.String(), "EOF")
}
