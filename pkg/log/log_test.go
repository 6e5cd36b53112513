package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/YuminosukeSato/structid/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLoggerCapturesLevels(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("debug message", "key1", "value1", "number", 42)
	logger.Info("info message", OperationKey, OperationFit)
	logger.Warn("warning message")
	logger.Error("error message", fmt.Errorf("boom"), StageKey, "lambda")

	require.NotEmpty(t, buffer.String())
	assert.True(t, logger.ContainsMessage("debug message"))
	assert.True(t, logger.ContainsMessage("error message"))
	assert.True(t, logger.ContainsField("key1", "value1"))
	assert.True(t, logger.ContainsField("number", 42.0))
	assert.True(t, logger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, logger.ContainsField(StageKey, "lambda"))
}

func TestTestLoggerLevelFilter(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestTestLoggerWithSharesBuffer(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)
	child := logger.With(ComponentKey, "identification", OutputKey, 1)

	child.Info("stage done", StageKey, "psi")

	assert.True(t, logger.ContainsField(ComponentKey, "identification"))
	assert.True(t, logger.ContainsField(OutputKey, 1.0))

	logger.Clear()
	assert.False(t, logger.ContainsMessage("stage done"))
}

func TestZerologLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("not written")
	logger.With(ComponentKey, "linear").Info("solved",
		MethodKey, "jacobi",
		IterationKey, 12,
		NormedErrorKey, []float64{0.1, 0.2},
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "solved", entry["message"])
	assert.Equal(t, "linear", entry[ComponentKey])
	assert.Equal(t, "jacobi", entry[MethodKey])
	assert.Equal(t, 12.0, entry[IterationKey])
	assert.Equal(t, []interface{}{0.1, 0.2}, entry[NormedErrorKey])
}

func TestZerologLoggerTypedErrorDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := errors.NewConvergenceError("gauss-seidel", 50, 0.25, 1e-6)
	logger.Error("fit failed", err, StageKey, "a")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Contains(t, entry["error"], "failed to converge")

	detail, ok := entry["error_detail"].(map[string]interface{})
	require.True(t, ok, "expected structured error detail, got %v", entry)
	assert.Equal(t, "gauss-seidel", detail["algorithm"])
	assert.Equal(t, 50.0, detail["iterations"])
	assert.Equal(t, "ConvergenceError", detail["type"])
}

func TestZerologLoggerEnabled(t *testing.T) {
	logger := NewZerologLogger(&bytes.Buffer{}, LevelWarn)

	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestZerologProviderLevelReachesExistingLoggers(t *testing.T) {
	var buf bytes.Buffer
	p := newZerologProvider(&buf, LevelInfo)

	// SetLevel より前に取得したロガーにも新しいレベルが効くこと
	logger := p.GetLoggerWithName("linear")
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))

	p.SetLevel(LevelDebug)
	logger.Debug("shown", IterationKey, 3)
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.True(t, logger.Enabled(context.Background(), LevelDebug))

	buf.Reset()
	p.SetLevel(LevelError)
	logger.With(OutputKey, 0).Warn("dropped")
	assert.Empty(t, buf.String())
}

func TestProviderSwap(t *testing.T) {
	p, buffer := NewTestLoggerProvider(LevelDebug)
	SetProvider(p)
	defer SetProvider(nil)

	GetLoggerWithName("linear").Info("hello")

	assert.Contains(t, buffer.String(), `"ml.component":"linear"`)
}

func TestWarningsRouteThroughProvider(t *testing.T) {
	p, buffer := NewTestLoggerProvider(LevelDebug)
	SetProvider(p)
	defer SetProvider(nil)

	errors.Warn(errors.NewIllConditionedWarning("gauss-seidel", "L", 1e18))

	assert.Contains(t, buffer.String(), "ill-conditioned")
	assert.Contains(t, buffer.String(), "IllConditionedWarning")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
