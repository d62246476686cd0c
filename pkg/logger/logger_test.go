package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1, err := Setup(Options{})
	require.NoError(t, err)
	logger2, err := Setup(Options{Level: -1})
	require.NoError(t, err)
	assert.Same(t, logger1, logger2)
}

func TestNewWritesJSONWithBuildFields(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(0, &buf)
	lgr.Info("submitted form", RouteKey, "accounts.store")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "submitted form", entry[MessageKey])
	assert.Equal(t, "accounts.store", entry[RouteKey])
	assert.Contains(t, entry, VersionKey)
	assert.Contains(t, entry, TimeStampKey)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(0, &buf)
	lgr.V(1).Info("debug detail")
	assert.Empty(t, buf.String(), "V(1) is below info")

	verbose := New(-1, &buf)
	verbose.V(1).Info("debug detail")
	assert.Contains(t, buf.String(), "debug detail")
}

func TestWithLoggerAddsLoggerToContext(t *testing.T) {
	lgr := logr.Discard()
	ctx := WithLogger(context.Background(), &lgr)
	assert.Same(t, &lgr, FromContext(ctx))
	assert.Equal(t, ctx, WithLogger(ctx, &lgr), "same logger keeps the context")

	other := logr.Discard()
	assert.Same(t, &other, FromContext(WithLogger(ctx, &other)))
}

func TestFromContextFallsBackToGlobalThenNoop(t *testing.T) {
	orig := globalLogrLogger
	defer func() { globalLogrLogger = orig }()

	global := logr.Discard()
	globalLogrLogger = &global
	assert.Same(t, &global, FromContext(context.Background()))
	assert.Same(t, &global, GetGlobalLogger())

	globalLogrLogger = nil
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
	assert.Same(t, &defaultNoopLogger, GetGlobalLogger())
	assert.Same(t, &defaultNoopLogger, GetNoopLogger())
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.ENOTTY}))
	assert.True(t, isIgnorableSyncError(fmt.Errorf("sync: %w", syscall.EINVAL)))
	assert.True(t, isIgnorableSyncError(errors.New("The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	lgr := logr.Discard()
	got := WithValues(&lgr, PageKey, "letters")
	require.NotNil(t, got)
	assert.NotSame(t, &lgr, got)
}
