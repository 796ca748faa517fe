package emit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/manifest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleResult() *bundle.Result {
	return &bundle.Result{Outputs: []bundle.Output{
		{Path: "index.js", Kind: bundle.KindEntryPoint, MimeType: "text/javascript;charset=utf-8", Contents: []byte("console.log(1)")},
		{Path: "index.js.map", Kind: bundle.KindSourceMap, MimeType: "application/json;charset=utf-8", Contents: []byte("{}")},
		{Path: "logo.png", Kind: bundle.KindAsset, MimeType: "image/png", Contents: []byte{0x89, 'P', 'N', 'G'}},
	}}
}

var sampleEntries = []manifest.Rewrite{
	{Original: "index.js", Renamed: "static/js/index-1.js"},
	{Original: "index.js.map", Renamed: "static/js/index-1.js.map"},
	{Original: "logo.png", Renamed: "media/logo-2.png"},
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	written, err := Write(context.Background(), dir, sampleResult(), sampleEntries, Options{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, []Written{
		{Path: "static/js/index-1.js", Size: 14},
		{Path: "static/js/index-1.js.map", Size: 2},
		{Path: "media/logo-2.png", Size: 4},
	}, written)

	got, err := os.ReadFile(filepath.Join(dir, "media", "logo-2.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got)

	got, err = os.ReadFile(filepath.Join(dir, "static", "js", "index-1.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(got))
}

func TestWrite_DryRun(t *testing.T) {
	dir := t.TempDir()

	written, err := Write(context.Background(), dir, sampleResult(), sampleEntries, Options{DryRun: true})
	require.NoError(t, err)
	assert.Len(t, written, 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_UnknownOriginal(t *testing.T) {
	_, err := Write(context.Background(), t.TempDir(), sampleResult(),
		[]manifest.Rewrite{{Original: "gone.js", Renamed: "gone.js"}}, Options{})
	assert.ErrorContains(t, err, "gone.js")
}

func TestWrite_Failure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static"), nil, 0o644))

	_, err := Write(context.Background(), dir, sampleResult(), sampleEntries, Options{})
	assert.Error(t, err)
}

func TestWithRetry(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &os.PathError{Op: "write", Path: "x", Err: syscall.EAGAIN}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	permanent := errors.New("permission denied")
	err = withRetry(context.Background(), func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, func() error { return syscall.EBUSY })
	assert.ErrorIs(t, err, context.Canceled)
}
