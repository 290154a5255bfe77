// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transfer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zb140/nativefs/pkg/fsio"
	"gitlab.com/tozd/go/errors"
)

func TestEngineNew(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantErr     bool
		errContains string
		check       func(t *testing.T, eng *Engine)
	}{
		{
			name: "defaults",
			opts: Options{},
			check: func(t *testing.T, eng *Engine) {
				assert.Equal(t, DefaultBufferSize, eng.bufSize, "buffer size should default")
				assert.NotNil(t, eng.fs, "filesystem should default to the host")
			},
		},
		{
			name: "custom_buffer_size",
			opts: Options{BufferSize: 1024},
			check: func(t *testing.T, eng *Engine) {
				assert.Equal(t, 1024, eng.bufSize, "buffer size should be honored")
			},
		},
		{
			name:        "negative_buffer_size",
			opts:        Options{BufferSize: -1},
			wantErr:     true,
			errContains: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := New(tt.opts)
			if tt.wantErr {
				require.Error(t, err, "New should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should explain the problem")
				return
			}

			require.NoError(t, err, "New should succeed")
			if tt.check != nil {
				tt.check(t, eng)
			}
		})
	}
}

func TestCopyRoundTrip(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	// odd size so the last chunk is a partial one
	content := make([]byte, 100*1024+13)
	for i := range content {
		content[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(srcPath, content, 0644), "seeding source should succeed")

	eng, err := New(Options{BufferSize: 4096})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath, ReportProgress: true}, rec)
	require.NoError(t, err, "copy should succeed")

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err, "destination should be readable")
	assert.Equal(t, content, got, "destination content should match the source")

	info, err := os.Stat(dstPath)
	require.NoError(t, err, "stat on destination should succeed")
	assert.Equal(t, int64(len(content)), info.Size(), "destination size should match")

	require.Len(t, rec.results, 1, "result callback should fire exactly once")
	assert.NoError(t, rec.results[0], "result should be success")

	require.NotEmpty(t, rec.samples, "progress should have been sampled")
	last := rec.samples[len(rec.samples)-1]
	assert.Equal(t, progressSample{int64(len(content)), int64(len(content))}, last, "final sample should report 100%")

	prev := int64(0)
	for _, s := range rec.samples {
		assert.GreaterOrEqual(t, s.completed, prev, "progress must never go backwards")
		assert.Equal(t, int64(len(content)), s.total, "total should be constant")
		prev = s.completed
	}
}

func TestCopyZeroByteFile(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "empty")
	dstPath := filepath.Join(dir, "empty-copy")

	require.NoError(t, os.WriteFile(srcPath, nil, 0644), "seeding source should succeed")

	eng, err := New(Options{})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath, ReportProgress: true}, rec)
	require.NoError(t, err, "copy should succeed")

	assert.Equal(t, []progressSample{{0, 0}}, rec.samples, "a zero-byte copy reports exactly one (0,0) sample")
	require.Len(t, rec.results, 1, "result callback should fire exactly once")
	assert.NoError(t, rec.results[0], "result should be success")

	info, err := os.Stat(dstPath)
	require.NoError(t, err, "destination should exist")
	assert.Zero(t, info.Size(), "destination should be empty")
}

func TestCopyProgressDisabled(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	content := bytes.Repeat([]byte("nativefs"), 8192)
	require.NoError(t, os.WriteFile(srcPath, content, 0644), "seeding source should succeed")

	eng, err := New(Options{BufferSize: 1024})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath}, rec)
	require.NoError(t, err, "copy should succeed")

	assert.Empty(t, rec.samples, "no progress samples without opt-in")
	require.Len(t, rec.results, 1, "result callback is mandatory regardless")
	assert.NoError(t, rec.results[0], "result should be success")

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err, "destination should be readable")
	assert.Equal(t, content, got, "content should still be copied correctly")
}

func TestCopySamplingPolicy(t *testing.T) {
	ctx := testContext(t)

	content := bytes.Repeat([]byte{0xab}, 1<<20)
	src := sourceFake(content, 1)
	dst := destFake(1)

	fsys := &MockFS{}
	fsys.On("OpenRead", "/data/src").Return(src, nil)
	fsys.On("OpenWrite", "/data/dst", os.FileMode(0644)).Return(dst, nil)

	eng, err := New(Options{FS: fsys, BufferSize: 16 * 1024})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: "/data/src", DestinationPath: "/data/dst", ReportProgress: true}, rec)
	require.NoError(t, err, "copy should succeed")

	// Each 16 KiB chunk exceeds the 1% threshold (10485 bytes), so all 64
	// chunks report, followed by the unconditional final sample.
	require.Len(t, rec.samples, 65, "one sample per chunk plus the final one")
	assert.Equal(t, progressSample{16384, 1 << 20}, rec.samples[0], "first sample should be one chunk in")
	assert.Equal(t, progressSample{1 << 20, 1 << 20}, rec.samples[64], "last sample should report 100%")

	assert.Equal(t, content, dst.written.Bytes(), "destination should carry every byte")
	assert.Equal(t, 1, src.closeCount, "source handle should close exactly once")
	assert.Equal(t, 1, dst.closeCount, "destination handle should close exactly once")
}

func TestCopyMissingSource(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "missing.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	eng, err := New(Options{})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath, ReportProgress: true}, rec)
	require.Error(t, err, "copy from a missing source should fail")
	assert.True(t, fsio.IsNotExist(err), "error should be not-exist class")
	assert.Contains(t, err.Error(), "opening source", "error should name the failing step")

	require.Len(t, rec.results, 1, "result callback should fire exactly once")
	assert.Equal(t, err, rec.results[0], "callback and return value should agree")
	assert.Empty(t, rec.samples, "no progress samples on a precondition failure")

	_, statErr := os.Stat(dstPath)
	assert.True(t, os.IsNotExist(statErr), "no destination file should be left behind")
}

func TestCopyWriteFailureCleanup(t *testing.T) {
	ctx := testContext(t)

	content := bytes.Repeat([]byte{0x42}, 64*1024)
	src := sourceFake(content, 1)
	dst := destFake(1)
	dst.writeErr = errors.New("no space left on device")
	dst.writeErrAfter = 32 * 1024

	fsys := &MockFS{}
	fsys.On("OpenRead", "/data/src").Return(src, nil)
	fsys.On("OpenWrite", "/data/dst", os.FileMode(0644)).Return(dst, nil)
	fsys.On("Remove", "/data/dst").Return(nil)

	eng, err := New(Options{FS: fsys, BufferSize: 16 * 1024})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: "/data/src", DestinationPath: "/data/dst", ReportProgress: true}, rec)
	require.Error(t, err, "copy should fail on the injected write error")
	assert.Contains(t, err.Error(), "writing to destination", "error should name the failing step")
	assert.Contains(t, err.Error(), "no space left on device", "error should carry the platform description")

	fsys.AssertCalled(t, "Remove", "/data/dst")
	fsys.AssertNotCalled(t, "Remove", "/data/src")

	assert.Equal(t, 1, src.closeCount, "source handle should close exactly once")
	assert.Equal(t, 1, dst.closeCount, "destination handle should close exactly once")

	require.Len(t, rec.results, 1, "result callback should fire exactly once")
	assert.Equal(t, err, rec.results[0], "callback and return value should agree")
}

func TestCopyReadFailureCleanup(t *testing.T) {
	ctx := testContext(t)

	content := bytes.Repeat([]byte{0x42}, 64*1024)
	src := sourceFake(content, 1)
	src.readErr = errors.New("input/output error")
	src.readErrAfter = 16 * 1024
	dst := destFake(1)

	fsys := &MockFS{}
	fsys.On("OpenRead", "/data/src").Return(src, nil)
	fsys.On("OpenWrite", "/data/dst", os.FileMode(0644)).Return(dst, nil)
	fsys.On("Remove", "/data/dst").Return(nil)

	eng, err := New(Options{FS: fsys, BufferSize: 16 * 1024})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: "/data/src", DestinationPath: "/data/dst"}, rec)
	require.Error(t, err, "copy should fail on the injected read error")
	assert.Contains(t, err.Error(), "reading from source", "error should name the failing step")

	fsys.AssertCalled(t, "Remove", "/data/dst")
	assert.Equal(t, 1, src.closeCount, "source handle should close exactly once")
	assert.Equal(t, 1, dst.closeCount, "destination handle should close exactly once")

	require.Len(t, rec.results, 1, "result callback should fire exactly once")
	assert.Equal(t, err, rec.results[0], "callback and return value should agree")
}

func TestCopySyncFailureCleanup(t *testing.T) {
	ctx := testContext(t)

	content := bytes.Repeat([]byte{0x42}, 8*1024)
	src := sourceFake(content, 1)
	dst := destFake(1)
	dst.syncErr = errors.New("injected flush failure")

	fsys := &MockFS{}
	fsys.On("OpenRead", "/data/src").Return(src, nil)
	fsys.On("OpenWrite", "/data/dst", os.FileMode(0644)).Return(dst, nil)
	fsys.On("Remove", "/data/dst").Return(nil)

	eng, err := New(Options{FS: fsys, BufferSize: 4096})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: "/data/src", DestinationPath: "/data/dst"}, rec)
	require.Error(t, err, "copy should fail when the durability barrier fails")
	assert.Contains(t, err.Error(), "flushing destination", "error should name the failing step")

	fsys.AssertCalled(t, "Remove", "/data/dst")
	assert.Equal(t, 1, src.closeCount, "source handle should close exactly once")
	assert.Equal(t, 1, dst.closeCount, "destination handle should close exactly once")
}

func TestCopyShortWrites(t *testing.T) {
	ctx := testContext(t)

	content := bytes.Repeat([]byte("abcdefgh"), 1250) // 10000 bytes
	src := sourceFake(content, 1)
	dst := destFake(1)
	dst.shortWrites = true

	fsys := &MockFS{}
	fsys.On("OpenRead", "/data/src").Return(src, nil)
	fsys.On("OpenWrite", "/data/dst", os.FileMode(0644)).Return(dst, nil)

	eng, err := New(Options{FS: fsys, BufferSize: 4096})
	require.NoError(t, err, "New should succeed")

	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: "/data/src", DestinationPath: "/data/dst"}, rec)
	require.NoError(t, err, "short writes are continuations, not failures")

	assert.Equal(t, content, dst.written.Bytes(), "every byte should land despite short writes")
	require.Len(t, rec.results, 1, "result callback should fire exactly once")
	assert.NoError(t, rec.results[0], "result should be success")
}

func TestCopyRetryAfterFailure(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	eng, err := New(Options{})
	require.NoError(t, err, "New should succeed")

	// First attempt fails: the source does not exist yet
	rec := &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath}, rec)
	require.Error(t, err, "first attempt should fail")

	_, statErr := os.Stat(dstPath)
	require.True(t, os.IsNotExist(statErr), "failure should leave the destination clean")

	// Resolve the cause and retry with a fresh invocation
	content := []byte("now it exists")
	require.NoError(t, os.WriteFile(srcPath, content, 0644), "seeding source should succeed")

	rec = &recorder{}
	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath}, rec)
	require.NoError(t, err, "retry should succeed once the cause is resolved")

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err, "destination should be readable")
	assert.Equal(t, content, got, "retry should produce a complete copy")
}

func TestCopyNilReporter(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	require.NoError(t, os.WriteFile(srcPath, []byte("quiet"), 0644), "seeding source should succeed")

	eng, err := New(Options{})
	require.NoError(t, err, "New should succeed")

	err = eng.Copy(ctx, Request{SourcePath: srcPath, DestinationPath: dstPath}, nil)
	require.NoError(t, err, "a nil reporter should be tolerated")

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err, "destination should be readable")
	assert.Equal(t, "quiet", string(got), "content should be copied")
}

func TestWriteFull(t *testing.T) {
	tests := []struct {
		name        string
		file        *fakeFile
		chunk       []byte
		wantErr     bool
		errContains string
	}{
		{
			name:  "whole_chunk_accepted",
			file:  &fakeFile{},
			chunk: []byte("all at once"),
		},
		{
			name:  "short_writes_accumulate",
			file:  &fakeFile{shortWrites: true},
			chunk: bytes.Repeat([]byte{0x7f}, 1000),
		},
		{
			name:        "write_error_propagates",
			file:        &fakeFile{writeErr: errors.New("broken pipe"), writeErrAfter: 0},
			chunk:       []byte("doomed"),
			wantErr:     true,
			errContains: "broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeFull(tt.file, tt.chunk)
			if tt.wantErr {
				require.Error(t, err, "writeFull should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should carry the cause")
				return
			}

			require.NoError(t, err, "writeFull should succeed")
			assert.Equal(t, tt.chunk, tt.file.written.Bytes(), "every byte should be flushed")
		})
	}
}

func TestWriteFullStuckWriter(t *testing.T) {
	err := writeFull(&stuckFile{}, []byte("never lands"))
	require.Error(t, err, "a writer that accepts nothing should not loop forever")
	assert.Contains(t, err.Error(), "no progress", "error should name the condition")
}

// stuckFile accepts no bytes and reports no error, the pathological writer
type stuckFile struct {
	fakeFile
}

func (*stuckFile) Write([]byte) (int, error) {
	return 0, nil
}
