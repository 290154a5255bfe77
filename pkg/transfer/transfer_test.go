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
	"context"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/zb140/nativefs/pkg/fsio"
)

// testContext returns a context carrying a logger that writes through t
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🔧 MockFS is a mock implementation of the fsio.FS interface
type MockFS struct {
	mock.Mock
}

func (m *MockFS) OpenRead(path string) (fsio.File, error) {
	result := m.Called(path)
	f, _ := result.Get(0).(fsio.File)
	return f, result.Error(1)
}

func (m *MockFS) OpenWrite(path string, mode os.FileMode) (fsio.File, error) {
	result := m.Called(path, mode)
	f, _ := result.Get(0).(fsio.File)
	return f, result.Error(1)
}

func (m *MockFS) Remove(path string) error {
	result := m.Called(path)
	return result.Error(0)
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	result := m.Called(oldpath, newpath)
	return result.Error(0)
}

// 🧪 fakeFile is an in-memory fsio.File with scriptable failure points
type fakeFile struct {
	meta fsio.Metadata

	// read side
	reader       *bytes.Reader // source content, nil for write-side files
	readErr      error         // returned once readErrAfter bytes were served
	readErrAfter int64
	served       int64

	// write side
	written       bytes.Buffer // everything the engine flushed
	shortWrites   bool         // accept at most half of each chunk
	writeErr      error        // returned once writeErrAfter bytes landed
	writeErrAfter int64
	syncErr       error

	statErr    error
	closeCount int
}

func (f *fakeFile) Read(p []byte) (int, error) {
	if f.readErr != nil {
		if f.served >= f.readErrAfter {
			return 0, f.readErr
		}
		// stop exactly at the failure point so it lands between chunks
		if remaining := f.readErrAfter - f.served; remaining < int64(len(p)) {
			p = p[:remaining]
		}
	}
	if f.reader == nil {
		return 0, io.EOF
	}
	n, err := f.reader.Read(p)
	f.served += int64(n)
	return n, err
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.writeErr != nil && int64(f.written.Len()) >= f.writeErrAfter {
		return 0, f.writeErr
	}
	n := len(p)
	if f.shortWrites && n > 1 {
		n /= 2
	}
	f.written.Write(p[:n])
	return n, nil
}

func (f *fakeFile) Close() error {
	f.closeCount++
	return nil
}

func (f *fakeFile) Sync() error {
	return f.syncErr
}

func (f *fakeFile) Stat() (fsio.Metadata, error) {
	if f.statErr != nil {
		return fsio.Metadata{}, f.statErr
	}
	return f.meta, nil
}

// sourceFake builds a readable fake holding content
func sourceFake(content []byte, device uint64) *fakeFile {
	return &fakeFile{
		meta: fsio.Metadata{
			Size:      int64(len(content)),
			Mode:      0644,
			Device:    device,
			HasDevice: true,
		},
		reader: bytes.NewReader(content),
	}
}

// destFake builds a writable fake on the given device
func destFake(device uint64) *fakeFile {
	return &fakeFile{
		meta: fsio.Metadata{
			Device:    device,
			HasDevice: true,
		},
	}
}

// 📼 recorder captures every callback one transfer makes
type recorder struct {
	samples []progressSample
	results []error
}

type progressSample struct {
	completed int64
	total     int64
}

func (r *recorder) Progress(completed, total int64) {
	r.samples = append(r.samples, progressSample{completed, total})
}

func (r *recorder) Done(err error) {
	r.results = append(r.results, err)
}
