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

package fsio

import (
	"io"
	"io/fs"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 📄 Metadata is the cached metadata of an open file handle
type Metadata struct {
	Size      int64       // Size of the file in bytes
	Mode      os.FileMode // Permission bits
	Device    uint64      // Identifier of the device holding the file
	HasDevice bool        // Whether Device is meaningful on this platform
}

// 📁 File is one open file handle
type File interface {
	io.Reader
	io.Writer
	io.Closer

	// Sync forces written data to stable storage
	Sync() error

	// Stat returns metadata for the open handle
	Stat() (Metadata, error)
}

// 💾 FS is the set of path-level operations transfers need
type FS interface {
	// OpenRead opens an existing file for reading
	OpenRead(path string) (File, error)

	// OpenWrite creates or truncates a file for writing with the given mode bits
	OpenWrite(path string, mode os.FileMode) (File, error)

	// Remove deletes the file at path
	Remove(path string) error

	// Rename moves oldpath to newpath, replacing newpath if it already exists
	Rename(oldpath, newpath string) error
}

// 🔍 IsNotExist reports whether err says a file is missing
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
