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
	"os"
)

// 🔧 OSFS implements FS directly on the host filesystem
type OSFS struct{}

// 🏭 NewOSFS creates the host-backed filesystem
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (*OSFS) OpenRead(path string) (File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &osFile{f: f}, nil
}

func (*OSFS) OpenWrite(path string, mode os.FileMode) (File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return nil, err
	}
	return &osFile{f: f}, nil
}

func (*OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (*OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// 📂 osFile adapts *os.File to the File interface
type osFile struct {
	f *os.File
}

func (o *osFile) Read(p []byte) (int, error) {
	return o.f.Read(p)
}

func (o *osFile) Write(p []byte) (int, error) {
	return o.f.Write(p)
}

func (o *osFile) Close() error {
	return o.f.Close()
}

func (o *osFile) Sync() error {
	return o.f.Sync()
}

func (o *osFile) Stat() (Metadata, error) {
	info, err := o.f.Stat()
	if err != nil {
		return Metadata{}, err
	}
	dev, ok := fileDevice(o.f)
	return Metadata{
		Size:      info.Size(),
		Mode:      info.Mode(),
		Device:    dev,
		HasDevice: ok,
	}, nil
}
