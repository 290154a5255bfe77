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

// 📦 Request describes one source-to-destination transfer. It is treated as
// immutable for the duration of the operation.
type Request struct {
	// SourcePath must name an existing, readable regular file
	SourcePath string
	// DestinationPath is created if missing and truncated if present
	DestinationPath string
	// ReportProgress enables progress samples for this transfer
	ReportProgress bool
}

// 📡 Reporter receives progress samples and the terminal outcome of a transfer
type Reporter interface {
	// Progress is invoked zero or more times, monotonically non-decreasing in
	// completed. The final invocation always reports completed == total.
	Progress(completed, total int64)

	// Done is invoked exactly once per transfer, after every handle has been
	// released. A nil error means success.
	Done(err error)
}

// 🪝 Hooks adapts a pair of function values to the Reporter interface.
// Either field may be nil; a nil OnProgress simply receives no samples.
type Hooks struct {
	OnProgress func(completed, total int64)
	OnResult   func(err error)
}

func (h Hooks) Progress(completed, total int64) {
	if h.OnProgress != nil {
		h.OnProgress(completed, total)
	}
}

func (h Hooks) Done(err error) {
	if h.OnResult != nil {
		h.OnResult(err)
	}
}
