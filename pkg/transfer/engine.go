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
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zb140/nativefs/pkg/fsio"
	"gitlab.com/tozd/go/errors"
)

// DefaultBufferSize is the chunk size used when Options.BufferSize is zero
const DefaultBufferSize = 16 * 1024

// 🔧 Options contains configuration for the engine
type Options struct {
	// FS supplies the primitive file operations. Defaults to the host filesystem.
	FS fsio.FS
	// BufferSize is the chunk size in bytes for streamed transfers.
	// Defaults to DefaultBufferSize.
	BufferSize int
}

// ⚙️ Engine streams single files between paths, sampling progress and
// cleaning up after failures
type Engine struct {
	fs      fsio.FS
	bufSize int
	buffers sync.Pool
}

// 🏭 New creates an engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.BufferSize < 0 {
		return nil, errors.Errorf("buffer size must not be negative, got %d", opts.BufferSize)
	}
	size := opts.BufferSize
	if size == 0 {
		size = DefaultBufferSize
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = fsio.NewOSFS()
	}
	return &Engine{
		fs:      fsys,
		bufSize: size,
		buffers: sync.Pool{New: func() any {
			buf := make([]byte, size)
			return &buf
		}},
	}, nil
}

// 🚚 Copy duplicates the file at req.SourcePath to req.DestinationPath.
// The outcome reaches rep.Done exactly once, after every handle has been
// released and, on failure, the partial destination removed. The returned
// error mirrors what Done received. There is no cancellation: a started
// copy runs to completion, ctx scopes logging only.
func (e *Engine) Copy(ctx context.Context, req Request, rep Reporter) error {
	if rep == nil {
		rep = Hooks{}
	}
	err := e.copy(ctx, req, rep, false)
	rep.Done(err)
	return err
}

func (e *Engine) copy(ctx context.Context, req Request, rep Reporter, removeSource bool) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("source", req.SourcePath).
		Str("destination", req.DestinationPath).
		Msg("starting copy")

	src, err := e.fs.OpenRead(req.SourcePath)
	if err != nil {
		return e.fail(ctx, nil, nil, req.DestinationPath, errors.Errorf("opening source: %w", err))
	}
	gsrc := &handleGuard{file: src}
	defer gsrc.close()

	meta, err := src.Stat()
	if err != nil {
		return e.fail(ctx, gsrc, nil, req.DestinationPath, errors.Errorf("reading source metadata: %w", err))
	}

	dst, err := e.fs.OpenWrite(req.DestinationPath, meta.Mode)
	if err != nil {
		return e.fail(ctx, gsrc, nil, req.DestinationPath, errors.Errorf("opening destination: %w", err))
	}
	gdst := &handleGuard{file: dst}
	defer gdst.close()

	return e.stream(ctx, gsrc, gdst, meta.Size, req, rep, removeSource)
}

// 🌊 stream pumps src into dst in fixed-size chunks. Copy uses it directly;
// Move uses it as the cross-device fallback with removeSource set, deleting
// the source once the destination is durable.
func (e *Engine) stream(ctx context.Context, src, dst *handleGuard, total int64, req Request, rep Reporter, removeSource bool) error {
	logger := zerolog.Ctx(ctx)

	bufp := e.buffers.Get().(*[]byte)
	defer e.buffers.Put(bufp)
	buf := *bufp

	progress := newSampler(rep, total, req.ReportProgress)

	for {
		n, rerr := src.file.Read(buf)
		if n > 0 {
			if werr := writeFull(dst.file, buf[:n]); werr != nil {
				return e.fail(ctx, src, dst, req.DestinationPath, errors.Errorf("writing to destination: %w", werr))
			}
			progress.add(int64(n))
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return e.fail(ctx, src, dst, req.DestinationPath, errors.Errorf("reading from source: %w", rerr))
		}
	}

	// One final sample so the caller always observes 100%
	progress.finish()

	src.close()

	if err := dst.file.Sync(); err != nil {
		return e.fail(ctx, src, dst, req.DestinationPath, errors.Errorf("flushing destination: %w", err))
	}
	dst.close()

	if removeSource {
		if err := e.fs.Remove(req.SourcePath); err != nil {
			return e.fail(ctx, src, dst, req.DestinationPath, errors.Errorf("removing source after move: %w", err))
		}
	}

	logger.Debug().Int64("bytes", total).Msg("transfer complete")
	return nil
}

// writeFull writes all of chunk, retrying short writes until every byte is
// flushed or the writer fails. A short write with a nil error is a
// continuation, not a failure.
func writeFull(f fsio.File, chunk []byte) error {
	for len(chunk) > 0 {
		n, err := f.Write(chunk)
		if err != nil {
			return err
		}
		if n <= 0 {
			return errors.New("write made no progress")
		}
		chunk = chunk[n:]
	}
	return nil
}

// 🧹 fail releases whatever is still open, then deletes the destination.
// Closing must come first so the removal works on platforms that refuse to
// delete open files. The source is never touched here.
func (e *Engine) fail(ctx context.Context, src, dst *handleGuard, destination string, err error) error {
	src.close()
	dst.close()

	if rmErr := e.fs.Remove(destination); rmErr != nil && !fsio.IsNotExist(rmErr) {
		zerolog.Ctx(ctx).Warn().
			Err(rmErr).
			Str("destination", destination).
			Msg("could not remove partial destination")
	}
	return err
}

// 🔒 handleGuard closes a file exactly once across all exit paths. Close
// errors are not part of a transfer's outcome; durability is established by
// the Sync barrier, not by close.
type handleGuard struct {
	file   fsio.File
	closed bool
}

func (g *handleGuard) close() {
	if g == nil || g.file == nil || g.closed {
		return
	}
	g.closed = true
	_ = g.file.Close()
}
