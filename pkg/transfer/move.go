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

	"github.com/rs/zerolog"
	"github.com/zb140/nativefs/pkg/fsio"
	"gitlab.com/tozd/go/errors"
)

// 🚀 Move relocates req.SourcePath to req.DestinationPath. When both paths
// live on one device the move is a metadata-only rename with no byte copy;
// otherwise it degrades to a streamed copy that removes the source once the
// destination is durable. Outcome delivery matches Copy: rep.Done exactly
// once, handles released first, source left intact on failure.
func (e *Engine) Move(ctx context.Context, req Request, rep Reporter) error {
	if rep == nil {
		rep = Hooks{}
	}
	err := e.move(ctx, req, rep)
	rep.Done(err)
	return err
}

func (e *Engine) move(ctx context.Context, req Request, rep Reporter) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("source", req.SourcePath).
		Str("destination", req.DestinationPath).
		Msg("starting move")

	src, err := e.fs.OpenRead(req.SourcePath)
	if err != nil {
		return e.fail(ctx, nil, nil, req.DestinationPath, errors.Errorf("opening source: %w", err))
	}
	gsrc := &handleGuard{file: src}
	defer gsrc.close()

	srcMeta, err := src.Stat()
	if err != nil {
		return e.fail(ctx, gsrc, nil, req.DestinationPath, errors.Errorf("reading source metadata: %w", err))
	}

	dst, err := e.fs.OpenWrite(req.DestinationPath, srcMeta.Mode)
	if err != nil {
		return e.fail(ctx, gsrc, nil, req.DestinationPath, errors.Errorf("opening destination: %w", err))
	}
	gdst := &handleGuard{file: dst}
	defer gdst.close()

	dstMeta, err := dst.Stat()
	if err != nil {
		return e.fail(ctx, gsrc, gdst, req.DestinationPath, errors.Errorf("reading destination metadata: %w", err))
	}

	if sameDevice(srcMeta, dstMeta) {
		return e.rename(ctx, gsrc, gdst, srcMeta.Size, req, rep)
	}

	// Different devices: no atomic primitive exists, stream and delete
	logger.Debug().
		Uint64("source_device", srcMeta.Device).
		Uint64("destination_device", dstMeta.Device).
		Msg("cross-device move, falling back to copy")

	return e.stream(ctx, gsrc, gdst, srcMeta.Size, req, rep, true)
}

// 🏎️ rename is the same-device fast path. The handles existed only for the
// metadata query; both are closed untouched before the source is renamed
// over the destination in one atomic operation.
func (e *Engine) rename(ctx context.Context, src, dst *handleGuard, total int64, req Request, rep Reporter) error {
	src.close()
	dst.close()

	if err := e.fs.Rename(req.SourcePath, req.DestinationPath); err != nil {
		return e.fail(ctx, src, dst, req.DestinationPath, errors.Errorf("renaming source to destination: %w", err))
	}

	// No bytes streamed, but the caller still observes 100%
	if req.ReportProgress {
		rep.Progress(total, total)
	}

	zerolog.Ctx(ctx).Debug().Int64("bytes", total).Msg("move satisfied by rename")
	return nil
}

// sameDevice reports whether both files are known to live on one device.
// Unknown devices take the copy fallback, which is correct everywhere.
func sameDevice(a, b fsio.Metadata) bool {
	return a.HasDevice && b.HasDevice && a.Device == b.Device
}
