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

// 📈 sampler applies the progress sampling policy: report when the bytes
// accumulated since the last report exceed one percent of the total, and
// always end a successful transfer with one (total, total) sample. The
// threshold bounds callback volume to roughly one hundred per transfer no
// matter how small the chunks are.
type sampler struct {
	rep       Reporter
	enabled   bool
	total     int64
	threshold int64 // total / 100; zero makes every chunk report
	completed int64
	pending   int64 // bytes since the last report
}

func newSampler(rep Reporter, total int64, enabled bool) *sampler {
	return &sampler{
		rep:       rep,
		enabled:   enabled,
		total:     total,
		threshold: total / 100,
	}
}

// add records n transferred bytes, reporting and resetting the accumulator
// when it crosses the threshold
func (s *sampler) add(n int64) {
	s.completed += n
	if !s.enabled {
		return
	}
	s.pending += n
	if s.pending > s.threshold {
		s.rep.Progress(s.completed, s.total)
		s.pending = 0
	}
}

// finish emits the unconditional final sample. Zero-byte transfers report
// (0, 0) here, their only sample.
func (s *sampler) finish() {
	if !s.enabled {
		return
	}
	s.rep.Progress(s.total, s.total)
}
