// Copyright 2025 Zintix Labs
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

package v1

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"math"
	"math/big"
	"net/http"
	"time"

	"github.com/zintix-labs/floatrand"
	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/sdk/core"
	"github.com/zintix-labs/floatrand/server/httperr"
	"github.com/zintix-labs/floatrand/server/svrcfg"
	"github.com/zintix-labs/floatrand/sim"
)

// verifyDefaultN /v1/verify 未指定 n 時的取樣數
const verifyDefaultN = 10_000

// SampleHandler 提供 /v1/range、/v1/normal、/v1/verify。
type SampleHandler struct {
	log        *slog.Logger
	maxSamples int
	maxVerify  int
	workers    int
	timeout    time.Duration
}

func NewSampleHandler(sCfg *svrcfg.SvrCfg) (*SampleHandler, error) {
	if sCfg == nil || sCfg.Log == nil {
		return nil, errs.NewFatal("server config must be validated before building handlers")
	}
	return &SampleHandler{
		log:        sCfg.Log,
		maxSamples: sCfg.MaxSamples,
		maxVerify:  sCfg.MaxVerify,
		workers:    max(1, sCfg.Workers),
		timeout:    sCfg.RequestTimeout,
	}, nil
}

type sampleResponse struct {
	Interval string    `json:"interval,omitempty"`
	Method   string    `json:"method,omitempty"`
	Bits     int       `json:"bits"`
	Seed     *int64    `json:"seed,omitempty"`
	Values   []float64 `json:"values"`
}

// Range 在區間內均勻取樣 n 個值
func (h *SampleHandler) Range(w http.ResponseWriter, q *http.Request) {
	req := new(rangeRequest)
	if err := decode(q, req, req.fromQuery); err != nil {
		httperr.Errs(w, err)
		return
	}
	req.defaults(1)
	if err := checkN(req.N, h.maxSamples); err != nil {
		httperr.Errs(w, err)
		return
	}
	draw, err := sim.RangeJob{Interval: req.Interval, Bits: req.Bits}.Drawer()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(q.Context(), h.timeout)
	defer cancel()
	values, err := sim.Sample(ctx, h.source(req.Seed), draw, req.N)
	if err != nil {
		httperr.Log(h.log, "range sample failed", err)
		httperr.Errs(w, err)
		return
	}
	h.writeJSON(w, sampleResponse{Interval: req.Interval, Bits: req.Bits, Seed: req.Seed, Values: values})
}

// Normal 取樣 n 個常態值
func (h *SampleHandler) Normal(w http.ResponseWriter, q *http.Request) {
	req := new(normalRequest)
	if err := decode(q, req, req.fromQuery); err != nil {
		httperr.Errs(w, err)
		return
	}
	req.defaults(1)
	if err := checkN(req.N, h.maxSamples); err != nil {
		httperr.Errs(w, err)
		return
	}
	draw, err := h.normalJob(req).Drawer()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(q.Context(), h.timeout)
	defer cancel()
	values, err := sim.Sample(ctx, h.source(req.Seed), draw, req.N)
	if err != nil {
		httperr.Log(h.log, "normal sample failed", err)
		httperr.Errs(w, err)
		return
	}
	h.writeJSON(w, sampleResponse{Method: req.Method, Bits: req.Bits, Seed: req.Seed, Values: values})
}

// Verify 批次取樣並回傳統計報表。
//
// query 帶 interval（POST 時用 ?kind=range）驗證區間均勻取樣（UniformReport），否則驗證常態取樣（NormalReport）。
func (h *SampleHandler) Verify(w http.ResponseWriter, q *http.Request) {
	type verifyResponse struct {
		Seed     int64 `json:"seed"`
		Workers  int   `json:"workers"`
		Report   any   `json:"report"`
		UsedTime int64 `json:"used_ms"`
	}

	isRange := q.URL.Query().Has("interval") || q.URL.Query().Get("kind") == "range"
	var (
		rreq *rangeRequest
		nreq *normalRequest
		seed *int64
		n    int
	)
	if isRange {
		rreq = new(rangeRequest)
		if err := decode(q, rreq, rreq.fromQuery); err != nil {
			httperr.Errs(w, err)
			return
		}
		rreq.defaults(verifyDefaultN)
		seed, n = rreq.Seed, rreq.N
	} else {
		nreq = new(normalRequest)
		if err := decode(q, nreq, nreq.fromQuery); err != nil {
			httperr.Errs(w, err)
			return
		}
		nreq.defaults(verifyDefaultN)
		seed, n = nreq.Seed, nreq.N
	}
	if err := checkN(n, h.maxVerify); err != nil {
		httperr.Errs(w, err)
		return
	}
	if seed == nil {
		s, err := randomSeed()
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		seed = &s
	}

	ctx, cancel := context.WithTimeout(q.Context(), h.timeout)
	defer cancel()
	s := sim.New(*seed)
	resp := verifyResponse{Seed: *seed, Workers: h.workers}
	var (
		used time.Duration
		err  error
	)
	if isRange {
		resp.Report, used, err = s.Range(ctx, sim.RangeJob{Interval: rreq.Interval, Bits: rreq.Bits, Bins: rreq.Bins}, n, h.workers)
	} else {
		resp.Report, used, err = s.Normal(ctx, h.normalJob(nreq), n, h.workers)
	}
	if err != nil {
		httperr.Log(h.log, "verify failed", err)
		httperr.Errs(w, err)
		return
	}
	resp.UsedTime = used.Milliseconds()
	h.writeJSON(w, resp)
}

func (h *SampleHandler) normalJob(req *normalRequest) sim.NormalJob {
	return sim.NormalJob{Method: sim.Method(req.Method), Bits: req.Bits, Mean: req.Mean, Sigma: *req.Sigma}
}

// source 有 seed 時建立可重現的產生器，否則使用行程共用的產生器。
func (h *SampleHandler) source(seed *int64) *floatrand.Rand {
	if seed != nil {
		return floatrand.New(*seed)
	}
	return floatrand.With(core.Shared())
}

// writeJSON 先編碼到記憶體，保證不會寫到一半才發生錯誤
func (h *SampleHandler) writeJSON(w http.ResponseWriter, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		err = errs.Wrap(err, "encode response")
		httperr.Log(h.log, "encode response failed", err)
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

func randomSeed() (int64, error) {
	rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "seed generate failed")
	}
	return rnd.Int64(), nil
}
