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

// Package httperr 是 HTTP 邊界層的錯誤映射。放在 server/* 以免 errs 依賴 net/http。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/floatrand/errs"
)

// StatusCode 將錯誤映射成 HTTP status code。
//
//   - ctx timeout/cancel → 504/408（即使被 wrap 也能命中）
//   - errs.Warn         → 400（請求/參數問題）
//   - 其他              → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	if errs.Level(err) == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Body 錯誤回應的 JSON 格式
type Body struct {
	Error string `json:"error"`
	Level string `json:"level,omitempty"`
}

// Errs 依錯誤寫回 status 與 JSON body；err 為 nil 時不做事。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	msg := err.Error()
	if e, ok := errs.AsErr(err); ok {
		msg = e.Message
		if e.Extra != "" {
			msg += ": " + e.Extra
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Error: msg, Level: errs.Level(err).String()})
}

// Log 只記錄值得注意的錯誤：請求生命週期問題記 Warn，5xx 記 Error，一般 4xx 交給 access log。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	if status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout {
		log.Warn(msg, slog.Any("err", err))
	} else if status >= 500 {
		log.Error(msg, slog.Any("err", err))
	}
}
