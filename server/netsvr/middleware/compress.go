package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 壓縮等級。樣本陣列是大量十進位浮點字串，壓縮率很好，預設取速度優先。
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// compressor 持有同一組設定的 writer pool
type compressor struct {
	cfg      CompressConfig
	gzipPool sync.Pool
	zstdPool sync.Pool
}

func (c *compressor) zstdWriter(w io.Writer) (*zstd.Encoder, error) {
	if v := c.zstdPool.Get(); v != nil {
		zw := v.(*zstd.Encoder)
		zw.Reset(w)
		return zw, nil
	}
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(c.cfg.ZstdLevel),
		zstd.WithEncoderConcurrency(1),
	)
}

func (c *compressor) gzipWriter(w io.Writer) (*gzip.Writer, error) {
	if v := c.gzipPool.Get(); v != nil {
		gw := v.(*gzip.Writer)
		gw.Reset(w)
		return gw, nil
	}
	return gzip.NewWriterLevel(w, c.cfg.GzipLevel)
}

// encoder 是 gzip.Writer 與 zstd.Encoder 的共同行為
type encoder interface {
	io.WriteCloser
	Reset(w io.Writer)
}

type compressResponseWriter struct {
	http.ResponseWriter
	w        encoder
	disabled bool // 204/304/1xx 動態取消壓縮
}

func (cw *compressResponseWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.w.Write(b)
}

func (cw *compressResponseWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if isNoBodyStatus(code) {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressResponseWriter) Flush() {
	if !cw.disabled {
		if f, ok := cw.w.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// finish 關閉壓縮器並放回 pool。取消壓縮時先把輸出導向 io.Discard，避免 footer 污染無 body 回應。
func (cw *compressResponseWriter) finish(pool *sync.Pool) {
	if cw.disabled {
		cw.w.Reset(io.Discard)
	}
	_ = cw.w.Close()
	pool.Put(cw.w)
}

// Compression 以預設設定壓縮回應（zstd 優先，其次 gzip）。
var Compression = NewCompression(DefaultCompressConfig)

// NewCompression 建立壓縮 middleware
func NewCompression(cfg CompressConfig) func(http.Handler) http.Handler {
	c := &compressor{cfg: cfg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || isWebSocketUpgrade(r) || w.Header().Get("Content-Encoding") != "" {
				next.ServeHTTP(w, r)
				return
			}

			accept := r.Header.Get("Accept-Encoding")
			var (
				enc  encoder
				pool *sync.Pool
				name string
			)
			switch {
			case strings.Contains(accept, "zstd"):
				zw, err := c.zstdWriter(w)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				enc, pool, name = zw, &c.zstdPool, "zstd"
			case strings.Contains(accept, "gzip"):
				gw, err := c.gzipWriter(w)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				enc, pool, name = gw, &c.gzipPool, "gzip"
			default:
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Encoding", name)
			w.Header().Add("Vary", "Accept-Encoding")
			cw := &compressResponseWriter{ResponseWriter: w, w: enc}
			defer cw.finish(pool)
			next.ServeHTTP(cw, r)
		})
	}
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") ||
		r.Header.Get("Upgrade") != ""
}

func isNoBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}
