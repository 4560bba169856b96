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

// CompressConfig 壓縮等級
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// encoder 壓縮器的共同行為；gzip.Writer 與 zstd.Encoder 都符合。
type encoder interface {
	io.Writer
	Reset(io.Writer)
	Flush() error
	Close() error
}

type codec struct {
	name string
	pool sync.Pool
}

var (
	zstdCodec = &codec{name: "zstd", pool: sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(DefaultCompressConfig.ZstdLevel),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	}}}
	gzipCodec = &codec{name: "gzip", pool: sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(nil, DefaultCompressConfig.GzipLevel)
		return gw
	}}}
)

func (c *codec) get(w io.Writer) encoder {
	e := c.pool.Get().(encoder)
	e.Reset(w)
	return e
}

func (c *codec) put(e encoder) {
	_ = e.Close()
	c.pool.Put(e)
}

// pick 依 Accept-Encoding 選擇 zstd 優先、其次 gzip。
func pick(accept string) *codec {
	switch {
	case strings.Contains(accept, "zstd"):
		return zstdCodec
	case strings.Contains(accept, "gzip"):
		return gzipCodec
	}
	return nil
}

type compressWriter struct {
	http.ResponseWriter
	enc      encoder
	disabled bool // 1xx/204/304 沒有 body，改為直寫
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	h := cw.Header()
	h.Del("Content-Length")
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", http.DetectContentType(b))
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) WriteHeader(code int) {
	h := cw.Header()
	h.Del("Content-Length")
	if (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified {
		cw.disabled = true
		h.Del("Content-Encoding")
		h.Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Flush() {
	if !cw.disabled {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// Compression 依 Accept-Encoding 以 zstd 或 gzip 壓縮回應；HEAD 與 upgrade 請求直接放行。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrade := r.Header.Get("Upgrade") != "" ||
			strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
		if r.Method == http.MethodHead || upgrade || w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}
		c := pick(r.Header.Get("Accept-Encoding"))
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", c.name)
		w.Header().Add("Vary", "Accept-Encoding")
		enc := c.get(w)
		cw := &compressWriter{ResponseWriter: w, enc: enc}
		defer func() {
			// 沒有 body 的回應不能帶上壓縮尾端
			if cw.disabled {
				enc.Reset(io.Discard)
			}
			c.put(enc)
		}()
		next.ServeHTTP(cw, r)
	})
}
