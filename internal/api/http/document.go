package http

import (
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/crypto/blake2b"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	gzipMinSize     = 1024
)

func writeDocument(c *gin.Context, page string) {
	etag := documentETag(page)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	c.Header("Vary", "Accept-Encoding")

	if matchesETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	if len(page) < gzipMinSize || !acceptsGzip(c.GetHeader("Accept-Encoding")) {
		c.Data(http.StatusOK, htmlContentType, []byte(page))
		return
	}

	c.Header("Content-Type", htmlContentType)
	c.Header("Content-Encoding", "gzip")
	c.Status(http.StatusOK)
	gz, _ := gzip.NewWriterLevel(c.Writer, gzip.BestSpeed)
	if _, err := gz.Write([]byte(page)); err != nil {
		_ = c.Error(err)
	}
	if err := gz.Close(); err != nil {
		_ = c.Error(err)
	}
}

// documentETag is a strong validator over the rendered bytes.
func documentETag(page string) string {
	sum := blake2b.Sum256([]byte(page))
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		return qualityOf(params) > 0
	}
	return false
}

// qualityOf returns the q-value in an Accept-Encoding parameter list. A
// missing q means 1; a malformed one means not acceptable.
func qualityOf(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 || q > 1 {
			return 0
		}
		return q
	}
	return 1
}
