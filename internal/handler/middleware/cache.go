package middleware

import (
	"bytes"
	"net/http"

	"equipment-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CatalogCache caches public catalog GETs (categories, equipment). Availability and
// reservations must never go through it. A non-positive TTL disables caching.
type CatalogCache struct {
	store   *cache.Cache
	enabled bool
}

func NewCatalogCache(cfg config.CacheConfig) *CatalogCache {
	return &CatalogCache{
		store:   cache.New(cfg.CatalogTTL, cfg.CleanupInterval),
		enabled: cfg.CatalogTTL > 0,
	}
}

func (cc *CatalogCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cc.enabled || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if resp, found := cc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			_, _ = c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if blw.Status() >= 200 && blw.Status() < 300 {
			cc.store.SetDefault(key, cachedResponse{
				status:  blw.Status(),
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			})
		}
	}
}

// Invalidate drops every cached catalog page after a successful admin write.
func (cc *CatalogCache) Invalidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			cc.store.Flush()
		}
	}
}
