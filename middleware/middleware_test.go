package middleware

import (
	"net/http"
	"net/http/httptest"
	"sport-reel-generator/application/ports/outbound"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []map[string]interface{}
	warns   int
}

func (r *recordingLogger) record(fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, fields)
}

func (r *recordingLogger) Info(string) {}
func (r *recordingLogger) Error(error, string) {}
func (r *recordingLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (r *recordingLogger) Debug(string) {}
func (r *recordingLogger) DebugWithFields(string, map[string]interface{}) {}
func (r *recordingLogger) Warn(string) {}
func (r *recordingLogger) With(map[string]interface{}) outbound.LoggerPort { return r }

func (r *recordingLogger) InfoWithFields(_ string, fields map[string]interface{}) {
	r.record(fields)
}

func (r *recordingLogger) WarnWithFields(_ string, fields map[string]interface{}) {
	r.mu.Lock()
	r.warns++
	r.mu.Unlock()
	r.record(fields)
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestTimeout(50 * time.Millisecond))

	var deadline time.Time
	var hasDeadline bool
	router.GET("/slow", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		<-c.Request.Context().Done()
		c.Status(http.StatusGatewayTimeout)
	})

	start := time.Now()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))

	if !hasDeadline || deadline.Sub(start) > time.Second {
		t.Fatalf("deadline = %v (set: %v)", deadline, hasDeadline)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRequestTimeout_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestTimeout(0))
	router.GET("/", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); ok {
			t.Error("unexpected deadline")
		}
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := &recordingLogger{}
	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, path := range []string{"/ok", "/broken"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(logger.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(logger.entries))
	}
	if logger.entries[0]["path"] != "/ok" || logger.entries[0]["status"] != http.StatusOK {
		t.Errorf("first entry = %v", logger.entries[0])
	}
	if logger.entries[1]["status"] != http.StatusBadGateway || logger.warns != 1 {
		t.Errorf("second entry = %v, warns = %d", logger.entries[1], logger.warns)
	}
}
