package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New("framewidget", zap.New(core)), logs
}

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer, _ := newObserved()
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	require.NotEmpty(t, root.TraceID)
	assert.Empty(t, root.ParentID)
	assert.Equal(t, root.TraceID, TraceIDFrom(ctx))
	assert.Equal(t, root.SpanID, SpanIDFrom(ctx))

	child, _ := tracer.StartSpan(ctx, "child")
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.NotEqual(t, root.SpanID, child.SpanID)
}

func TestCloseDrainsSpans(t *testing.T) {
	tracer, logs := newObserved()

	for i := 0; i < 5; i++ {
		span, _ := tracer.StartSpan(context.Background(), "op")
		span.Finish()
		tracer.Submit(span)
	}
	tracer.Close()
	tracer.Close()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Span completed").Len() == 5
	}, time.Second, 10*time.Millisecond)

	span, _ := tracer.StartSpan(context.Background(), "late")
	tracer.Submit(span)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObserved()

	r := gin.New()
	r.Use(Middleware(tracer))
	r.POST("/widgets/:id/controls/:control", func(c *gin.Context) {
		assert.Equal(t, TraceID("trace-1"), TraceIDFrom(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodPost, "/widgets/w1/controls/expand", nil)
	req.Header.Set(TraceHeader, "trace-1")
	req.Header.Set(SpanHeader, "parent-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-1", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))
	assert.NotEqual(t, "parent-1", w.Header().Get(SpanHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	tracer.Close()

	require.Eventually(t, func() bool { return logs.Len() == 2 }, time.Second, 10*time.Millisecond)

	ok := logs.FilterMessage("Span completed").All()
	require.Len(t, ok, 1)
	fields := ok[0].ContextMap()
	assert.Equal(t, "POST /widgets/:id/controls/:control", fields["operation"])
	assert.Equal(t, "w1", fields["widget_id"])
	assert.Equal(t, "expand", fields["control"])
	assert.Equal(t, "parent-1", fields["parent_id"])

	failed := logs.FilterMessage("Span completed with error").All()
	require.Len(t, failed, 1)
	assert.EqualValues(t, http.StatusInternalServerError, failed[0].ContextMap()["status"])
}
