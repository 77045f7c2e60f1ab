package tracing

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Middleware opens one span per request. Incoming X-Trace-ID and X-Span-ID
// headers continue an existing trace; the IDs of the new span are echoed in
// the response.
func Middleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := c.GetHeader(TraceHeader); traceID != "" {
			ctx = WithSpan(ctx, TraceID(traceID), SpanID(c.GetHeader(SpanHeader)))
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		if wid := c.Param("id"); wid != "" {
			span.SetTag("widget_id", wid)
		}
		if ctrl := c.Param("control"); ctrl != "" {
			span.SetTag("control", ctrl)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, string(span.TraceID))
		c.Header(SpanHeader, string(span.SpanID))

		c.Next()

		span.StatusCode = c.Writer.Status()
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		} else if span.StatusCode >= 500 {
			span.SetError(errors.New("server error"))
		}
		span.Finish()
		tracer.Submit(span)
	}
}
