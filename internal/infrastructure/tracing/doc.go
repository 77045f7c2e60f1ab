/*
Package tracing provides lightweight request tracing for the widget host.

Each HTTP request gets a span. Trace context is propagated with the
X-Trace-ID and X-Span-ID headers, so an embedding page can correlate its own
requests with host activity. Finished spans are buffered and written to the
zap logger by a single collector goroutine.

# Usage

	tracer := tracing.New("framewidget", logger)
	defer tracer.Close()
	router.Use(tracing.Middleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "render")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

IDs are ULIDs, so spans sort by start time.
*/
package tracing
