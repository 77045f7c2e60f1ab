// Package ws streams rendered widget documents over WebSocket.
//
// A client connects to /widgets/:id/stream and receives JSON messages
// encoded with sonic:
//   - render: {"type":"render","widget_id":...,"revision":N,"html":...}
//   - destroyed: sent once when the instance is destroyed, before close
//
// The first render message carries the document as it is when the client
// connects. Slow clients skip intermediate revisions but always receive the
// newest one. Client messages are read only to service ping/pong.
//
// Example Usage:
//
//	handler := ws.NewHandler(manager, logger).WithMetrics(metrics)
//	router.GET("/widgets/:id/stream", handler.HandleConnection)
package ws
