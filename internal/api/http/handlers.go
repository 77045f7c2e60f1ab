package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/host"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/logging"
	"github.com/GriffinCanCode/framewidget/internal/shared/id"
)

const serviceName = "framewidget"

// MaxBodySize bounds request bodies.
const MaxBodySize = 1 << 20

// Handlers contains all HTTP handlers
type Handlers struct {
	manager *host.Manager
	logger  *logging.Logger
	started time.Time
}

// ParametersRequest carries a complete parameter snapshot.
type ParametersRequest struct {
	Parameters control.Parameters `json:"parameters"`
}

// NewHandlers creates a new handler set
func NewHandlers(manager *host.Manager, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		manager: manager,
		logger:  logger,
		started: time.Now(),
	}
}

// Register adds the widget routes to r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	widgets := r.Group("/widgets")
	widgets.POST("", h.MountWidget)
	widgets.GET("", h.ListWidgets)
	widgets.GET("/:id", h.GetWidget)
	widgets.GET("/:id/document", h.GetDocument)
	widgets.PUT("/:id/parameters", h.UpdateParameters)
	widgets.POST("/:id/controls/:control", h.ActivateControl)
	widgets.GET("/:id/outputs", h.GetOutputs)
	widgets.DELETE("/:id", h.DestroyWidget)
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"widgets": h.manager.Count(),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// MountWidget mounts a new instance. The body is optional; when present its
// parameters are delivered as the first snapshot.
func (h *Handlers) MountWidget(c *gin.Context) {
	var req ParametersRequest
	if !bind(c, &req, true) {
		return
	}

	summary, err := h.manager.Mount(req.Parameters)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// ListWidgets lists all mounted instances
func (h *Handlers) ListWidgets(c *gin.Context) {
	widgets := h.manager.List()
	if widgets == nil {
		widgets = []host.Summary{}
	}
	c.JSON(http.StatusOK, gin.H{
		"widgets": widgets,
		"count":   len(widgets),
	})
}

// GetWidget returns an instance summary
func (h *Handlers) GetWidget(c *gin.Context) {
	wid, ok := h.widgetID(c)
	if !ok {
		return
	}
	summary, err := h.manager.Get(wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDocument returns the instance's rendered page. Responses carry an ETag
// and are gzipped for clients that accept it.
func (h *Handlers) GetDocument(c *gin.Context) {
	wid, ok := h.widgetID(c)
	if !ok {
		return
	}
	page, err := h.manager.Document(wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	writeDocument(c, page)
}

// UpdateParameters delivers a complete parameter snapshot
func (h *Handlers) UpdateParameters(c *gin.Context) {
	wid, ok := h.widgetID(c)
	if !ok {
		return
	}

	var req ParametersRequest
	if !bind(c, &req, false) {
		return
	}

	summary, err := h.manager.Update(wid, req.Parameters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ActivateControl clicks one of the instance's controls
func (h *Handlers) ActivateControl(c *gin.Context) {
	wid, ok := h.widgetID(c)
	if !ok {
		return
	}

	summary, nav, err := h.manager.Activate(wid, c.Param("control"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"widget":     summary,
		"navigation": nav,
	})
}

// GetOutputs returns the values the instance reports
func (h *Handlers) GetOutputs(c *gin.Context) {
	wid, ok := h.widgetID(c)
	if !ok {
		return
	}
	outputs, err := h.manager.Outputs(wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	if outputs == nil {
		outputs = control.Outputs{}
	}
	c.JSON(http.StatusOK, outputs)
}

// DestroyWidget tears an instance down
func (h *Handlers) DestroyWidget(c *gin.Context) {
	wid, ok := h.widgetID(c)
	if !ok {
		return
	}
	if err := h.manager.Destroy(wid); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      wid.String(),
	})
}

// widgetID parses the :id parameter. Malformed IDs cannot name an instance,
// so they are reported as not found.
func (h *Handlers) widgetID(c *gin.Context) (id.WidgetID, bool) {
	wid, err := id.ParseWidgetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": host.ErrNotFound.Error()})
		return "", false
	}
	return wid, true
}

// bind decodes a JSON body of at most MaxBodySize bytes. allowEmpty accepts
// a missing body as the zero value.
func bind(c *gin.Context, req any, allowEmpty bool) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodySize)
	err := c.ShouldBindJSON(req)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", MaxBodySize)})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
	return false
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Widget operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor maps host errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, host.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, host.ErrUnknownControl), errors.Is(err, control.ErrInvalidParameters):
		return http.StatusBadRequest
	case errors.Is(err, host.ErrControlHidden):
		return http.StatusConflict
	case errors.Is(err, host.ErrLimitReached):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
