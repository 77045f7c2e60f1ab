package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/host"
	"github.com/GriffinCanCode/framewidget/internal/widget"
)

type summaryResponse struct {
	ID       string          `json:"id"`
	Address  string          `json:"address"`
	Expanded bool            `json:"expanded"`
	Width    string          `json:"width"`
	Height   string          `json:"height"`
	Controls map[string]bool `json:"controls"`
	Revision uint64          `json:"revision"`
}

func setupTestRouter(t *testing.T, opts host.Options) (*gin.Engine, *host.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := host.NewManager(func(l *zap.Logger) control.Control {
		return widget.New(widget.DefaultConfig()).WithLogger(l)
	}, opts, nil)
	t.Cleanup(manager.Close)

	router := gin.New()
	NewHandlers(manager, nil).Register(router)
	return router, manager
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func mount(t *testing.T, router *gin.Engine, params map[string]any) summaryResponse {
	t.Helper()
	var body any
	if params != nil {
		body = gin.H{"parameters": params}
	}
	w := do(router, http.MethodPost, "/widgets", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sum summaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	return sum
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})

	w := do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, float64(0), resp["widgets"])
}

func TestMountWithoutBody(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})

	sum := mount(t, router, nil)
	assert.True(t, strings.HasPrefix(sum.ID, "wgt_"))
	assert.Empty(t, sum.Address)
	assert.Equal(t, "100%", sum.Width)
	assert.Equal(t, "300px", sum.Height)
	assert.False(t, sum.Expanded)
}

func TestMountWithParameters(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})

	sum := mount(t, router, map[string]any{
		widget.PropURLPart1:           "https://a.com/",
		widget.PropURLPart2:           "page?x=1",
		widget.PropQueryStringName:    "q",
		widget.PropQueryStringValue:   "hello world",
		widget.PropHeight:             420,
		widget.PropEnableOpenFullPage: false,
	})

	assert.Equal(t, "https://a.com/page?x=1&q=hello%20world", sum.Address)
	assert.Equal(t, "420px", sum.Height)
	assert.False(t, sum.Controls[widget.ControlExpand])
	assert.True(t, sum.Controls[widget.ControlNewTab])
}

func TestMountInvalidJSON(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})

	req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestMountRejectsOversizedBody(t *testing.T) {
	router, manager := setupTestRouter(t, host.Options{})

	big := `{"parameters":{"UrlValue":"` + strings.Repeat("a", MaxBodySize) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 0, manager.Count())
}

func TestUpdateRejectsInvalidParameters(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, nil)

	w := do(router, http.MethodPut, "/widgets/"+sum.ID+"/parameters", gin.H{
		"parameters": gin.H{"UrlValue": strings.Repeat("a", control.MaxValueLength+1)},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid parameters")
}

func TestMountLimit(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{MaxInstances: 1})

	mount(t, router, nil)
	w := do(router, http.MethodPost, "/widgets", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListWidgets(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})

	w := do(router, http.MethodGet, "/widgets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"widgets": [], "count": 0}`, w.Body.String())

	first := mount(t, router, nil)
	second := mount(t, router, nil)

	w = do(router, http.MethodGet, "/widgets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Widgets []summaryResponse `json:"widgets"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, first.ID, resp.Widgets[0].ID)
	assert.Equal(t, second.ID, resp.Widgets[1].ID)
}

func TestGetWidgetNotFound(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})

	tests := []struct {
		name string
		path string
	}{
		{"malformed id", "/widgets/nope"},
		{"wrong prefix", "/widgets/app_01HZY8N4W8K3Q7T2E6ABCDEF12"},
		{"unknown id", "/widgets/wgt_01HZY8N4W8K3Q7T2E6ABCDEF12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestGetDocument(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, map[string]any{widget.PropURLValue: "https://example.com"})

	w := do(router, http.MethodGet, "/widgets/"+sum.ID+"/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	src, ok := doc.Find("iframe").Attr("src")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", src)
	assert.Equal(t, "Open in New Tab", doc.Find(`[data-control="new-tab"]`).Text())
}

func TestUpdateParameters(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, nil)
	path := "/widgets/" + sum.ID + "/parameters"

	w := do(router, http.MethodPut, path, gin.H{"parameters": gin.H{
		widget.PropURLValue: "https://x.org",
		widget.PropWidth:    "640",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated summaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "https://x.org", updated.Address)
	assert.Equal(t, "640px", updated.Width)
	assert.Equal(t, uint64(2), updated.Revision)

	w = do(router, http.MethodPut, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "snapshot body is required")
}

func TestActivateControls(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, map[string]any{widget.PropURLValue: "https://example.com"})
	base := "/widgets/" + sum.ID + "/controls/"

	type activateResponse struct {
		Widget     summaryResponse  `json:"widget"`
		Navigation *host.Navigation `json:"navigation"`
	}
	activate := func(name string) (int, activateResponse) {
		w := do(router, http.MethodPost, base+name, nil)
		var resp activateResponse
		if w.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w.Code, resp
	}

	code, resp := activate(widget.ControlNewTab)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Navigation)
	assert.Equal(t, "https://example.com", resp.Navigation.URL)
	assert.Equal(t, "_blank", resp.Navigation.Target)

	code, _ = activate(widget.ControlExit)
	assert.Equal(t, http.StatusConflict, code)

	code, resp = activate(widget.ControlExpand)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, resp.Navigation)
	assert.True(t, resp.Widget.Expanded)

	code, resp = activate(widget.ControlExit)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Widget.Expanded)

	code, _ = activate("launch")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetOutputs(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, nil)

	w := do(router, http.MethodGet, "/widgets/"+sum.ID+"/outputs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestDestroyWidget(t *testing.T) {
	router, manager := setupTestRouter(t, host.Options{})
	sum := mount(t, router, nil)
	path := "/widgets/" + sum.ID

	w := do(router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, manager.Count())

	w = do(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, path+"/document", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{host.ErrNotFound, http.StatusNotFound},
		{host.ErrUnknownControl, http.StatusBadRequest},
		{fmt.Errorf("%w: empty parameter name", control.ErrInvalidParameters), http.StatusBadRequest},
		{host.ErrControlHidden, http.StatusConflict},
		{host.ErrLimitReached, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestGetDocumentConditional(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, map[string]any{widget.PropURLValue: "https://example.com"})
	path := "/widgets/" + sum.ID + "/document"

	w := do(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// A configuration change yields a new validator
	w = do(router, http.MethodPut, "/widgets/"+sum.ID+"/parameters", gin.H{"parameters": gin.H{widget.PropURLValue: "https://other.example"}})
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, etag, w.Header().Get("ETag"))
}

func TestGetDocumentGzip(t *testing.T) {
	router, _ := setupTestRouter(t, host.Options{})
	sum := mount(t, router, map[string]any{widget.PropURLValue: "https://example.com/" + strings.Repeat("a", 2048)})

	req := httptest.NewRequest(http.MethodGet, "/widgets/"+sum.ID+"/document", nil)
	req.Header.Set("Accept-Encoding", "br, gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<iframe")
}

func TestAcceptsGzip(t *testing.T) {
	assert.True(t, acceptsGzip("gzip"))
	assert.True(t, acceptsGzip("deflate, GZIP;q=0.5"))
	assert.False(t, acceptsGzip("gzip;q=0"))
	assert.False(t, acceptsGzip("gzip;q=0.0"))
	assert.False(t, acceptsGzip("gzip; q=0.00"))
	assert.False(t, acceptsGzip("gzip;q=bogus"))
	assert.True(t, acceptsGzip("gzip;q=0.001"))
	assert.True(t, acceptsGzip("gzip; Q=1"))
	assert.False(t, acceptsGzip("br"))
	assert.False(t, acceptsGzip(""))
}
