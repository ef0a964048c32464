package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"progress_charts/internal/config"
	"progress_charts/internal/repository"
	"progress_charts/internal/service"
	"progress_charts/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type configItem struct {
	TargetID string `json:"targetId"`
	Kind     string `json:"kind"`
	Config   struct {
		Type string `json:"type"`
		Data struct {
			Labels   []string `json:"labels"`
			Datasets []struct {
				Data []float64 `json:"data"`
			} `json:"datasets"`
		} `json:"data"`
	} `json:"config"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Surface:   config.SurfaceConfig{Backend: util.SurfaceBackendMemory},
		Storage:   config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		Render:    config.RenderConfig{Width: 400, Height: 300, Format: "png"},
		JWT:       config.JWTConfig{Secret: testSecret},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}

	a := &App{Config: cfg}
	a.build(cfg, repository.NewMemorySurfaceRepository(), &service.LocalStorageProvider{Config: &cfg.Storage})
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func editorToken(t *testing.T) string {
	t.Helper()
	token, err := util.GenerateJWT("dashboard", util.RoleEditor, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func do(a *App, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestChartDefaults(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/api/charts/defaults", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []configItem
	decode(t, w, &items)
	require.Len(t, items, 3)
	assert.Equal(t, "daily-words-chart", items[0].TargetID)
	assert.Equal(t, "bar", items[0].Config.Type)
	assert.Equal(t, "mastery-chart", items[1].TargetID)
	assert.Equal(t, "pie", items[1].Config.Type)
	assert.Equal(t, "learning-trend-chart", items[2].TargetID)
	assert.Equal(t, "line", items[2].Config.Type)
	assert.Equal(t, []float64{250, 480, 690, 850, 1020, 1254}, items[2].Config.Data.Datasets[0].Data)
}

func TestChartConfigs(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodPost, "/api/charts/configs", `{"mastered_words":50,"learning_words":30}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []configItem
	decode(t, w, &items)
	require.Len(t, items, 3)
	assert.Equal(t, []float64{50, 30, 3}, items[1].Config.Data.Datasets[0].Data)
	assert.Equal(t, []string{"已掌握", "学习中", "未掌握"}, items[1].Config.Data.Labels)
}

func TestChartConfigsEmptyBody(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodPost, "/api/charts/configs", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []configItem
	decode(t, w, &items)
	assert.Equal(t, []float64{87, 10, 3}, items[1].Config.Data.Datasets[0].Data)
}

func TestChartConfigsRejectsBadInput(t *testing.T) {
	a := newTestApp(t)

	for name, body := range map[string]string{
		"length mismatch": `{"weekly_trend":{"labels":["W1","W2"],"data":[1]}}`,
		"negative count":  `{"learning_words":-1}`,
		"malformed":       `{"daily_words":`,
		"wrong type":      `{"mastered_words":"many"}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(a, http.MethodPost, "/api/charts/configs", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w, nil)
			assert.Equal(t, http.StatusBadRequest, env.Code)
		})
	}
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, do(a, http.MethodPost, "/api/charts/render", "{}", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(a, http.MethodPost, "/api/surfaces", `{"id":"mastery-chart"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(a, http.MethodDelete, "/api/surfaces/mastery-chart", "", "bad-token").Code)

	viewer, err := util.GenerateJWT("someone", "viewer", testSecret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(a, http.MethodPost, "/api/surfaces", `{"id":"mastery-chart"}`, viewer).Code)
}

func TestRenderFlow(t *testing.T) {
	a := newTestApp(t)
	token := editorToken(t)

	w := do(a, http.MethodPost, "/api/surfaces", `{"id":"mastery-chart"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(a, http.MethodPost, "/api/surfaces", `{"id":"mastery-chart"}`, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 尚未渲染
	w = do(a, http.MethodGet, "/api/surfaces/mastery-chart/image", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(a, http.MethodPost, "/api/charts/render", `{"mastered_words":50,"learning_words":30}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list struct {
		List []struct {
			TargetID string `json:"targetId"`
			Kind     string `json:"kind"`
			ImageURL string `json:"imageUrl"`
		} `json:"list"`
		Total int `json:"total"`
	}
	decode(t, w, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "mastery-chart", list.List[0].TargetID)
	assert.Equal(t, "pie", list.List[0].Kind)
	assert.Equal(t, "/uploads/charts/mastery-chart.png", list.List[0].ImageURL)

	w = do(a, http.MethodGet, "/api/surfaces/mastery-chart/image", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(a, http.MethodGet, "/uploads/charts/mastery-chart.png", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(a, http.MethodDelete, "/api/surfaces/mastery-chart", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(a, http.MethodGet, "/api/surfaces/mastery-chart", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSurfaceRegistrationValidation(t *testing.T) {
	a := newTestApp(t)
	token := editorToken(t)

	assert.Equal(t, http.StatusBadRequest, do(a, http.MethodPost, "/api/surfaces", `{}`, token).Code)
	assert.Equal(t, http.StatusBadRequest, do(a, http.MethodPost, "/api/surfaces", `{"id":"bad id"}`, token).Code)
	assert.Equal(t, http.StatusBadRequest, do(a, http.MethodPost, "/api/surfaces", `{"id":"daily","format":"gif"}`, token).Code)
	assert.Equal(t, http.StatusBadRequest, do(a, http.MethodPost, "/api/surfaces", `{"id":"daily","width":50}`, token).Code)

	w := do(a, http.MethodGet, "/api/surfaces", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list util.ListResponse
	decode(t, w, &list)
	assert.Equal(t, 0, list.Total)
}

func TestConfigReloadUpdatesRenderDefaults(t *testing.T) {
	a := newTestApp(t)

	next := *a.Config
	next.Render = config.RenderConfig{Width: 1024, Height: 512, Format: "svg"}
	a.applyConfig(&next)

	got := a.services.renderer.Defaults()
	assert.Equal(t, 1024, got.Width)
	assert.Equal(t, 512, got.Height)
	assert.Equal(t, "svg", string(got.Format))
}
