package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "online_queue/docs"
	"online_queue/internal/auth"
	"online_queue/internal/config"
	"online_queue/internal/handlers"
	"online_queue/internal/logger"
	"online_queue/internal/queue"
	"online_queue/internal/storage"
	"online_queue/internal/ws"
)

type testAPI struct {
	handler  http.Handler
	hub      *ws.Hub
	svc      *queue.Service
	verifier *auth.JWTVerifier
	routes   gin.RoutesInfo
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "queue.db"), nil)
	require.NoError(t, err)
	require.NoError(t, storage.AutoMigrate(db))
	t.Cleanup(func() { _ = storage.Close(db) })

	l := logger.Discard()
	hub := ws.NewHub(16, l)
	t.Cleanup(hub.Close)

	svc := queue.NewService(storage.NewQueueStore(db), hub, queue.DefaultOptions(), l)
	verifier := auth.NewJWTVerifier("test-secret")

	srv := New(config.TestEnv, l)
	srv.SetupAPIRoutes(Routes{
		Queues: handlers.New(svc, hub, 50*time.Millisecond, l),
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return storage.Ping(ctx, db)
		}, hub),
		Hub:      hub,
		Verifier: verifier,
		Logger:   l,
	})

	return &testAPI{
		handler:  srv.Handler(),
		hub:      hub,
		svc:      svc,
		verifier: verifier,
		routes:   srv.engine.Routes(),
	}
}

func (a *testAPI) token(t *testing.T, userID int64) string {
	t.Helper()
	token, err := a.verifier.IssueToken(userID, time.Hour)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct{ Code string } `json:"error"`
}

func (a *testAPI) do(t *testing.T, method, path string, userID int64, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("Authorization", "Bearer "+a.token(t, userID))
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestAPI_QueueFlow(t *testing.T) {
	api := setupTestAPI(t)

	code, env := api.do(t, http.MethodPost, "/api/queues", 1, gin.H{"name": "lunch"})
	require.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"queue_id":1}`, string(env.Data))

	code, env = api.do(t, http.MethodPost, "/api/queues/1/join", 42, nil)
	require.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"entry_id":1}`, string(env.Data))

	code, _ = api.do(t, http.MethodPost, "/api/queues/1/join", 42, gin.H{"user_id": 7})
	require.Equal(t, http.StatusCreated, code)

	code, env = api.do(t, http.MethodGet, "/api/queues", 42, nil)
	require.Equal(t, http.StatusOK, code)
	var queues []struct {
		ID      int64 `json:"id"`
		Name    string
		Members []struct {
			ID     int64 `json:"id"`
			UserID int64 `json:"user_id"`
		}
	}
	require.NoError(t, json.Unmarshal(env.Data, &queues))
	require.Len(t, queues, 1)
	require.Len(t, queues[0].Members, 2)
	assert.Equal(t, int64(42), queues[0].Members[0].UserID)
	assert.Equal(t, int64(7), queues[0].Members[1].UserID)

	code, env = api.do(t, http.MethodGet, "/api/profile/queues", 7, nil)
	require.Equal(t, http.StatusOK, code)
	var items []queue.UserQueueItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Position)

	code, env = api.do(t, http.MethodPost, "/api/queues/1/skip", 42, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, `"Skipped turn"`, string(env.Data))

	code, env = api.do(t, http.MethodPost, "/api/queues/1/swap", 9, gin.H{"target_entry_id": 2})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, `"Swapped places"`, string(env.Data))

	code, env = api.do(t, http.MethodDelete, "/api/queues/1/leave", 42, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, `"Left queue"`, string(env.Data))

	all, err := api.svc.ListQueues(context.Background())
	require.NoError(t, err)
	var users []int64
	for _, m := range all[0].Members {
		users = append(users, m.UserID)
	}
	assert.Equal(t, []int64{7, 9}, users)
}

func TestAPI_ErrorMapping(t *testing.T) {
	api := setupTestAPI(t)
	_, err := api.svc.CreateQueue(context.Background(), "q")
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"empty name", http.MethodPost, "/api/queues", gin.H{"name": ""}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad queue id", http.MethodPost, "/api/queues/abc/join", nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown queue", http.MethodPost, "/api/queues/99/join", nil, http.StatusNotFound, "NOT_FOUND"},
		{"skip non-member", http.MethodPost, "/api/queues/1/skip", nil, http.StatusNotFound, "NOT_FOUND"},
		{"swap without target", http.MethodPost, "/api/queues/1/swap", gin.H{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"swap missing target", http.MethodPost, "/api/queues/1/swap", gin.H{"target_entry_id": 5}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := api.do(t, tc.method, tc.path, 3, tc.body)
			assert.Equal(t, tc.status, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestAPI_UnauthorizedNeverReachesEngine(t *testing.T) {
	api := setupTestAPI(t)
	sub := api.hub.Subscribe()
	defer api.hub.Unsubscribe(sub)

	code, env := api.do(t, http.MethodPost, "/api/queues", 0, gin.H{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	queues, err := api.svc.ListQueues(context.Background())
	require.NoError(t, err)
	assert.Empty(t, queues)
	assert.Equal(t, uint64(0), api.hub.Stats().Published)
}

func TestAPI_AuthCheck(t *testing.T) {
	api := setupTestAPI(t)

	code, env := api.do(t, http.MethodGet, "/api/authcheck", 5, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"auth":true,"user_id":5}`, string(env.Data))
}

func TestAPI_HealthAndRequestID(t *testing.T) {
	api := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	api.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAPI_SSEReceivesJoin(t *testing.T) {
	api := setupTestAPI(t)
	_, err := api.svc.CreateQueue(context.Background(), "q")
	require.NoError(t, err)

	ts := httptest.NewServer(api.handler)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/queue/updates?token="+api.token(t, 1), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	require.Eventually(t, func() bool { return api.hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	_, err = api.svc.Join(context.Background(), 1, 42)
	require.NoError(t, err)

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream ended before the event")
			if strings.HasPrefix(line, "data:") {
				assert.JSONEq(t, `{"queueId":1}`, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
				cancel()
				assert.Eventually(t, func() bool { return api.hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
				return
			}
		case <-deadline:
			t.Fatal("no event received")
		}
	}
}

func TestAPI_WebSocketReceivesJoin(t *testing.T) {
	api := setupTestAPI(t)
	_, err := api.svc.CreateQueue(context.Background(), "q")
	require.NoError(t, err)

	ts := httptest.NewServer(api.handler)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/queue/updates/ws"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+api.token(t, 1))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return api.hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	_, err = api.svc.Join(context.Background(), 1, 42)
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{"queueId":%d}`, 1), string(msg))
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv := New(config.TestEnv, logger.Discard())
	closed := make(chan struct{})
	srv.OnShutdown(func() { close(closed) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook not called")
	}
}

func TestSwaggerDocCoversEveryRoute(t *testing.T) {
	api := setupTestAPI(t)

	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	for _, route := range api.routes {
		if strings.HasPrefix(route.Path, "/swagger/") {
			continue
		}
		path := strings.ReplaceAll(route.Path, ":id", "{id}")
		methods, ok := spec.Paths[path]
		if assert.True(t, ok, "%s is not documented", route.Path) {
			assert.Contains(t, methods, strings.ToLower(route.Method), "%s %s", route.Method, route.Path)
		}
	}
}
