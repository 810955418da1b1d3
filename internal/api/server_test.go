package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/4wadia/focusflow/internal/app"
	"github.com/4wadia/focusflow/internal/config"
	"github.com/4wadia/focusflow/internal/metrics"
	"github.com/4wadia/focusflow/internal/models"
	"github.com/4wadia/focusflow/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type testServer struct {
	t       *testing.T
	app     *app.App
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	a := app.New(testutil.SetupTestDB(t))
	srv := NewServer(a, NewAuth(testSecret), config.ServerConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return &testServer{t: t, app: a, handler: srv.Handler()}
}

func (s *testServer) do(method, path, owner string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if owner != "" {
		req.Header.Set(echo.HeaderAuthorization, bearer(s.t, owner))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createColumn(owner, title string) models.Column {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/columns", owner, map[string]any{"title": title})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp columnResponse
	decode(s.t, rec, &resp)
	return *resp.Column
}

func (s *testServer) createTask(owner string, body map[string]any) *httptest.ResponseRecorder {
	s.t.Helper()
	return s.do(http.MethodPost, "/api/tasks", owner, body)
}

func (s *testServer) mustCreateTask(owner string, body map[string]any) models.Task {
	s.t.Helper()
	rec := s.createTask(owner, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp taskResponse
	decode(s.t, rec, &resp)
	return *resp.Task
}

func (s *testServer) listTasks(owner, query string) []models.Task {
	s.t.Helper()
	rec := s.do(http.MethodGet, "/api/tasks"+query, owner, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	decode(s.t, rec, &resp)
	return resp.Tasks
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	decode(t, rec, &resp)
	return resp
}

func highTask(columnID, dueTime string) map[string]any {
	return map[string]any{
		"columnId": columnID,
		"title":    "Deep work " + dueTime,
		"date":     testutil.TestDate,
		"dueTime":  dueTime,
		"duration": "30m",
		"priority": "High",
	}
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPatch, "/api/tasks/x/toggle"},
		{http.MethodGet, "/api/columns"},
		{http.MethodGet, "/api/metrics"},
	}
	for _, r := range routes {
		rec := s.do(r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
		assert.Equal(t, CodeUnauthorized, errorBody(t, rec).Code)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")

	first := s.mustCreateTask("alice", map[string]any{
		"columnId": col.ID,
		"title":    "  Write report  ",
		"date":     testutil.TestDate,
		"tags":     []string{"work", " work ", ""},
	})
	second := s.mustCreateTask("alice", map[string]any{
		"columnId": col.ID,
		"title":    "Review",
		"date":     "2024-03-16",
	})

	assert.Equal(t, "Write report", first.Title)
	assert.Equal(t, models.PriorityMedium, first.Priority)
	assert.False(t, first.IsCompleted)
	assert.Equal(t, []string{"work"}, first.Tags)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)

	all := s.listTasks("alice", "")
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	byDate := s.listTasks("alice", "?date="+testutil.TestDate)
	require.Len(t, byDate, 1)
	assert.Equal(t, first.ID, byDate[0].ID)

	assert.Empty(t, s.listTasks("bob", ""))
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")

	tests := []struct {
		name string
		body map[string]any
		code int
	}{
		{"empty title", map[string]any{"columnId": col.ID, "title": "  "}, http.StatusBadRequest},
		{"bad date", map[string]any{"columnId": col.ID, "title": "x", "date": "15/03/2024"}, http.StatusBadRequest},
		{"bad priority", map[string]any{"columnId": col.ID, "title": "x", "priority": "Urgent"}, http.StatusBadRequest},
		{"missing column", map[string]any{"title": "x"}, http.StatusBadRequest},
		{"unknown column", map[string]any{"columnId": "nope", "title": "x"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.createTask("alice", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code == http.StatusBadRequest {
				assert.Equal(t, CodeValidation, errorBody(t, rec).Code)
			} else {
				assert.Equal(t, CodeNotFound, errorBody(t, rec).Code)
			}
		})
	}

	assert.Empty(t, s.listTasks("alice", ""))
}

func TestCreateTaskMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte(`{"title":`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, bearer(t, "alice"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, errorBody(t, rec).Code)
}

func TestCreateHighPriorityDailyLimit(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")

	for i := 0; i < 5; i++ {
		s.mustCreateTask("alice", highTask(col.ID, fmt.Sprintf("%d:00 AM", i+1)))
	}

	rec := s.createTask("alice", highTask(col.ID, "9:00 PM"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, "DAILY_LIMIT_REACHED", body.Code)
	assert.Equal(t, "Daily Limit Reached: You can only have 5 high priority tasks per day.", body.Error)

	assert.Len(t, s.listTasks("alice", ""), 5)
	assert.Equal(t, int64(1), s.app.Metrics().DailyLimitRejects.Load())
}

func TestCreateHighPriorityTimeConflict(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")

	s.mustCreateTask("alice", highTask(col.ID, "2:00 PM"))

	rec := s.createTask("alice", highTask(col.ID, "2:15 PM"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, "TIME_CONFLICT", body.Code)
	assert.Equal(t, "Time Conflict: Another High priority task is scheduled during this time.", body.Error)

	// back to back is fine
	s.mustCreateTask("alice", highTask(col.ID, "2:30 PM"))
}

func TestGetTaskOwnership(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	task := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "Private"})

	rec := s.do(http.MethodGet, "/api/tasks/"+task.ID, "alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/tasks/"+task.ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, errorBody(t, rec).Code)

	rec = s.do(http.MethodDelete, "/api/tasks/"+task.ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	task := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "Draft", "date": testutil.TestDate})

	rec := s.do(http.MethodPut, "/api/tasks/"+task.ID, "alice", map[string]any{
		"title":       "Final",
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp taskResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Final", resp.Task.Title)
	assert.Equal(t, models.PriorityCompleted, resp.Task.Priority)
	assert.True(t, resp.Task.IsCompleted)

	rec = s.do(http.MethodPut, "/api/tasks/"+task.ID, "alice", map[string]any{"isCompleted": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &resp)
	assert.Equal(t, models.PriorityMedium, resp.Task.Priority)
	assert.False(t, resp.Task.IsCompleted)
}

func TestUpdateTaskRejectionLeavesTaskUnchanged(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	s.mustCreateTask("alice", highTask(col.ID, "2:00 PM"))
	task := s.mustCreateTask("alice", map[string]any{
		"columnId": col.ID,
		"title":    "Meeting",
		"date":     testutil.TestDate,
		"dueTime":  "2:15 PM",
		"duration": "30m",
	})

	rec := s.do(http.MethodPut, "/api/tasks/"+task.ID, "alice", map[string]any{"priority": "High"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "TIME_CONFLICT", errorBody(t, rec).Code)

	rec = s.do(http.MethodGet, "/api/tasks/"+task.ID, "alice", nil)
	var resp taskResponse
	decode(t, rec, &resp)
	assert.Equal(t, models.PriorityMedium, resp.Task.Priority)
}

func TestToggleTask(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	task := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "Laundry", "priority": "Low"})

	rec := s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp taskResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Task.IsCompleted)
	assert.Equal(t, models.PriorityCompleted, resp.Task.Priority)
	assert.Equal(t, task.Order, resp.Task.Order)

	rec = s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.False(t, resp.Task.IsCompleted)
	assert.Equal(t, models.PriorityMedium, resp.Task.Priority)
}

func TestMoveTask(t *testing.T) {
	s := newTestServer(t)
	work := s.createColumn("alice", "Work")
	home := s.createColumn("alice", "Home")

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, s.mustCreateTask("alice", map[string]any{"columnId": work.ID, "title": fmt.Sprintf("w%d", i)}).ID)
	}
	homeTask := s.mustCreateTask("alice", map[string]any{"columnId": home.ID, "title": "h0"})

	// last to first within the column
	rec := s.do(http.MethodPatch, "/api/tasks/"+ids[2]+"/move", "alice", map[string]any{"columnId": work.ID, "order": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := map[string]int{}
	for _, task := range s.listTasks("alice", "?columnId="+work.ID) {
		got[task.ID] = task.Order
	}
	assert.Equal(t, map[string]int{ids[2]: 0, ids[0]: 1, ids[1]: 2}, got)

	// across columns, with an order past the end
	rec = s.do(http.MethodPatch, "/api/tasks/"+ids[0]+"/move", "alice", map[string]any{
		"columnId": home.ID,
		"order":    99,
		"title":    "moved",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp taskResponse
	decode(t, rec, &resp)
	assert.Equal(t, home.ID, resp.Task.ColumnID)
	assert.Equal(t, 1, resp.Task.Order)
	assert.Equal(t, "moved", resp.Task.Title)

	homeOrders := map[string]int{}
	for _, task := range s.listTasks("alice", "?columnId="+home.ID) {
		homeOrders[task.ID] = task.Order
	}
	assert.Equal(t, map[string]int{homeTask.ID: 0, ids[0]: 1}, homeOrders)

	workOrders := map[string]int{}
	for _, task := range s.listTasks("alice", "?columnId="+work.ID) {
		workOrders[task.ID] = task.Order
	}
	assert.Equal(t, map[string]int{ids[2]: 0, ids[1]: 1}, workOrders)
}

func TestMoveTaskInvalid(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	task := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "x"})

	rec := s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/move", "alice", map[string]any{"columnId": col.ID, "order": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, errorBody(t, rec).Code)

	rec = s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/move", "alice", map[string]any{"order": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/move", "alice", map[string]any{"columnId": "missing", "order": 0})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateWithOrderMovesTask(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	a := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "a"})
	b := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "b"})

	rec := s.do(http.MethodPut, "/api/tasks/"+b.ID, "alice", map[string]any{"order": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	orders := map[string]int{}
	for _, task := range s.listTasks("alice", "") {
		orders[task.ID] = task.Order
	}
	assert.Equal(t, map[string]int{b.ID: 0, a.ID: 1}, orders)
}

func TestUpdateWithOrderFollowsLatestColumn(t *testing.T) {
	s := newTestServer(t)
	work := s.createColumn("alice", "Work")
	home := s.createColumn("alice", "Home")
	task := s.mustCreateTask("alice", map[string]any{"columnId": work.ID, "title": "roaming", "priority": "Low"})
	h0 := s.mustCreateTask("alice", map[string]any{"columnId": home.ID, "title": "h0"})

	rec := s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/move", "alice", map[string]any{"columnId": home.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/tasks/"+task.ID, "alice", map[string]any{"order": 0, "isCompleted": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp taskResponse
	decode(t, rec, &resp)
	assert.Equal(t, home.ID, resp.Task.ColumnID)
	assert.Equal(t, 0, resp.Task.Order)
	assert.Equal(t, models.PriorityLow, resp.Task.Priority)

	orders := map[string]int{}
	for _, got := range s.listTasks("alice", "?columnId="+home.ID) {
		orders[got.ID] = got.Order
	}
	assert.Equal(t, map[string]int{task.ID: 0, h0.ID: 1}, orders)
	assert.Empty(t, s.listTasks("alice", "?columnId="+work.ID))

	rec = s.do(http.MethodPut, "/api/tasks/"+task.ID, "alice", map[string]any{"columnId": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTaskClosesGap(t *testing.T) {
	s := newTestServer(t)
	col := s.createColumn("alice", "Work")
	a := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "a"})
	b := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "b"})
	c := s.mustCreateTask("alice", map[string]any{"columnId": col.ID, "title": "c"})

	rec := s.do(http.MethodDelete, "/api/tasks/"+b.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Task deleted"}`, rec.Body.String())

	orders := map[string]int{}
	for _, task := range s.listTasks("alice", "") {
		orders[task.ID] = task.Order
	}
	assert.Equal(t, map[string]int{a.ID: 0, c.ID: 1}, orders)
}

func TestColumns(t *testing.T) {
	s := newTestServer(t)
	work := s.createColumn("alice", "Work")
	home := s.createColumn("alice", "Home")
	s.mustCreateTask("alice", map[string]any{"columnId": work.ID, "title": "today", "date": testutil.TestDate})
	s.mustCreateTask("alice", map[string]any{"columnId": work.ID, "title": "tomorrow", "date": "2024-03-16"})

	assert.Equal(t, 0, work.Order)
	assert.Equal(t, 1, home.Order)

	rec := s.do(http.MethodGet, "/api/columns?includeTasks=true&date="+testutil.TestDate, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board struct {
		Columns []models.ColumnWithTasks `json:"columns"`
	}
	decode(t, rec, &board)
	require.Len(t, board.Columns, 2)
	assert.Equal(t, "Work", board.Columns[0].Title)
	require.Len(t, board.Columns[0].Tasks, 1)
	assert.Equal(t, "today", board.Columns[0].Tasks[0].Title)
	assert.Empty(t, board.Columns[1].Tasks)

	rec = s.do(http.MethodPut, "/api/columns/"+home.ID, "alice", map[string]any{"title": "Errands", "order": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp columnResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Errands", resp.Column.Title)
	assert.Equal(t, 0, resp.Column.Order)

	rec = s.do(http.MethodPut, "/api/columns/"+home.ID, "alice", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/columns/"+work.ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/columns/"+home.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/columns/"+work.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.listTasks("alice", ""))

	rec = s.do(http.MethodGet, "/api/columns", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"columns":[]}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.createColumn("alice", "Work")

	rec := s.do(http.MethodGet, "/api/metrics", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap metrics.Snapshot
	decode(t, rec, &snap)
	assert.Equal(t, int64(1), snap.Mutations)
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.app.Close())

	rec := s.do(http.MethodGet, "/api/tasks", "alice", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errorResponse{Error: "internal server error", Code: CodeInternal}, errorBody(t, rec))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
