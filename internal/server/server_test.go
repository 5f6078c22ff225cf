package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"teamtasks/internal/models"
	"teamtasks/internal/service"
	"teamtasks/internal/storage/sqlite"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("disk on fire") }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires the real services over a seeded SQLite database.
func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}

	logger := discardLogger()
	return New(Services{
		Tasks:     service.NewTaskService(store, store, store, logger),
		Dashboard: service.NewDashboardService(store),
		Directory: service.NewDirectoryService(store, store),
		Health:    store,
	}, logger, opts)
}

func doRequest(t *testing.T, srv *Server, method, target string, body any) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	var env testEnvelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})
	rec, env := doRequest(t, srv, http.MethodGet, "/api/healthz", nil)
	expectStatus(t, rec, http.StatusOK)
	if !env.Success {
		t.Error("Expected success")
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("Expected a request id header")
	}

	down := New(Services{Health: failingPinger{}}, discardLogger(), Options{})
	rec, env = doRequest(t, down, http.MethodGet, "/api/healthz", nil)
	expectStatus(t, rec, http.StatusServiceUnavailable)
	if env.Success {
		t.Error("Expected failure envelope")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("Expected echoed request id, got %q", got)
	}
}

func TestDashboardPaging(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=2&pageSize=2", 2, 2},
		{"clamped", "?page=0&pageSize=1000", 1, 100},
		{"malformed", "?page=abc&pageSize=-5", 1, 10},
		{"huge page", "?page=100000000000000000&pageSize=100", models.MaxPage, 100},
		{"page beyond int", "?page=999999999999999999999999&pageSize=99999999999999999999", models.MaxPage, 100},
	}

	for _, path := range []string{
		"/api/dashboard/developer-workload",
		"/api/dashboard/project-health",
		"/api/dashboard/developer-delay-risk",
	} {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				rec, env := doRequest(t, srv, http.MethodGet, path+tt.query, nil)
				expectStatus(t, rec, http.StatusOK)

				var page struct {
					Items      []json.RawMessage `json:"items"`
					TotalCount int64             `json:"totalCount"`
					Page       int               `json:"page"`
					PageSize   int               `json:"pageSize"`
				}
				if err := json.Unmarshal(env.Data, &page); err != nil {
					t.Fatalf("Failed to decode page: %v", err)
				}
				if page.Page != tt.wantPage || page.PageSize != tt.wantPageSize {
					t.Errorf("Expected page %d/%d, got %d/%d", tt.wantPage, tt.wantPageSize, page.Page, page.PageSize)
				}
				if page.TotalCount != 4 {
					t.Errorf("Expected 4 groups, got %d", page.TotalCount)
				}
				if tt.wantPage == models.MaxPage && len(page.Items) != 0 {
					t.Errorf("Expected no items past the last page, got %d", len(page.Items))
				}
				if page.Items == nil {
					t.Error("Expected items array")
				}
			})
		}
	}
}

func TestDelayRiskFieldNames(t *testing.T) {
	srv := newTestServer(t, Options{})
	rec, env := doRequest(t, srv, http.MethodGet, "/api/dashboard/developer-delay-risk?pageSize=1", nil)
	expectStatus(t, rec, http.StatusOK)

	var page struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("Failed to decode page: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(page.Items))
	}
	for _, key := range []string{
		"developerId", "developerName", "openTasksCount", "avgDelayDays",
		"nearestDueDate", "latestDueDate", "predictedCompletionDate", "highRiskFlag",
	} {
		if _, ok := page.Items[0][key]; !ok {
			t.Errorf("Missing field %q in %v", key, page.Items[0])
		}
	}
	if page.Items[0]["developerName"] != "Juan Perez" {
		t.Errorf("Expected Juan Perez first, got %v", page.Items[0]["developerName"])
	}
}

func TestCreateAndUpdateTask(t *testing.T) {
	srv := newTestServer(t, Options{})
	due := futureDate(3)

	rec, env := doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"projectId":           1,
		"title":               "Wire up alerts",
		"assigneeId":          2,
		"priority":            "high",
		"estimatedComplexity": 4,
		"dueDate":             due,
	})
	expectStatus(t, rec, http.StatusCreated)

	var created struct {
		TaskID         int64   `json:"taskId"`
		Status         string  `json:"status"`
		Priority       string  `json:"priority"`
		DueDate        string  `json:"dueDate"`
		AssigneeName   string  `json:"assigneeName"`
		CompletionDate *string `json:"completionDate"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}
	if created.TaskID == 0 || created.Status != "ToDo" || created.Priority != "High" || created.DueDate != due {
		t.Errorf("Unexpected created task: %+v", created)
	}
	if created.AssigneeName != "Maria Gomez" {
		t.Errorf("Expected assignee Maria Gomez, got %q", created.AssigneeName)
	}
	if created.CompletionDate != nil {
		t.Errorf("Expected no completion date, got %v", *created.CompletionDate)
	}
	if loc := rec.Header().Get("Location"); !strings.HasSuffix(loc, "/api/tasks/"+jsonNumber(created.TaskID)) {
		t.Errorf("Unexpected Location header %q", loc)
	}

	target := "/api/tasks/" + jsonNumber(created.TaskID) + "/status"
	rec, env = doRequest(t, srv, http.MethodPut, target, map[string]any{"status": "Completed"})
	expectStatus(t, rec, http.StatusOK)
	var updated struct {
		Status         string  `json:"status"`
		CompletionDate *string `json:"completionDate"`
	}
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}
	if updated.Status != "Completed" || updated.CompletionDate == nil {
		t.Errorf("Expected completed task with completion date, got %+v", updated)
	}

	rec, _ = doRequest(t, srv, http.MethodGet, "/api/tasks/"+jsonNumber(created.TaskID), nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestUpdateStatusBlankPriorityKeepsValue(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec, env := doRequest(t, srv, http.MethodGet, "/api/tasks/2", nil)
	expectStatus(t, rec, http.StatusOK)
	var before struct {
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(env.Data, &before); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}

	rec, env = doRequest(t, srv, http.MethodPut, "/api/tasks/2/status", map[string]any{"status": "Blocked", "priority": ""})
	expectStatus(t, rec, http.StatusOK)
	var after struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}
	if after.Status != "Blocked" || after.Priority != before.Priority {
		t.Errorf("Expected Blocked with priority %q kept, got %+v", before.Priority, after)
	}

	rec, env = doRequest(t, srv, http.MethodPut, "/api/tasks/2/status", map[string]any{"status": "Blocked", "priority": "Urgent"})
	expectStatus(t, rec, http.StatusBadRequest)
	if !strings.Contains(strings.Join(env.Errors, "\n"), "priority: invalid priority") {
		t.Errorf("Expected priority error, got %v", env.Errors)
	}
}

func TestCreateTaskRejections(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name     string
		body     map[string]any
		fragment string
	}{
		{"missing title", map[string]any{"projectId": 1, "dueDate": futureDate(1)}, "title: is required"},
		{"long title", map[string]any{"projectId": 1, "title": strings.Repeat("x", 151), "dueDate": futureDate(1)}, "title: must not exceed 150"},
		{"bad status", map[string]any{"projectId": 1, "title": "x", "status": "Done", "dueDate": futureDate(1)}, "status: invalid status"},
		{"bad complexity", map[string]any{"projectId": 1, "title": "x", "estimatedComplexity": 7, "dueDate": futureDate(1)}, "estimatedComplexity"},
		{"missing due date", map[string]any{"projectId": 1, "title": "x"}, "dueDate: is required"},
		{"past due date", map[string]any{"projectId": 1, "title": "x", "dueDate": "2020-01-01"}, "dueDate: must be today or later"},
		{"unknown project", map[string]any{"projectId": 999, "title": "x", "dueDate": futureDate(1)}, "project 999 does not exist"},
		{"unknown assignee", map[string]any{"projectId": 1, "assigneeId": 999, "title": "x", "dueDate": futureDate(1)}, "developer 999 does not exist"},
		{"wrong type", map[string]any{"projectId": "one", "title": "x", "dueDate": futureDate(1)}, "projectId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, srv, http.MethodPost, "/api/tasks", tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			if env.Success {
				t.Error("Expected failure envelope")
			}
			if !strings.Contains(strings.Join(env.Errors, "\n"), tt.fragment) {
				t.Errorf("Expected an error containing %q, got %v", tt.fragment, env.Errors)
			}
		})
	}
}

func TestNotFoundAndBadIDs(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		method string
		target string
		body   any
		want   int
	}{
		{http.MethodGet, "/api/tasks/9999", nil, http.StatusNotFound},
		{http.MethodPut, "/api/tasks/9999/status", map[string]any{"status": "Blocked"}, http.StatusNotFound},
		{http.MethodGet, "/api/tasks/abc", nil, http.StatusBadRequest},
		{http.MethodGet, "/api/tasks/0", nil, http.StatusBadRequest},
		{http.MethodGet, "/api/developers/9999", nil, http.StatusNotFound},
		{http.MethodGet, "/api/developers/9999/tasks", nil, http.StatusNotFound},
		{http.MethodGet, "/api/projects/9999", nil, http.StatusNotFound},
		{http.MethodGet, "/api/projects/9999/tasks", nil, http.StatusNotFound},
		{http.MethodGet, "/api/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec, env := doRequest(t, srv, tt.method, tt.target, tt.body)
			expectStatus(t, rec, tt.want)
			if env.Success || env.Message == "" {
				t.Errorf("Expected failure envelope with message, got %+v", env)
			}
		})
	}
}

func TestProjectTaskListing(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec, env := doRequest(t, srv, http.MethodGet, "/api/projects/1/tasks?status=todo&pageSize=50", nil)
	expectStatus(t, rec, http.StatusOK)
	var page struct {
		Items []struct {
			Status  string `json:"status"`
			DueDate string `json:"dueDate"`
		} `json:"items"`
		TotalCount int64 `json:"totalCount"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("Failed to decode page: %v", err)
	}
	if page.TotalCount == 0 || int64(len(page.Items)) != page.TotalCount {
		t.Fatalf("Expected all ToDo tasks on one page, got total=%d items=%d", page.TotalCount, len(page.Items))
	}
	for i, item := range page.Items {
		if item.Status != "ToDo" {
			t.Errorf("Item %d: expected ToDo, got %s", i, item.Status)
		}
		if i > 0 && item.DueDate < page.Items[i-1].DueDate {
			t.Errorf("Items not ordered by due date: %s after %s", item.DueDate, page.Items[i-1].DueDate)
		}
	}

	rec, _ = doRequest(t, srv, http.MethodGet, "/api/projects/1/tasks?status=Sleeping", nil)
	expectStatus(t, rec, http.StatusBadRequest)

	rec, _ = doRequest(t, srv, http.MethodGet, "/api/projects/1/tasks?assigneeId=x", nil)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestDirectoryEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec, env := doRequest(t, srv, http.MethodGet, "/api/developers", nil)
	expectStatus(t, rec, http.StatusOK)
	var devs []map[string]any
	if err := json.Unmarshal(env.Data, &devs); err != nil {
		t.Fatalf("Failed to decode developers: %v", err)
	}
	if len(devs) != 4 {
		t.Errorf("Expected 4 active developers, got %d", len(devs))
	}

	rec, env = doRequest(t, srv, http.MethodGet, "/api/projects", nil)
	expectStatus(t, rec, http.StatusOK)
	var projects []map[string]any
	if err := json.Unmarshal(env.Data, &projects); err != nil {
		t.Fatalf("Failed to decode projects: %v", err)
	}
	if len(projects) != 4 {
		t.Errorf("Expected 4 projects, got %d", len(projects))
	}
	if _, ok := projects[0]["totalTasks"]; !ok {
		t.Errorf("Expected task counters on projects, got %v", projects[0])
	}

	rec, _ = doRequest(t, srv, http.MethodGet, "/api/developers/1/tasks", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestTasksDueSoon(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec, env := doRequest(t, srv, http.MethodGet, "/api/tasks/due-soon", nil)
	expectStatus(t, rec, http.StatusOK)
	var tasks []map[string]any
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("Failed to decode tasks: %v", err)
	}
	for _, task := range tasks {
		if task["status"] == "Completed" {
			t.Errorf("Completed task listed as due soon: %v", task)
		}
	}

	for _, q := range []string{"?days=abc", "?days=0", "?days=91"} {
		rec, _ = doRequest(t, srv, http.MethodGet, "/api/tasks/due-soon"+q, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>dashboard</html>"), 0o644); err != nil {
		t.Fatalf("Failed to write index: %v", err)
	}
	srv := newTestServer(t, Options{StaticDir: dir})

	rec, _ := doRequest(t, srv, http.MethodGet, "/reports/delay-risk", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "dashboard") {
		t.Errorf("Expected index.html, got %q", rec.Body.String())
	}

	rec, env := doRequest(t, srv, http.MethodGet, "/api/unknown", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if env.Success {
		t.Error("Expected JSON failure envelope for unknown API route")
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	srv := newTestServer(t, Options{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}
}

func jsonNumber(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
