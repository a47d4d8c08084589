package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ines/taskdeck/internal/models"
)

func TestLoginReturnsRawToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if creds.Email != "a@x.com" || creds.Password != "pw" {
			t.Errorf("credentials: got %+v", creds)
		}
		w.Write([]byte("tok123"))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	token, err := c.Login("a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok123" {
		t.Errorf("token: got %q, want tok123", token)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Login("a@x.com", "wrong")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", apiErr.StatusCode)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("401 should match ErrUnauthorized")
	}
}

func TestBearerTokenAttachment(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.Page[models.Project]{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	if _, err := c.ListProjects("", 0, 6); err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization: got %q, want %q", gotAuth, "Bearer tok123")
	}

	c.SetToken("")
	if _, err := c.ListProjects("", 0, 6); err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after logout: got %q, want empty", gotAuth)
	}
}

func TestListProjectsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(models.Page[models.Project]{
			Content:    []models.Project{{ID: 1, Title: "Site Redesign"}},
			TotalPages: 3,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	page, err := c.ListProjects("redesign", 2, 6)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if got := gotQuery["search"]; len(got) != 1 || got[0] != "redesign" {
		t.Errorf("search param: got %v", got)
	}
	if got := gotQuery["page"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("page param: got %v", got)
	}
	if got := gotQuery["size"]; len(got) != 1 || got[0] != "6" {
		t.Errorf("size param: got %v", got)
	}
	if len(page.Content) != 1 || page.Content[0].Title != "Site Redesign" {
		t.Errorf("page content: got %+v", page.Content)
	}

	// Empty search must be omitted entirely, like the original client.
	if _, err := c.ListProjects("", 0, 6); err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if _, present := gotQuery["search"]; present {
		t.Error("empty search should not appear in the query string")
	}
}

func TestListTasksStatusParam(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/project/42" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(models.Page[models.Task]{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if _, err := c.ListTasks(42, 0, 6, models.StatusCompleted); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if got := gotQuery["status"]; len(got) != 1 || got[0] != "completed" {
		t.Errorf("status param: got %v", got)
	}

	if _, err := c.ListTasks(42, 0, 6, models.StatusAll); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if _, present := gotQuery["status"]; present {
		t.Error("status=all should be omitted from the query string")
	}
}

func TestMutationEndpoints(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/projects":
			var req CreateProjectRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(models.Project{ID: 7, Title: req.Title, Description: req.Description})
		case r.Method == http.MethodPost && r.URL.Path == "/tasks/project/7":
			json.NewEncoder(w).Encode(models.Task{ID: 9, Title: "first"})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")

	proj, err := c.CreateProject("Site Redesign", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if proj.ID != 7 || proj.Title != "Site Redesign" {
		t.Errorf("project: got %+v", proj)
	}
	if _, err := c.CreateTask(7, CreateTaskRequest{Title: "first"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := c.CompleteTask(9); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if err := c.DeleteTask(9); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := c.DeleteProject(7); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	want := []call{
		{http.MethodPost, "/projects"},
		{http.MethodPost, "/tasks/project/7"},
		{http.MethodPut, "/tasks/9/complete"},
		{http.MethodDelete, "/tasks/9"},
		{http.MethodDelete, "/projects/7"},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d: %v", len(calls), len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: got %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestForbiddenClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok").GetProject(1)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("403 should match ErrForbidden, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("403 should not match ErrNotFound")
	}
}

func TestNoResponseClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, "tok").WithTimeout(2 * time.Second)
	_, err := c.GetProject(1)
	if !errors.Is(err, ErrNoResponse) {
		t.Errorf("transport failure should wrap ErrNoResponse, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport failure must not classify as a server-responded error")
	}
}

func TestRequestIDHeader(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(models.Project{})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	c.GetProject(1)
	c.GetProject(1)

	if len(ids) != 2 || ids[0] == "" || ids[1] == "" {
		t.Fatalf("every request should carry X-Request-ID, got %v", ids)
	}
	if ids[0] == ids[1] {
		t.Error("request IDs should be unique per request")
	}
}
