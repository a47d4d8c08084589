package dashboard

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ines/taskdeck/internal/api"
	"github.com/ines/taskdeck/internal/models"
	"github.com/ines/taskdeck/internal/session"
)

func modelAgainst(t *testing.T, handler http.Handler) (Model, *httptest.Server) {
	t.Helper()
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, "tok")
	store := session.NewStore(client)
	return NewModel(client, store, "test"), srv
}

func TestFetchDetailJoinsThreeRequests(t *testing.T) {
	var mu sync.Mutex
	paths := map[string]bool{}

	m, _ := modelAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths[r.URL.Path] = true
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/projects/7":
			w.Write([]byte(`{"id":7,"title":"alpha","description":"","tasks":[]}`))
		case "/tasks/project/7":
			w.Write([]byte(`{"content":[{"id":1,"title":"t","completed":false}],"number":0,"totalPages":1,"totalElements":1}`))
		case "/projects/7/progress":
			w.Write([]byte(`{"totalTasks":4,"completedTasks":1,"progressPercentage":25}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	msg := m.fetchDetail(1, 7, models.StatusAll, 0)().(detailLoadedMsg)

	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Project == nil || msg.Project.Title != "alpha" {
		t.Error("project not fetched")
	}
	if msg.Tasks == nil || len(msg.Tasks.Content) != 1 {
		t.Error("tasks not fetched")
	}
	if msg.Progress == nil || msg.Progress.ProgressPercentage != 25 {
		t.Error("progress not fetched")
	}
	for _, p := range []string{"/projects/7", "/tasks/project/7", "/projects/7/progress"} {
		if !paths[p] {
			t.Errorf("expected a request to %s", p)
		}
	}
}

func TestFetchDetailProjectErrorWins(t *testing.T) {
	m, _ := modelAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/7":
			w.WriteHeader(http.StatusForbidden)
		default:
			// The other endpoints also fail, with a different status.
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	msg := m.fetchDetail(1, 7, models.StatusAll, 0)().(detailLoadedMsg)

	apiErr, ok := msg.Err.(*api.APIError)
	if !ok {
		t.Fatalf("expected *api.APIError, got %T", msg.Err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403 from the project fetch", apiErr.StatusCode)
	}
}

func TestCompleteTaskSendsPut(t *testing.T) {
	var method, path string
	m, _ := modelAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))

	msg := m.completeTask(9)().(mutationDoneMsg)

	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if method != http.MethodPut || path != "/tasks/9/complete" {
		t.Errorf("request = %s %s, want PUT /tasks/9/complete", method, path)
	}
}

func TestSubmitLoginCapturesFailure(t *testing.T) {
	m, _ := modelAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))

	msg := m.submitLogin("a@x.com", "wrong")().(loginResultMsg)

	if msg.OK {
		t.Fatal("login should fail")
	}
	if msg.Failure == "" {
		t.Error("failure detail should be captured for the status line")
	}
	if msg.Email != "a@x.com" {
		t.Errorf("Email = %q", msg.Email)
	}
}

func TestRestoreSessionWithoutCredentials(t *testing.T) {
	m, _ := modelAgainst(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	msg := m.restoreSession()().(sessionRestoredMsg)

	if msg.Authenticated {
		t.Error("no persisted credentials should mean unauthenticated")
	}
}
