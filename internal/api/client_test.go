package api

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/colbuilder-dev/colbuild/internal/config"
	"github.com/colbuilder-dev/colbuild/internal/logging"
	"github.com/colbuilder-dev/colbuild/internal/models"
)

// newTestClient points a client at an httptest server.
func newTestClient(t *testing.T, handler nethttp.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.New()
	cfg.ServerURL = server.URL

	client, err := NewClient(cfg, nil, logging.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func writeJSON(w nethttp.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["username"] != "alice" || body["remember"] != true {
			t.Errorf("unexpected request body: %v", body)
		}
		writeJSON(w, 200, `{"status":"success","message":"Login successful","username":"alice"}`)
	}))

	result, err := client.Login(context.Background(), "alice", "hunter2", true)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Username != "alice" {
		t.Errorf("username = %q, want alice", result.Username)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 401, `{"status":"error","message":"Invalid username or password"}`)
	}))

	_, err := client.Login(context.Background(), "alice", "wrong", false)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Invalid username or password" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.HTTPStatus != 401 {
		t.Errorf("http status = %d", apiErr.HTTPStatus)
	}
}

// The backend answers check-auth with 401 and status "success" for anonymous
// callers. That must decode as a normal unauthenticated result, not an error.
func TestCheckAuthAnonymous(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 401, `{"status":"success","authenticated":false}`)
	}))

	result, err := client.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if result.Authenticated {
		t.Error("Authenticated = true, want false")
	}
}

func TestCheckAuthLoggedIn(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 200, `{"status":"success","authenticated":true,"username":"bob"}`)
	}))

	result, err := client.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if !result.Authenticated || result.Username != "bob" {
		t.Errorf("result = %+v", result)
	}
}

func TestNonJSONResponseIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(404)
		io.WriteString(w, "<html>not found</html>")
	}))

	_, err := client.CheckAuth(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := AsAPIError(err); ok {
		t.Error("non-JSON response must not be an APIError")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q should mention the HTTP status", err)
	}
}

func TestSubmitJobDecodesID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"numeric id", `{"status":"success","job_id":42}`, "42"},
		{"string id", `{"status":"success","job_id":"42"}`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				if r.URL.Path != "/jobs/submit" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				writeJSON(w, 200, tt.body)
			}))

			id, err := client.SubmitJob(context.Background(), models.SubmitRequest{
				JobType: models.JobTypeFibril,
				JobName: "test",
			})
			if err != nil {
				t.Fatalf("SubmitJob: %v", err)
			}
			if id != tt.want {
				t.Errorf("job id = %q, want %q", id, tt.want)
			}
		})
	}
}

// A submit that fails server-side must hit the network exactly once. The
// job may already exist when the response is lost; an automatic re-POST
// would create a duplicate.
func TestSubmitJobNeverRetried(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, 500, `{"status":"error","message":"Internal server error"}`)
	}))

	_, err := client.SubmitJob(context.Background(), models.SubmitRequest{
		JobType: models.JobTypeFibril,
		JobName: "once-only",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("submit hit the server %d times, want 1", got)
	}
}

// Reads are idempotent and keep the retrying transport.
func TestReadsAreRetried(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(500)
			return
		}
		writeJSON(w, 200, `{"status":"success","authenticated":true,"username":"bob"}`)
	}))

	result, err := client.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if !result.Authenticated {
		t.Error("Authenticated = false after retry")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
}

func TestSubmitJobValidationError(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 400, `{"status":"error","message":"Contact distance out of range"}`)
	}))

	_, err := client.SubmitJob(context.Background(), models.SubmitRequest{JobType: models.JobTypeFibril})
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Contact distance out of range" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestGetCrosslinksData(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/api/jobs/crosslinks-data" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(w, 200, `{
			"status": "success",
			"species": ["homo_sapiens", "bos_taurus"],
			"crosslinks": [
				{"species": "homo_sapiens", "RES-terminal": "LYS-N", "type": "HLKNL", "position": "9.C"}
			]
		}`)
	}))

	table, err := client.GetCrosslinksData(context.Background())
	if err != nil {
		t.Fatalf("GetCrosslinksData: %v", err)
	}
	if !table.HasSpecies("bos_taurus") {
		t.Error("missing species bos_taurus")
	}
	if !table.HasPosition("homo_sapiens", models.TerminalN, "HLKNL", "9.C") {
		t.Error("missing crosslink row")
	}
}

func TestListJobs(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, 200, `{"status":"success","jobs":[
			{"id": 7, "type": "fibril", "status": "running", "created_at": "2026-08-30T10:00:00"},
			{"id": 6, "type": "molecule", "status": "completed", "created_at": "2026-08-29T09:00:00"}
		]}`)
	}))

	jobs, err := client.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	if jobs[0].ID.String() != "7" || jobs[0].Status != "running" {
		t.Errorf("first job = %+v", jobs[0])
	}
}

func TestCancelJobRejected(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/jobs/9/cancel" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, 400, `{"status":"error","message":"Job is already finished"}`)
	}))

	err := client.CancelJob(context.Background(), "9")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Job is already finished" {
		t.Errorf("message = %q", apiErr.Message)
	}
}
