package rest

import (
	"net/http"
	"testing"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/server/models"
	tasksrepo "github.com/avorobyov/taskkeeper/internal/server/repositories/tasks"
)

func authedUsers() *fakeUsers {
	return &fakeUsers{authUser: &models.User{ID: "u-1", Email: "kira@example.com"}}
}

func TestCreateTaskEndpoint(t *testing.T) {
	tasks := &fakeTasks{}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodPost, "/tasks", "tok-1", `{"description":"buy milk"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["description"] != "buy milk" || body["userId"] != "u-1" {
		t.Fatalf("unexpected task payload: %v", body)
	}
}

func TestCreateTaskEndpoint_MissingDescription(t *testing.T) {
	tasks := &fakeTasks{}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodPost, "/tasks", "tok-1", `{"completed":true}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestListTasksEndpoint_FilterParsing(t *testing.T) {
	tasks := &fakeTasks{}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodGet, "/tasks?completed=true&sortBy=createdAt_desc&limit=2&skip=4", "tok-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	f := tasks.listFilter
	if f.Completed == nil || !*f.Completed {
		t.Fatalf("completed filter not parsed: %+v", f)
	}
	if f.SortBy != tasksrepo.SortByCreatedAt || !f.Desc {
		t.Fatalf("sort not parsed: %+v", f)
	}
	if f.Limit != 2 || f.Offset != 4 {
		t.Fatalf("pagination not parsed: %+v", f)
	}
}

func TestListTasksEndpoint_EmptyIsJSONArray(t *testing.T) {
	tasks := &fakeTasks{}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodGet, "/tasks", "tok-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("empty list must serialize as [], got %q", got)
	}
}

func TestListTasksEndpoint_BadQueries(t *testing.T) {
	tests := []struct {
		name  string
		query string
		tasks *fakeTasks
	}{
		{"bad completed", "?completed=maybe", &fakeTasks{}},
		{"missing sort direction", "?sortBy=createdAt", &fakeTasks{}},
		{"bad sort direction", "?sortBy=createdAt_sideways", &fakeTasks{}},
		{"unknown sort field", "?sortBy=priority_asc", &fakeTasks{listErr: common.ErrorValidation}},
		{"negative limit", "?limit=-1", &fakeTasks{}},
		{"non-numeric skip", "?skip=abc", &fakeTasks{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestServer(authedUsers(), tt.tasks)
			w := doJSON(t, r, http.MethodGet, "/tasks"+tt.query, "tok-1", "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetTaskEndpoint(t *testing.T) {
	tasks := &fakeTasks{getOut: &models.Task{ID: "t-1", UserID: "u-1", Description: "buy milk"}}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodGet, "/tasks/t-1", "tok-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["id"] != "t-1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGetTaskEndpoint_NotFound(t *testing.T) {
	tasks := &fakeTasks{getErr: common.ErrorNotFound}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodGet, "/tasks/t-foreign", "tok-1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestUpdateTaskEndpoint(t *testing.T) {
	tasks := &fakeTasks{updateOut: &models.Task{ID: "t-1", UserID: "u-1", Description: "buy milk", Completed: true}}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodPatch, "/tasks/t-1", "tok-1", `{"completed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if tasks.updateGot.Completed == nil || !*tasks.updateGot.Completed {
		t.Fatalf("patch not passed: %+v", tasks.updateGot)
	}
	if tasks.updateGot.Description != nil {
		t.Fatalf("untouched field must stay nil: %+v", tasks.updateGot)
	}
}

func TestUpdateTaskEndpoint_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"owner":"u-2"}`},
		{"wrong completed type", `{"completed":"yes"}`},
		{"wrong description type", `{"description":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &fakeTasks{}
			r := newTestServer(authedUsers(), tasks)
			w := doJSON(t, r, http.MethodPatch, "/tasks/t-1", "tok-1", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteTaskEndpoint(t *testing.T) {
	tasks := &fakeTasks{getOut: &models.Task{ID: "t-1", UserID: "u-1", Description: "buy milk"}}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodDelete, "/tasks/t-1", "tok-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(tasks.deleted) != 1 || tasks.deleted[0] != "t-1" {
		t.Fatalf("unexpected deletions: %v", tasks.deleted)
	}
	if body := decodeBody(t, w); body["id"] != "t-1" {
		t.Fatalf("deleted task not echoed: %v", body)
	}
}

func TestDeleteTaskEndpoint_NotFound(t *testing.T) {
	tasks := &fakeTasks{getErr: common.ErrorNotFound}
	r := newTestServer(authedUsers(), tasks)

	w := doJSON(t, r, http.MethodDelete, "/tasks/t-foreign", "tok-1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}
