package github

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient starts a mock GitHub API server and returns a client
// pointed at it.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewClient("test-token", WithBaseURL(server.URL))
}

func TestGetFileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/who/anc-dak/contents/input/fsh/profiles.fsh", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ref"); got != "main" {
			t.Errorf("ref = %q, want main", got)
		}
		content := base64.StdEncoding.EncodeToString([]byte("Profile: ANCContact\n"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type":     "file",
			"encoding": "base64",
			"name":     "profiles.fsh",
			"path":     "input/fsh/profiles.fsh",
			"sha":      "abc123",
			"size":     20,
			"content":  content,
		})
	})

	client := newTestClient(t, mux)

	file, err := client.GetFileContent(t.Context(), "who", "anc-dak", "input/fsh/profiles.fsh", "main")
	if err != nil {
		t.Fatalf("GetFileContent() error = %v", err)
	}

	if file.Content != "Profile: ANCContact\n" {
		t.Errorf("Content = %q", file.Content)
	}
	if file.SHA != "abc123" {
		t.Errorf("SHA = %q, want abc123", file.SHA)
	}
}

func TestListDirectory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/who/anc-dak/contents/input/fsh", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"name": "profiles.fsh", "path": "input/fsh/profiles.fsh", "type": "file", "size": 12, "sha": "a1"},
			{"name": "valuesets", "path": "input/fsh/valuesets", "type": "dir", "sha": "b2"},
		})
	})

	client := newTestClient(t, mux)

	entries, err := client.ListDirectory(t.Context(), "who", "anc-dak", "input/fsh", "")
	if err != nil {
		t.Fatalf("ListDirectory() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name != "profiles.fsh" || entries[0].Type != "file" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Type != "dir" {
		t.Errorf("entries[1].Type = %q, want dir", entries[1].Type)
	}
}

func TestCheckWritePermission(t *testing.T) {
	tests := []struct {
		permission string
		want       bool
	}{
		{"admin", true},
		{"maintain", true},
		{"write", true},
		{"triage", false},
		{"read", false},
	}

	for _, tt := range tests {
		t.Run(tt.permission, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/who/anc-dak/collaborators/litlfred/permission", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"permission": %q, "user": {"login": "litlfred"}}`, tt.permission)
			})

			client := newTestClient(t, mux)

			got, err := client.CheckWritePermission(t.Context(), "who", "anc-dak", "litlfred")
			if err != nil {
				t.Fatalf("CheckWritePermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckWritePermission(%q) = %v, want %v", tt.permission, got, tt.want)
			}
		})
	}
}

func TestCommitFiles(t *testing.T) {
	var blobCount, refUpdated int

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/who/anc-dak/git/ref/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ref":    "refs/heads/main",
			"object": map[string]interface{}{"type": "commit", "sha": "parent-sha"},
		})
	})
	mux.HandleFunc("POST /repos/who/anc-dak/git/blobs", func(w http.ResponseWriter, r *http.Request) {
		blobCount++
		fmt.Fprintf(w, `{"sha": "blob-%d"}`, blobCount)
	})
	mux.HandleFunc("POST /repos/who/anc-dak/git/trees", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			BaseTree string `json:"base_tree"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.BaseTree != "parent-sha" {
			t.Errorf("base_tree = %q, want parent-sha", body.BaseTree)
		}
		w.Write([]byte(`{"sha": "tree-sha"}`))
	})
	mux.HandleFunc("POST /repos/who/anc-dak/git/commits", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string   `json:"message"`
			Parents []string `json:"parents"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Message != "Update ANC profiles" {
			t.Errorf("message = %q", body.Message)
		}
		w.Write([]byte(`{"sha": "new-commit-sha", "html_url": "https://github.com/who/anc-dak/commit/new-commit-sha"}`))
	})
	mux.HandleFunc("PATCH /repos/who/anc-dak/git/refs/", func(w http.ResponseWriter, r *http.Request) {
		refUpdated++
		var body struct {
			SHA string `json:"sha"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.SHA != "new-commit-sha" {
			t.Errorf("ref update sha = %q, want new-commit-sha", body.SHA)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ref":    "refs/heads/main",
			"object": map[string]interface{}{"type": "commit", "sha": "new-commit-sha"},
		})
	})

	client := newTestClient(t, mux)

	files := []CommitFile{
		{Path: "input/fsh/profiles.fsh", Content: "Profile: ANCContact\n"},
		{Path: "sushi-config.yaml", Content: "id: who.anc\n"},
	}

	result, err := client.CommitFiles(t.Context(), "who", "anc-dak", "main", "Update ANC profiles", files)
	if err != nil {
		t.Fatalf("CommitFiles() error = %v", err)
	}

	if result.SHA != "new-commit-sha" {
		t.Errorf("SHA = %q, want new-commit-sha", result.SHA)
	}
	if result.Files != 2 {
		t.Errorf("Files = %d, want 2", result.Files)
	}
	if blobCount != 2 {
		t.Errorf("blobCount = %d, want 2", blobCount)
	}
	if refUpdated != 1 {
		t.Errorf("refUpdated = %d, want 1", refUpdated)
	}
}

func TestCommitFilesRejectsEmpty(t *testing.T) {
	client := NewClient("test-token")

	_, err := client.CommitFiles(t.Context(), "who", "anc-dak", "main", "msg", nil)
	if err == nil {
		t.Fatal("CommitFiles() should fail with no files")
	}
}

func TestUpsertMarkedCommentCreates(t *testing.T) {
	var created bool

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/who/anc-dak/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "body": "unrelated comment"},
		})
	})
	mux.HandleFunc("POST /repos/who/anc-dak/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		created = true
		var body struct {
			Body string `json:"body"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if !strings.Contains(body.Body, StatusCommentMarker) {
			t.Errorf("created comment missing marker: %q", body.Body)
		}
		w.Write([]byte(`{"id": 42}`))
	})

	client := newTestClient(t, mux)

	id, err := client.UpsertMarkedComment(t.Context(), "who", "anc-dak", 7, "", "Deployment started")
	if err != nil {
		t.Fatalf("UpsertMarkedComment() error = %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if !created {
		t.Error("expected a new comment to be created")
	}
}

func TestUpsertMarkedCommentUpdates(t *testing.T) {
	var edited bool

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/who/anc-dak/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 42, "body": StatusCommentMarker + "\nprevious status"},
		})
	})
	mux.HandleFunc("PATCH /repos/who/anc-dak/issues/comments/42", func(w http.ResponseWriter, r *http.Request) {
		edited = true
		w.Write([]byte(`{"id": 42}`))
	})
	mux.HandleFunc("POST /repos/who/anc-dak/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		t.Error("should edit the managed comment, not create a new one")
	})

	client := newTestClient(t, mux)

	id, err := client.UpsertMarkedComment(t.Context(), "who", "anc-dak", 7, "", "Deployment finished")
	if err != nil {
		t.Fatalf("UpsertMarkedComment() error = %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if !edited {
		t.Error("expected the managed comment to be edited")
	}
}
