package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/keshon/minigit/internal/service"
	"github.com/keshon/minigit/internal/store"
)

type addRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type commitRequest struct {
	Message string `json:"message"`
}

type fileRequest struct {
	Filename string `json:"filename"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type mergeRequest struct {
	Branch string `json:"branch"`
}

// revertRequest also accepts the camel-case key the responses use.
type revertRequest struct {
	CommitID       string `json:"commit_id"`
	LegacyCommitID string `json:"commitId"`
}

func (r revertRequest) id() string {
	if r.CommitID != "" {
		return r.CommitID
	}
	return r.LegacyCommitID
}

type exportRequest struct {
	Name string `json:"name"`
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.mux.HandleFunc("POST /api/init", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Init(r.Context()))
	})
	s.mux.HandleFunc("POST /api/add", func(w http.ResponseWriter, r *http.Request) {
		var req addRequest
		if decode(w, r, &req) {
			respond(w, s.svc.Add(r.Context(), req.Filename, req.Content))
		}
	})
	s.mux.HandleFunc("POST /api/commit", func(w http.ResponseWriter, r *http.Request) {
		var req commitRequest
		if decode(w, r, &req) {
			respond(w, s.svc.Commit(r.Context(), req.Message))
		}
	})
	s.mux.HandleFunc("GET /api/log", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Log(r.Context()))
	})
	s.mux.HandleFunc("GET /api/status", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Status(r.Context()))
	})
	s.mux.HandleFunc("POST /api/diff", func(w http.ResponseWriter, r *http.Request) {
		var req fileRequest
		if decode(w, r, &req) {
			respond(w, s.svc.Diff(r.Context(), req.Filename))
		}
	})
	s.mux.HandleFunc("POST /api/branch", func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if decode(w, r, &req) {
			respond(w, s.svc.CreateBranch(r.Context(), req.Name))
		}
	})
	s.mux.HandleFunc("POST /api/checkout", func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if decode(w, r, &req) {
			respond(w, s.svc.Checkout(r.Context(), req.Name))
		}
	})
	s.mux.HandleFunc("GET /api/branches", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Branches(r.Context()))
	})
	s.mux.HandleFunc("POST /api/branch/delete", func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if decode(w, r, &req) {
			respond(w, s.svc.DeleteBranch(r.Context(), req.Name))
		}
	})
	s.mux.HandleFunc("POST /api/merge", func(w http.ResponseWriter, r *http.Request) {
		var req mergeRequest
		if decode(w, r, &req) {
			respond(w, s.svc.Merge(r.Context(), req.Branch))
		}
	})
	s.mux.HandleFunc("POST /api/undo", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Undo(r.Context()))
	})
	s.mux.HandleFunc("POST /api/redo", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Redo(r.Context()))
	})
	s.mux.HandleFunc("POST /api/revert", func(w http.ResponseWriter, r *http.Request) {
		var req revertRequest
		if decode(w, r, &req) {
			respond(w, s.svc.Revert(r.Context(), req.id()))
		}
	})
	s.mux.HandleFunc("POST /api/reset", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.Reset(r.Context()))
	})
	s.mux.HandleFunc("GET /api/history", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.History(r.Context()))
	})
	s.mux.HandleFunc("POST /api/export", s.handleExport)

	s.mux.HandleFunc("GET /api/repos", func(w http.ResponseWriter, r *http.Request) {
		respond(w, s.svc.ListRepos(r.Context()))
	})
	s.mux.HandleFunc("POST /api/repos", func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if decode(w, r, &req) {
			respond(w, s.svc.CreateRepo(r.Context(), req.Name))
		}
	})
	s.mux.HandleFunc("POST /api/repos/switch", func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if decode(w, r, &req) {
			respond(w, s.svc.SwitchRepo(req.Name))
		}
	})
	s.mux.HandleFunc("POST /api/repos/delete", func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if decode(w, r, &req) {
			respond(w, s.svc.DeleteRepo(r.Context(), req.Name))
		}
	})
}

// handleExport resolves the target name under the export root. An empty
// name, or a server without a root, exports into memory.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decode(w, r, &req) {
		return
	}
	dir := ""
	if req.Name != "" {
		if s.exportRoot == "" {
			respond(w, service.Response{Message: "Export to disk is disabled on this server."})
			return
		}
		if err := store.ValidateName(req.Name); err != nil {
			respond(w, service.Response{Message: fmt.Sprintf("Invalid export name '%s'.", req.Name)})
			return
		}
		dir = filepath.Join(s.exportRoot, req.Name)
	}
	respond(w, s.svc.Export(r.Context(), dir))
}

// decode reads a JSON body into v. On failure it writes a success:false
// response and returns false. An empty body decodes as {}.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, service.Response{
		Success: false,
		Message: "Invalid request body: " + err.Error(),
	})
	return false
}

func respond(w http.ResponseWriter, resp service.Response) {
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
