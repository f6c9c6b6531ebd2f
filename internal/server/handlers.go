package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/tablesmith/internal/state"
	"github.com/leapstack-labs/tablesmith/pkg/categorize"
	"github.com/leapstack-labs/tablesmith/pkg/core"
	"github.com/leapstack-labs/tablesmith/pkg/ddl"
	"github.com/leapstack-labs/tablesmith/pkg/export"
)

func (s *Server) routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/schema", s.handleGetSchema)
		r.Post("/schema/ddl", s.handleImportDDL)
		r.Post("/schema/categorize", s.handleCategorize)
		r.Get("/schema/sql", s.handleExportSQL)
		r.Get("/messages", s.handleMessages)
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply  string       `json:"reply"`
	Schema *core.Schema `json:"schema"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "a non-empty message field is required")
		return
	}

	sess := s.session(w, r)
	schema := s.loadSchema()

	schema, reply := s.exec.Execute(schema, req.Message, sess)
	if err := s.store.SaveSchema(s.cfg.Schema, schema); err != nil {
		s.logger.Error("failed to save schema", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save schema")
		return
	}
	_ = s.store.AppendMessage(s.cfg.Schema, state.RoleUser, req.Message)
	_ = s.store.AppendMessage(s.cfg.Schema, state.RoleAssistant, reply)

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Schema: schema})
}

func (s *Server) handleGetSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.loadSchema())
}

type ddlRequest struct {
	SQL   string `json:"sql"`
	Merge bool   `json:"merge"`
}

func (s *Server) handleImportDDL(w http.ResponseWriter, r *http.Request) {
	var req ddlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SQL == "" {
		writeError(w, http.StatusBadRequest, "a non-empty sql field is required")
		return
	}

	tables := ddl.Parse(req.SQL)
	if len(tables) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no CREATE TABLE statements found")
		return
	}

	schema := core.NewSchema()
	schema.Name = s.cfg.Schema
	if req.Merge {
		schema = s.loadSchema()
	}
	for _, t := range tables {
		if schema.HasTable(t.Name) {
			schema.RemoveTable(t.Name)
		}
		schema.AddTable(t)
	}

	if err := s.store.SaveSchema(s.cfg.Schema, schema); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save schema")
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleCategorize(w http.ResponseWriter, _ *http.Request) {
	schema := s.loadSchema()
	res := categorize.Run(schema)
	if res.Changed() {
		if err := s.store.SaveSchema(s.cfg.Schema, schema); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save schema")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assigned": res.Assigned,
		"schema":   schema,
	})
}

func (s *Server) handleExportSQL(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/sql")
	_, _ = w.Write([]byte(export.SQL(s.loadSchema())))
}

func (s *Server) handleMessages(w http.ResponseWriter, _ *http.Request) {
	msgs, err := s.store.Messages(s.cfg.Schema, 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}
	out := make([]map[string]any, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]any{
			"role":    m.Role,
			"content": m.Content,
			"at":      m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) loadSchema() *core.Schema {
	if saved, err := s.store.LoadSchema(s.cfg.Schema); err == nil {
		return saved.Schema
	}
	schema := core.NewSchema()
	schema.Name = s.cfg.Schema
	return schema
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
