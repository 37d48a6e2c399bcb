package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

// multipartMemory is how much of an upload is held in memory before spilling to disk
const multipartMemory = 8 << 20

// ResumeResponse is returned by the upload and edit endpoints
type ResumeResponse struct {
	Resume       *db.Resume          `json:"resume,omitempty"`
	Registration *types.Registration `json:"registration"`
	Experience   *experience.Summary `json:"experience,omitempty"`
	Metadata     *ingestion.Metadata `json:"metadata,omitempty"`
	Duplicate    bool                `json:"duplicate,omitempty"`
}

// handleUploadResume parses an uploaded resume file and saves it when persistence is on
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if s.parser == nil {
		s.errorFrom(w, &ErrUnavailable{Feature: "resume parsing"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if HTTPStatus(err) == http.StatusRequestEntityTooLarge {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	if !ingestion.IsSupported(header.Filename) {
		s.errorResponse(w, http.StatusUnsupportedMediaType, "Unsupported file type: "+filepath.Ext(header.Filename))
		return
	}

	asOf, err := types.ParseAsOf(r.FormValue("as_of"), s.now())
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := ingestion.ExtractFromReader(header.Filename, file)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	text := ingestion.CleanText(raw)
	metadata := ingestion.NewMetadata(text, header.Filename)

	ctx := r.Context()
	if s.store != nil && text != "" {
		existing, err := s.store.FindResumeByHash(ctx, metadata.Hash)
		if err != nil {
			s.errorFrom(w, err)
			return
		}
		if existing != nil {
			s.log.Infow("duplicate upload", "resume_id", existing.ID, "hash", metadata.Hash)
			s.jsonResponse(w, http.StatusOK, ResumeResponse{
				Resume:       existing,
				Registration: &existing.Registration,
				Metadata:     metadata,
				Duplicate:    true,
			})
			return
		}
	}

	result, err := s.parser.Parse(ctx, text, asOf)
	if err != nil {
		s.log.Warnw("resume parse failed", "filename", metadata.Filename, "error", err)
		s.errorFrom(w, err)
		return
	}

	resp := ResumeResponse{
		Registration: result.Registration,
		Experience:   &result.Experience,
		Metadata:     metadata,
	}
	if s.store == nil {
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	saved, err := s.store.SaveResume(ctx, &db.ResumeCreateInput{
		Filename:     metadata.Filename,
		ContentHash:  metadata.Hash,
		Registration: result.Registration,
	})
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	resp.Resume = saved
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleListResumes lists saved resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, &ErrUnavailable{Feature: "persistence"})
		return
	}

	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	resumes, total, err := s.store.ListResumes(r.Context(), db.ListResumesOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// handleGetResume returns one saved resume
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleUpdateResume stores an edited registration, recomputing its total experience
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	var req types.ResumeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.decodeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	asOf, err := types.ParseAsOf(req.AsOf, s.now())
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	reg := &req.Registration
	summary := parsing.NormalizeRegistration(reg, asOf)
	if err := parsing.ValidateRegistration(reg); err != nil {
		s.errorFrom(w, err)
		return
	}

	updated, err := s.store.UpdateResume(r.Context(), id, reg)
	if err != nil {
		if errors.Is(err, db.ErrResumeNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume not found")
			return
		}
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ResumeResponse{
		Resume:       updated,
		Registration: &updated.Registration,
		Experience:   &summary,
	})
}

// handleDeleteResume deletes a saved resume
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resumeID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrResumeNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume not found")
			return
		}
		s.errorFrom(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resumeID checks persistence is on and parses the {id} path value, writing the error response itself
func (s *Server) resumeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.store == nil {
		s.errorFrom(w, &ErrUnavailable{Feature: "persistence"})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}
