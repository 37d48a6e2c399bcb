package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/types"
)

// maxJSONBody caps JSON request bodies
const maxJSONBody = 1 << 20

// handleExperience computes total experience for a list of date ranges
func (s *Server) handleExperience(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req types.ExperienceRequest
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

	s.jsonResponse(w, http.StatusOK, experience.Summarize(req.Intervals, asOf))
}

// decodeError reports a JSON body that could not be decoded
func (s *Server) decodeError(w http.ResponseWriter, err error) {
	if HTTPStatus(err) == http.StatusRequestEntityTooLarge {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
}
