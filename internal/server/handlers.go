package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/schemas"
	"github.com/jonathan/leadgen/internal/server/middleware"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies; filter sets and profiles are small.
const maxBodyBytes = 64 << 10

// EnrichRequest is the body of POST /api/profiles/enrich. Either Profile or URL
// must be set; Profile wins when both are.
type EnrichRequest struct {
	Profile *types.Profile `json:"profile,omitempty"`
	URL     string         `json:"url,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.PlatformCatalog())
}

// handleSearch runs an interactive search. Backend failures yield an empty page,
// so any valid request gets a 200.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	f, err := s.decodeFilterSet(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	userID, _ := middleware.GetUserID(r)

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	ctx, done := s.guard.begin(ctx, userID.String())

	page := s.searcher.Search(ctx, f)
	if done() {
		w.Header().Set("X-Search-Superseded", "true")
	}

	s.jsonResponse(w, http.StatusOK, page)
}

// handleExport returns every reachable result as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := s.decodeFilterSet(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	artifact, err := s.exporter.Export(ctx, f.WithPage(1))
	if err != nil {
		s.logger.WithFields(logrus.Fields{"platform": f.Platform}).WithError(err).Warn("export failed")
		s.errorFromErr(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("X-Export-Rows", strconv.Itoa(artifact.Rows))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.WithError(err).Warn("failed to write export")
	}
}

// handleEnrich fills in a profile from its public page.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var profile types.Profile
	switch {
	case req.Profile != nil:
		profile = *req.Profile
		if profile.Education == nil {
			profile.Education = []types.Education{}
		}
	case req.URL != "":
		profile = types.NewProfile()
		profile.Link = req.URL
	default:
		s.errorFromErr(w, &ErrValidation{Field: "url", Message: "a profile or url is required"})
		return
	}
	if profile.Link == "" {
		s.errorFromErr(w, &ErrValidation{Field: "profile.link", Message: "is required"})
		return
	}
	if _, ok := fetch.DetectPlatform(profile.Link); !ok {
		field := "profile.link"
		if req.Profile == nil {
			field = "url"
		}
		s.errorFromErr(w, &ErrValidation{Field: field, Message: "must be a supported profile URL"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	enriched, err := s.enricher.Enrich(ctx, profile)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, enriched)
}

// decodeFilterSet reads and validates a filter set body. A missing page means page 1.
func (s *Server) decodeFilterSet(w http.ResponseWriter, r *http.Request) (types.FilterSet, error) {
	var f types.FilterSet

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return f, &ErrValidation{Message: "request body too large or unreadable"}
	}
	if !json.Valid(body) {
		return f, &ErrValidation{Message: "invalid JSON"}
	}
	if err := schemas.ValidateFilterSet(body); err != nil {
		return f, newValidationError(err)
	}
	if err := json.Unmarshal(body, &f); err != nil {
		return f, &ErrValidation{Message: "invalid JSON"}
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if err := f.Validate(); err != nil {
		return f, newValidationError(err)
	}
	return f, nil
}
