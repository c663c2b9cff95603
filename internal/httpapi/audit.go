// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/luxfi/voteguard/internal/audit"
)

type hashResponse struct {
	ElectionID string `json:"election_id"`
	Digest     string `json:"digest"`
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	if _, err := s.elections.Get(electionID); err != nil {
		writeElectionError(w, err)
		return
	}

	start := time.Now()
	digest, err := s.auditor.Digest(electionID)
	s.metrics.DigestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, hashResponse{ElectionID: electionID, Digest: digest})
}

func (s *Server) handleListBallots(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	if _, err := s.elections.Get(electionID); err != nil {
		writeElectionError(w, err)
		return
	}
	views, err := s.auditor.List(electionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetBallot(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	token := r.PathValue("token")
	view, err := s.auditor.Get(electionID, token)
	if err != nil {
		if errors.Is(err, audit.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ballot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(view.Result))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Report(r.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}
