// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/voteguard/internal/blindsign"
	"github.com/luxfi/voteguard/internal/metrics"
)

type signRequest struct {
	BlindedMessage string `json:"blinded_message"`
}

type signResponse struct {
	Signature string `json:"signature"`
	Status    string `json:"status,omitempty"`
}

// handleSign implements authenticated, single-use, idempotent blind
// signing. Eligibility is enforced here, at the facade boundary, before
// the signer is consulted, so an ineligible voter never reaches the
// signing algorithm itself.
func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	voterID := s.identity(r)

	e, err := s.elections.Get(electionID)
	if err != nil {
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
		writeElectionError(w, err)
		return
	}

	if ok, reason := e.CanVote(voterID, time.Now().UTC()); !ok {
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeForbidden).Inc()
		writeError(w, http.StatusForbidden, "not eligible to vote: "+string(reason))
		return
	}

	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BlindedMessage == "" {
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeError(w, http.StatusBadRequest, "missing or malformed blinded_message")
		return
	}

	res, err := s.signer.Sign(electionID, voterID, req.BlindedMessage)
	if err != nil {
		s.handleSignError(w, err)
		return
	}

	resp := signResponse{Signature: res.SignatureB64}
	if res.Retry {
		resp.Status = "already_signed_retry"
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeRetry).Inc()
	} else {
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blindsign.ErrNotFound):
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
		writeError(w, http.StatusNotFound, "election not found")
	case errors.Is(err, blindsign.ErrBadRequest):
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeError(w, http.StatusBadRequest, "malformed blinded message")
	case errors.Is(err, blindsign.ErrForbidden):
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeForbidden).Inc()
		writeError(w, http.StatusForbidden, "already obtained a signature for a different ballot")
	default:
		s.metrics.SignRequests.WithLabelValues(metrics.OutcomeError).Inc()
		if s.log != nil {
			s.log.Error("sign failed", log.Err(err))
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
