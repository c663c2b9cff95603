// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpapi

import (
	"errors"
	"net/http"

	"github.com/luxfi/log"

	"github.com/luxfi/voteguard/internal/metrics"
	"github.com/luxfi/voteguard/internal/submit"
)

type submitResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	BulletinID string `json:"bulletin_id"`
	IsNew      bool   `json:"is_new"`
}

// handleSubmit implements unauthenticated, signature-verifying, idempotent
// ballot submission.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")

	if err := r.ParseForm(); err != nil {
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	data := r.PostForm.Get("data")
	token := r.PostForm.Get("token")
	signature := r.PostForm.Get("signature")
	if data == "" || token == "" || signature == "" {
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeError(w, http.StatusBadRequest, "missing data, token, or signature")
		return
	}

	res, err := s.submitter.Submit(electionID, token, data, signature)
	if err != nil {
		s.handleSubmitError(w, err)
		return
	}

	status := http.StatusOK
	if res.IsNew {
		status = http.StatusCreated
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	} else {
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeRetry).Inc()
	}
	writeJSON(w, status, submitResponse{
		Status:     "success",
		BulletinID: res.BulletinID,
		IsNew:      res.IsNew,
	})
}

func (s *Server) handleSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submit.ErrNotFound):
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
		writeError(w, http.StatusNotFound, "election not found")
	case errors.Is(err, submit.ErrBadRequest):
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.metrics.SubmitRequests.WithLabelValues(metrics.OutcomeError).Inc()
		if s.log != nil {
			s.log.Error("submit failed", log.Err(err))
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
