// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpapi

import (
	"net/http"
	"time"

	"github.com/luxfi/voteguard/internal/electionstore"
)

type resultsResponse struct {
	ElectionID   string             `json:"election_id"`
	Kind         electionstore.Kind `json:"kind"`
	Candidates   interface{}        `json:"candidates,omitempty"`
	Propositions interface{}        `json:"propositions,omitempty"`
}

// handleResults renders the tally for an election, choosing
// majority-judgment or choice counting based on the election's kind.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	e, err := s.elections.Get(electionID)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	start := time.Now()
	defer func() { s.metrics.TallyDuration.Observe(time.Since(start).Seconds()) }()

	resp := resultsResponse{ElectionID: e.ID, Kind: e.Kind}
	switch e.Kind {
	case electionstore.KindPerson:
		candidates, err := s.tallier.PersonResults(electionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp.Candidates = candidates
	case electionstore.KindChoice:
		propositions, err := s.tallier.ChoiceResults(electionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp.Propositions = propositions
	}
	writeJSON(w, http.StatusOK, resp)
}
