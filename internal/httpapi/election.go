// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/luxfi/voteguard/internal/electionstore"
)

// electionSummary is the public listing projection of an election: no key
// material, no allowed-voter list.
type electionSummary struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Kind      electionstore.Kind `json:"kind"`
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
}

// handleListElections lists elections currently open for voting
// (StartTime <= now <= EndTime).
func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	all, err := s.elections.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	now := time.Now().UTC()
	out := make([]electionSummary, 0, len(all))
	for _, e := range all {
		if !e.IsOpen(now) {
			continue
		}
		out = append(out, electionSummary{ID: e.ID, Name: e.Name, Kind: e.Kind, StartTime: e.StartTime, EndTime: e.EndTime})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePublicKey(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	if _, err := s.elections.Get(electionID); err != nil {
		writeElectionError(w, err)
		return
	}
	pem, err := s.keys.PublicKeyPEM(electionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writePEM(w, pem)
}

// formField describes one input the client should render for a dynamically
// constructed ballot form.
type formField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"` // "boolean" or "grade"
	Choices []string `json:"choices,omitempty"`
}

type formMetadata struct {
	ElectionID string             `json:"election_id"`
	Kind       electionstore.Kind `json:"kind"`
	Fields     []formField        `json:"fields"`
}

// handleForm serves the form-metadata endpoint: field specifications only,
// never key material.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	e, err := s.elections.Get(electionID)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	meta := formMetadata{ElectionID: e.ID, Kind: e.Kind}
	switch e.Kind {
	case electionstore.KindChoice:
		for _, p := range e.Propositions {
			meta.Fields = append(meta.Fields, formField{
				Name: p.ID, Label: p.Text, Kind: "boolean",
				Choices: []string{"yes", "no", "dont_know"},
			})
		}
	case electionstore.KindPerson:
		for _, c := range e.Candidates {
			meta.Fields = append(meta.Fields, formField{
				Name: c.ID, Label: c.Name, Kind: "grade",
				Choices: []string{"1", "2", "3", "4", "5", "6", "7"},
			})
		}
	}
	writeJSON(w, http.StatusOK, meta)
}

func writeElectionError(w http.ResponseWriter, err error) {
	if errors.Is(err, electionstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "election not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
