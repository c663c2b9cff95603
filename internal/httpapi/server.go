// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package httpapi

import (
	"net/http"

	"github.com/luxfi/log"

	"github.com/luxfi/voteguard/internal/audit"
	"github.com/luxfi/voteguard/internal/ballotstore"
	"github.com/luxfi/voteguard/internal/blindsign"
	"github.com/luxfi/voteguard/internal/electionstore"
	"github.com/luxfi/voteguard/internal/health"
	"github.com/luxfi/voteguard/internal/metrics"
	"github.com/luxfi/voteguard/internal/submit"
	"github.com/luxfi/voteguard/internal/tally"
	"github.com/luxfi/voteguard/internal/voterstatus"
)

// VoterIdentity extracts the authenticated voter id from a request. The
// identity/authentication subsystem itself is out of this core's scope;
// this is its documented interface. The default implementation reads the
// X-Voter-Id header, the contract an upstream auth proxy is expected to
// satisfy.
type VoterIdentity func(r *http.Request) string

// HeaderVoterIdentity reads the voter id from the X-Voter-Id header.
func HeaderVoterIdentity(r *http.Request) string {
	return r.Header.Get("X-Voter-Id")
}

// Server wires every collaborator onto the HTTP surface.
type Server struct {
	elections *electionstore.Store
	keys      *electionstore.KeyStore
	statuses  *voterstatus.Store
	ballots   *ballotstore.Store
	signer    *blindsign.Signer
	submitter *submit.Submitter
	tallier   *tally.Tallier
	auditor   *audit.Auditor
	health    *health.Checkers
	metrics   *metrics.Metrics
	identity  VoterIdentity
	log       log.Logger
}

// Deps bundles every collaborator Server needs, so construction reads as
// a single dependency list instead of a long positional call.
type Deps struct {
	Elections *electionstore.Store
	Keys      *electionstore.KeyStore
	Statuses  *voterstatus.Store
	Ballots   *ballotstore.Store
	Signer    *blindsign.Signer
	Submitter *submit.Submitter
	Tallier   *tally.Tallier
	Auditor   *audit.Auditor
	Health    *health.Checkers
	Metrics   *metrics.Metrics
	Identity  VoterIdentity
	Log       log.Logger
}

// NewServer builds a Server from Deps, defaulting Identity to
// HeaderVoterIdentity when unset.
func NewServer(d Deps) *Server {
	identity := d.Identity
	if identity == nil {
		identity = HeaderVoterIdentity
	}
	return &Server{
		elections: d.Elections,
		keys:      d.Keys,
		statuses:  d.Statuses,
		ballots:   d.Ballots,
		signer:    d.Signer,
		submitter: d.Submitter,
		tallier:   d.Tallier,
		auditor:   d.Auditor,
		health:    d.Health,
		metrics:   d.Metrics,
		identity:  identity,
		log:       d.Log,
	}
}

// Routes registers every endpoint onto mux, using the Go 1.22+
// method+path ServeMux patterns.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /vote/", s.handleListElections)
	mux.HandleFunc("GET /vote/{election_id}/public-key", s.handlePublicKey)
	mux.HandleFunc("GET /vote/{election_id}/form", s.handleForm)
	mux.HandleFunc("POST /vote/{election_id}/sign", s.handleSign)
	mux.HandleFunc("POST /vote/{election_id}/submit", s.handleSubmit)
	mux.HandleFunc("GET /vote/{election_id}/hash", s.handleHash)
	mux.HandleFunc("GET /vote/{election_id}/results", s.handleResults)
	mux.HandleFunc("GET /data/ballots/{election_id}/", s.handleListBallots)
	mux.HandleFunc("GET /data/ballots/{election_id}/{token}", s.handleGetBallot)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metricz", metricsHandler())
}
