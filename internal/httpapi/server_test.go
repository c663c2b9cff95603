package httpapi

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/voteguard/internal/audit"
	"github.com/luxfi/voteguard/internal/ballotstore"
	"github.com/luxfi/voteguard/internal/blindsign"
	"github.com/luxfi/voteguard/internal/electionstore"
	"github.com/luxfi/voteguard/internal/health"
	"github.com/luxfi/voteguard/internal/metrics"
	"github.com/luxfi/voteguard/internal/storage/memdb"
	"github.com/luxfi/voteguard/internal/submit"
	"github.com/luxfi/voteguard/internal/tally"
	"github.com/luxfi/voteguard/internal/voterstatus"
)

func newTestServer(t *testing.T, e *electionstore.Election) (*Server, *http.ServeMux) {
	t.Helper()
	db := memdb.New()
	elections := electionstore.New(db)
	require.NoError(t, elections.Put(e))
	keys := electionstore.NewKeyStore(elections, 1024)
	statuses := voterstatus.New(db)
	ballots := ballotstore.New(db)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	srv := NewServer(Deps{
		Elections: elections,
		Keys:      keys,
		Statuses:  statuses,
		Ballots:   ballots,
		Signer:    blindsign.New(elections, keys, statuses),
		Submitter: submit.New(elections, ballots),
		Tallier:   tally.New(elections, ballots),
		Auditor:   audit.New(ballots),
		Health:    health.New(),
		Metrics:   m,
	})

	mux := http.NewServeMux()
	srv.Routes(mux)
	return srv, mux
}

func TestPublicKeyEndpoint(t *testing.T) {
	e := &electionstore.Election{ID: "e1", Name: "Test", Kind: electionstore.KindChoice}
	_, mux := newTestServer(t, e)

	req := httptest.NewRequest(http.MethodGet, "/vote/e1/public-key", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/x-pem-file", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "PUBLIC KEY")
}

func TestPublicKeyUnknownElection(t *testing.T) {
	e := &electionstore.Election{ID: "e1"}
	_, mux := newTestServer(t, e)

	req := httptest.NewRequest(http.MethodGet, "/vote/missing/public-key", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignEligibilityForbidden(t *testing.T) {
	e := &electionstore.Election{
		ID: "e1", Kind: electionstore.KindChoice,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now().Add(time.Hour),
		AllowedVoters: map[string]struct{}{"alice": {}},
	}
	_, mux := newTestServer(t, e)

	body := strings.NewReader(`{"blinded_message":"` + base64.StdEncoding.EncodeToString([]byte("x")) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/vote/e1/sign", body)
	req.Header.Set("X-Voter-Id", "mallory")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSignAndSubmitHappyPath(t *testing.T) {
	e := &electionstore.Election{
		ID: "e1", Kind: electionstore.KindChoice,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now().Add(time.Hour),
		AllowedVoters: map[string]struct{}{"alice": {}},
		Propositions:  []electionstore.Proposition{{ID: "p1", Text: "Approve?"}},
	}
	_, mux := newTestServer(t, e)

	token := "tk-abc"
	data := `{"choice":true}`
	message := token + ":" + data
	digest := sha256.Sum256([]byte(message))
	// stand in for the client's blinding protocol: blind the digest with
	// factor 1 (no-op blinding), so the "blinded" value IS sha256(message).
	blinded := base64.StdEncoding.EncodeToString(digest[:])

	signBody := strings.NewReader(`{"blinded_message":"` + blinded + `"}`)
	signReq := httptest.NewRequest(http.MethodPost, "/vote/e1/sign", signBody)
	signReq.Header.Set("X-Voter-Id", "alice")
	signRec := httptest.NewRecorder()
	mux.ServeHTTP(signRec, signReq)
	require.Equal(t, http.StatusOK, signRec.Code)

	var signResp signResponse
	require.NoError(t, json.Unmarshal(signRec.Body.Bytes(), &signResp))
	require.NotEmpty(t, signResp.Signature)

	// With blinding factor 1, the signature IS the server's raw signature
	// over sha256(message) — no unblinding step needed to recover it.
	form := url.Values{"data": {data}, "token": {token}, "signature": {signResp.Signature}}
	submitReq := httptest.NewRequest(http.MethodPost, "/vote/e1/submit", strings.NewReader(form.Encode()))
	submitReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	submitRec := httptest.NewRecorder()
	mux.ServeHTTP(submitRec, submitReq)
	require.Equal(t, http.StatusCreated, submitRec.Code)

	var submitResp submitResponse
	require.NoError(t, json.Unmarshal(submitRec.Body.Bytes(), &submitResp))
	require.True(t, submitResp.IsNew)
	require.Equal(t, token, submitResp.BulletinID)

	// idempotent retry
	submitRec2 := httptest.NewRecorder()
	submitReq2 := httptest.NewRequest(http.MethodPost, "/vote/e1/submit", strings.NewReader(form.Encode()))
	submitReq2.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	mux.ServeHTTP(submitRec2, submitReq2)
	require.Equal(t, http.StatusOK, submitRec2.Code)

	// digest
	hashReq := httptest.NewRequest(http.MethodGet, "/vote/e1/hash", nil)
	hashRec := httptest.NewRecorder()
	mux.ServeHTTP(hashRec, hashReq)
	require.Equal(t, http.StatusOK, hashRec.Code)
	var hashResp hashResponse
	require.NoError(t, json.Unmarshal(hashRec.Body.Bytes(), &hashResp))
	want := sha256.Sum256([]byte(token + ":" + data))
	require.Equal(t, hex.EncodeToString(want[:]), hashResp.Digest)

	// ballot listing
	listReq := httptest.NewRequest(http.MethodGet, "/data/ballots/e1/", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)
	require.Contains(t, listRec.Body.String(), token)

	// single ballot
	getReq := httptest.NewRequest(http.MethodGet, "/data/ballots/e1/"+token, nil)
	getRec := httptest.NewRecorder()
	mux.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)
	require.JSONEq(t, data, getRec.Body.String())
}

func TestListElectionsFiltersToOpen(t *testing.T) {
	db := memdb.New()
	elections := electionstore.New(db)
	now := time.Now()
	require.NoError(t, elections.Put(&electionstore.Election{
		ID: "open", Kind: electionstore.KindChoice,
		StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
	}))
	require.NoError(t, elections.Put(&electionstore.Election{
		ID: "upcoming", Kind: electionstore.KindChoice,
		StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour),
	}))
	require.NoError(t, elections.Put(&electionstore.Election{
		ID: "ended", Kind: electionstore.KindChoice,
		StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour),
	}))

	keys := electionstore.NewKeyStore(elections, 1024)
	statuses := voterstatus.New(db)
	ballots := ballotstore.New(db)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	srv := NewServer(Deps{
		Elections: elections,
		Keys:      keys,
		Statuses:  statuses,
		Ballots:   ballots,
		Signer:    blindsign.New(elections, keys, statuses),
		Submitter: submit.New(elections, ballots),
		Tallier:   tally.New(elections, ballots),
		Auditor:   audit.New(ballots),
		Health:    health.New(),
		Metrics:   m,
	})
	mux := http.NewServeMux()
	srv.Routes(mux)

	req := httptest.NewRequest(http.MethodGet, "/vote/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []electionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "open", got[0].ID)
}

func TestResultsChoiceElection(t *testing.T) {
	e := &electionstore.Election{
		ID: "e1", Kind: electionstore.KindChoice,
		Propositions: []electionstore.Proposition{{ID: "p1", Text: "Approve?"}},
	}
	_, mux := newTestServer(t, e)

	req := httptest.NewRequest(http.MethodGet, "/vote/e1/results", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
