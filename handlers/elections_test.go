// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/naijavote/handlers"
	"github.com/danielhkuo/naijavote/models"
	"github.com/danielhkuo/naijavote/registry"
	"github.com/danielhkuo/naijavote/testutil"
)

func TestCreateElectionHandler(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	h := handlers.NewElectionHandler(registry.New(dbConn))

	start := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)

	w := httptest.NewRecorder()
	h.Create(w, testutil.MakeRequest("POST", "/api/elections", models.CreateElectionRequest{
		Title:       "Presidential Election",
		Description: "The national presidential vote",
		StartDate:   start,
		EndDate:     end,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp struct {
		Election models.Election `json:"election"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.Election.Status != models.StatusDraft {
		t.Errorf("Expected DRAFT election, got %s", resp.Election.Status)
	}
}

func TestCreateElectionHandlerValidation(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	h := handlers.NewElectionHandler(registry.New(dbConn))

	start := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	end := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)

	cases := []struct {
		name string
		req  models.CreateElectionRequest
	}{
		{"short title", models.CreateElectionRequest{
			Title: "ab", Description: "A valid description", StartDate: start, EndDate: end}},
		{"short description", models.CreateElectionRequest{
			Title: "Election", Description: "short", StartDate: start, EndDate: end}},
		{"bad start date", models.CreateElectionRequest{
			Title: "Election", Description: "A valid description", StartDate: "tomorrow", EndDate: end}},
		{"bad end date", models.CreateElectionRequest{
			Title: "Election", Description: "A valid description", StartDate: start, EndDate: "next week"}},
		{"inverted window", models.CreateElectionRequest{
			Title: "Election", Description: "A valid description", StartDate: end, EndDate: start}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Create(w, testutil.MakeRequest("POST", "/api/elections", tc.req, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	h := handlers.NewElectionHandler(registry.New(dbConn))

	id := testutil.CreateTestElection(t, dbConn, models.StatusDraft,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	req := testutil.MakeRequest("PATCH", "/api/elections/"+id+"/status",
		models.UpdateStatusRequest{Status: "OPEN"}, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.UpdateStatus(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Backward move is a conflict
	req = testutil.MakeRequest("PATCH", "/api/elections/"+id+"/status",
		models.UpdateStatusRequest{Status: "DRAFT"}, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.UpdateStatus(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Unknown status is a validation error
	req = testutil.MakeRequest("PATCH", "/api/elections/"+id+"/status",
		models.UpdateStatusRequest{Status: "ARCHIVED"}, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	h.UpdateStatus(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Unknown election
	req = testutil.MakeRequest("PATCH", "/api/elections/nope/status",
		models.UpdateStatusRequest{Status: "OPEN"}, nil)
	req.SetPathValue("id", "nope")
	w = httptest.NewRecorder()
	h.UpdateStatus(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAddCandidateHandler(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	h := handlers.NewElectionHandler(registry.New(dbConn))

	id := testutil.CreateTestElection(t, dbConn, models.StatusDraft,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))

	add := func(name, party string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/elections/"+id+"/candidates",
			models.AddCandidateRequest{Name: name, Party: party}, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.AddCandidate(w, req)
		return w
	}

	testutil.AssertStatus(t, add("Candidate A", "Red Party"), http.StatusCreated)
	testutil.AssertStatus(t, add("Candidate B", "red party"), http.StatusConflict)
	testutil.AssertStatus(t, add("X", "Blue Party"), http.StatusBadRequest)
	testutil.AssertStatus(t, add("Candidate C", "Y"), http.StatusBadRequest)
}

func TestGetElectionHandlerNotFound(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	h := handlers.NewElectionHandler(registry.New(dbConn))

	req := testutil.MakeRequest("GET", "/api/elections/nope", nil, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	h.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestRemoveCandidateHandlerNotFound(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	h := handlers.NewElectionHandler(registry.New(dbConn))

	req := testutil.MakeRequest("DELETE", "/api/elections/candidates/nope", nil, nil)
	req.SetPathValue("candidateId", "nope")
	w := httptest.NewRecorder()
	h.RemoveCandidate(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
