package gprofiler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestProfile(t *testing.T) {
	var gotRequest profileRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(profileResponse{
			Result: []Term{
				{
					Native:        "GO:0003774",
					Name:          "cytoskeletal motor activity",
					Source:        "GO:MF",
					PValue:        2.5e-4,
					Intersections: []string{"myo-3"},
				},
			},
		})
	}))
	defer server.Close()

	var client = NewClient(server.URL)
	terms, err := client.Profile("celegans", []string{"myo-3", "act-1"})
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}

	if gotRequest.Organism != "celegans" {
		t.Errorf("organism = %q", gotRequest.Organism)
	}
	if !reflect.DeepEqual(gotRequest.Query, []string{"myo-3", "act-1"}) {
		t.Errorf("query = %v", gotRequest.Query)
	}
	if !reflect.DeepEqual(gotRequest.Sources, DefaultSources) {
		t.Errorf("sources = %v", gotRequest.Sources)
	}
	if gotRequest.UserThreshold != 0.05 {
		t.Errorf("user_threshold = %v", gotRequest.UserThreshold)
	}

	if len(terms) != 1 {
		t.Fatalf("Expected 1 term, got %d", len(terms))
	}
	if terms[0].Native != "GO:0003774" || terms[0].PValue != 2.5e-4 {
		t.Errorf("terms[0] = %+v", terms[0])
	}
}

func TestProfileServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	var client = NewClient(server.URL)
	if _, err := client.Profile("celegans", []string{"act-1"}); err == nil {
		t.Fatal("Expected an error for a non-200 response, but got nil")
	}
}

func TestNewClientDefaults(t *testing.T) {
	var client = NewClient("")
	if client.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", client.BaseURL)
	}
	if client.UserThreshold != 0.05 {
		t.Errorf("UserThreshold = %v", client.UserThreshold)
	}
}

func TestTopTerms(t *testing.T) {
	var terms = []Term{
		{Native: "GO:3", PValue: 0.03},
		{Native: "GO:1", PValue: 0.001},
		{Native: "GO:2", PValue: 0.02},
	}

	var top = TopTerms(terms, 2)
	if len(top) != 2 || top[0].Native != "GO:1" || top[1].Native != "GO:2" {
		t.Errorf("TopTerms(2) = %+v", top)
	}

	if got := TopTerms(terms, 0); len(got) != 3 {
		t.Errorf("TopTerms(0) should keep everything, got %d", len(got))
	}
	if got := TopTerms(terms, 10); len(got) != 3 {
		t.Errorf("TopTerms(10) should keep everything, got %d", len(got))
	}

	// input order untouched
	if terms[0].Native != "GO:3" {
		t.Errorf("input mutated: %+v", terms)
	}
}
