// Package gprofiler submits gene lists to the g:Profiler g:GOSt web
// service and returns enriched GO terms. The pipeline core only depends
// on the Profiler interface, so analyses run offline with a stub.
package gprofiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

const DefaultBaseURL = "https://biit.cs.ut.ee/gprofiler/api/gost/profile/"

// DefaultSources restricts enrichment to the three GO namespaces.
var DefaultSources = []string{"GO:BP", "GO:MF", "GO:CC"}

// Term is one enriched GO term returned by the service.
type Term struct {
	Native        string   `json:"native"`
	Name          string   `json:"name"`
	Source        string   `json:"source"`
	PValue        float64  `json:"p_value"`
	Intersections []string `json:"intersections"`
}

// Profiler is the narrow gateway interface the pipeline consumes.
type Profiler interface {
	Profile(organism string, query []string) ([]Term, error)
}

// Client talks to a g:GOSt-compatible endpoint.
type Client struct {
	BaseURL       string
	Sources       []string
	UserThreshold float64
	HTTPClient    *http.Client
}

// NewClient returns a Client for baseURL, empty for the public
// g:Profiler instance, with the default sources and p-value threshold.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:       baseURL,
		Sources:       DefaultSources,
		UserThreshold: 0.05,
		HTTPClient:    http.DefaultClient,
	}
}

type profileRequest struct {
	Organism      string   `json:"organism"`
	Query         []string `json:"query"`
	Sources       []string `json:"sources"`
	UserThreshold float64  `json:"user_threshold"`
	NoEvidences   bool     `json:"no_evidences"`
}

type profileResponse struct {
	Result []Term `json:"result"`
}

// Profile submits one gene list and decodes the enriched terms.
func (c *Client) Profile(organism string, query []string) ([]Term, error) {
	var body, err = json.Marshal(profileRequest{
		Organism:      organism,
		Query:         query,
		Sources:       c.Sources,
		UserThreshold: c.UserThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("encode enrichment query: %w", err)
	}

	resp, err := c.HTTPClient.Post(c.BaseURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("submit gene list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment service returned status %d", resp.StatusCode)
	}

	var result profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode enrichment result: %w", err)
	}
	return result.Result, nil
}

// TopTerms returns the n most significant terms, most significant
// first. n <= 0 or beyond the result keeps everything.
func TopTerms(terms []Term, n int) []Term {
	var ranked = make([]Term, len(terms))
	copy(ranked, terms)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PValue < ranked[j].PValue
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
