package careerforge

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	recommendPath = "/recommend"
	searchPath    = "/search"
)

// Job is a single listing as returned by the jobs backend. Jobs are never
// mutated after fetching; views over a fetched set filter and reorder only.
type Job struct {
	ID          int      `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Company     string   `json:"company,omitempty"`
	ApplyLink   string   `json:"apply_link,omitempty"`
	Description string   `json:"description,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Education   []string `json:"education,omitempty"`
	Relevance   float64  `json:"relevance,omitempty"`
}

type Jobs struct {
	Items []*Job
}

// SearchParams is the body for a search request.
type SearchParams struct {
	Titles       []string `json:"titles"`
	TopK         int      `json:"top_k"`
	MinRelevance float64  `json:"min_relevance"`
}

type jobsResponse struct {
	Results []map[string]any `json:"results"`
}

// Recommendations fetches the server-ranked listing for the user.
func (c *Client) Recommendations(userID string) (*Jobs, error) {
	op := "recommendations"
	url := fmt.Sprintf("%s%s/%s", c.JobsURL, recommendPath, userID)

	var resp jobsResponse
	if err := c.getJSON(op, url, &resp); err != nil {
		return nil, err
	}

	return decodeJobs(op, resp)
}

// Search fetches listings ranked against the supplied term.
func (c *Client) Search(userID, term string, minRelevance float64) (*Jobs, error) {
	op := "search"
	url := fmt.Sprintf("%s%s/%s", c.JobsURL, searchPath, userID)

	params := &SearchParams{
		Titles:       []string{term},
		TopK:         searchTopK,
		MinRelevance: minRelevance,
	}

	var resp jobsResponse
	if err := c.postJSON(op, url, params, &resp); err != nil {
		return nil, err
	}

	return decodeJobs(op, resp)
}

func decodeJobs(op string, resp jobsResponse) (*Jobs, error) {
	if resp.Results == nil {
		return nil, &MalformedResponseError{Op: op, Missing: "results"}
	}

	var jobs []*Job
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &jobs,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(resp.Results); err != nil {
		return nil, &MalformedResponseError{Op: op, Missing: "results"}
	}

	return &Jobs{Items: jobs}, nil
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id int) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// PublishedAt parses the listing publish date. A zero time is returned for
// values the backend left empty or unparsable.
func (job *Job) PublishedAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, job.PublishDate); err == nil {
			return t
		}
	}
	return time.Time{}
}
