package pipeline

import (
	"sort"
	"strings"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
)

// SortKey selects the ordering of the derived view.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
)

const DefaultMinRelevance = 40

// Query drives the derived view over the last fetched result set. Changing
// it never triggers a network call by itself.
type Query struct {
	Term         string
	Location     string
	Skills       []string
	MinRelevance float64
	Sort         SortKey
}

func DefaultQuery() Query {
	return Query{
		MinRelevance: DefaultMinRelevance,
		Sort:         SortRelevance,
	}
}

// Apply derives the displayed list from the fetched set. Pure: the fetched
// jobs are never reordered or mutated, the result is a fresh slice.
func (q Query) Apply(jobs *careerforge.Jobs) []*careerforge.Job {
	if jobs == nil {
		return nil
	}

	view := make([]*careerforge.Job, 0, jobs.Len())
	for _, job := range jobs.Items {
		if q.matches(job) {
			view = append(view, job)
		}
	}

	switch q.Sort {
	case SortDate:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].PublishedAt().After(view[j].PublishedAt())
		})
	default:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Relevance > view[j].Relevance
		})
	}

	return view
}

func (q Query) matches(job *careerforge.Job) bool {
	if job.Relevance < q.MinRelevance {
		return false
	}

	if term := strings.ToLower(strings.TrimSpace(q.Term)); term != "" {
		if !strings.Contains(strings.ToLower(job.Title), term) &&
			!strings.Contains(strings.ToLower(job.Company), term) &&
			!containsFold(job.Skills, term) {
			return false
		}
	}

	if loc := strings.ToLower(strings.TrimSpace(q.Location)); loc != "" {
		if !containsFold(job.Locations, loc) {
			return false
		}
	}

	if len(q.Skills) > 0 && !sharesSkill(q.Skills, job.Skills) {
		return false
	}

	return true
}

// containsFold reports whether any value contains the lowercased substring.
func containsFold(values []string, sub string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}

// sharesSkill reports whether the job lists at least one selected skill.
func sharesSkill(selected, jobSkills []string) bool {
	for _, want := range selected {
		for _, have := range jobSkills {
			if want == have {
				return true
			}
		}
	}
	return false
}
