package pipeline

import (
	"errors"
	"testing"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
)

type stubFetcher struct {
	recJobs     *careerforge.Jobs
	recErr      error
	searchJobs  *careerforge.Jobs
	searchErr   error
	recCalls    int
	searchCalls int
	lastTerm    string
	lastMin     float64
}

func (f *stubFetcher) Recommendations(userID string) (*careerforge.Jobs, error) {
	f.recCalls++
	return f.recJobs, f.recErr
}

func (f *stubFetcher) Search(userID, term string, minRelevance float64) (*careerforge.Jobs, error) {
	f.searchCalls++
	f.lastTerm = term
	f.lastMin = minRelevance
	return f.searchJobs, f.searchErr
}

func singleJob(id int, title string) *careerforge.Jobs {
	return &careerforge.Jobs{Items: []*careerforge.Job{
		{ID: id, Title: title, Relevance: 90},
	}}
}

func TestLoadRecommendationsCommits(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{recJobs: singleJob(1, "ML Engineer")}
	p := New(fetcher, nil)

	if err := p.LoadRecommendations("u1"); err != nil {
		t.Fatal(err)
	}

	snap := p.View()
	if snap.Mode != SourceRecommendation {
		t.Fatalf("unexpected mode %q", snap.Mode)
	}
	if snap.Fetched != 1 || snap.Loading || snap.Err != "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestRunSearchPassesQueryMinRelevance(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{searchJobs: singleJob(2, "Data Analyst")}
	p := New(fetcher, nil)

	q := p.Query()
	q.MinRelevance = 65
	p.SetQuery(q)

	if err := p.RunSearch("u1", "analyst"); err != nil {
		t.Fatal(err)
	}

	if fetcher.lastTerm != "analyst" || fetcher.lastMin != 65 {
		t.Fatalf("search called with term=%q min=%v", fetcher.lastTerm, fetcher.lastMin)
	}
	if p.View().Mode != SourceSearch {
		t.Fatalf("expected search mode, got %q", p.View().Mode)
	}
}

func TestRunSearchEmptyTermFallsBack(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{recJobs: singleJob(1, "ML Engineer")}
	p := New(fetcher, nil)

	if err := p.RunSearch("u1", "   "); err != nil {
		t.Fatal(err)
	}

	if fetcher.searchCalls != 0 || fetcher.recCalls != 1 {
		t.Fatalf("expected recommendation fallback, got rec=%d search=%d",
			fetcher.recCalls, fetcher.searchCalls)
	}
	if p.View().Mode != SourceRecommendation {
		t.Fatalf("expected recommendation mode, got %q", p.View().Mode)
	}
}

func TestFetchErrorPreservesPriorSet(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{recJobs: singleJob(1, "ML Engineer")}
	p := New(fetcher, nil)

	if err := p.LoadRecommendations("u1"); err != nil {
		t.Fatal(err)
	}

	fetcher.recJobs = nil
	fetcher.recErr = errors.New("connection refused")

	if err := p.LoadRecommendations("u1"); err == nil {
		t.Fatal("expected error")
	}

	snap := p.View()
	if snap.Fetched != 1 {
		t.Fatalf("prior result set lost: fetched=%d", snap.Fetched)
	}
	if snap.Err != loadFailed {
		t.Fatalf("unexpected error message %q", snap.Err)
	}
	if snap.Loading {
		t.Fatal("loading gate stuck after failed fetch")
	}
}

func TestFetchErrorSurfacesRemoteDetail(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		searchErr: &careerforge.RemoteError{Op: "search", Status: 429, Detail: "rate limited"},
	}
	p := New(fetcher, nil)

	if err := p.RunSearch("u1", "golang"); err == nil {
		t.Fatal("expected error")
	}

	if msg := p.View().Err; msg != "rate limited" {
		t.Fatalf("expected remote detail, got %q", msg)
	}
}

func TestRefreshRepeatsCurrentSource(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		recJobs:    singleJob(1, "ML Engineer"),
		searchJobs: singleJob(2, "Data Analyst"),
	}
	p := New(fetcher, nil)

	if err := p.Refresh("u1"); err != nil {
		t.Fatal(err)
	}
	if fetcher.recCalls != 1 {
		t.Fatalf("refresh before any search must load recommendations, rec=%d", fetcher.recCalls)
	}

	q := p.Query()
	q.Term = "analyst"
	p.SetQuery(q)
	if err := p.RunSearch("u1", "analyst"); err != nil {
		t.Fatal(err)
	}

	if err := p.Refresh("u1"); err != nil {
		t.Fatal(err)
	}
	if fetcher.searchCalls != 2 {
		t.Fatalf("refresh in search mode must re-run the search, search=%d", fetcher.searchCalls)
	}
}

// blockingFetcher parks each call until the test releases it, so two fetches
// can be forced to overlap deterministically.
type blockingFetcher struct {
	started       chan string
	releaseRec    chan struct{}
	releaseSearch chan struct{}
	recResult     *careerforge.Jobs
	searchResult  *careerforge.Jobs
}

func (f *blockingFetcher) Recommendations(userID string) (*careerforge.Jobs, error) {
	f.started <- "recommendations"
	<-f.releaseRec
	return f.recResult, nil
}

func (f *blockingFetcher) Search(userID, term string, minRelevance float64) (*careerforge.Jobs, error) {
	f.started <- "search"
	<-f.releaseSearch
	return f.searchResult, nil
}

func TestLatestRequestWins(t *testing.T) {
	t.Parallel()

	fetcher := &blockingFetcher{
		started:       make(chan string),
		releaseRec:    make(chan struct{}),
		releaseSearch: make(chan struct{}),
		recResult:     singleJob(1, "Stale Recommendation"),
		searchResult:  singleJob(2, "Fresh Search"),
	}
	p := New(fetcher, nil)

	firstDone := make(chan error, 1)
	go func() { firstDone <- p.LoadRecommendations("u1") }()
	<-fetcher.started

	// The second request begins while the first is still in flight.
	secondDone := make(chan error, 1)
	go func() { secondDone <- p.RunSearch("u1", "golang") }()
	<-fetcher.started

	// The newer request resolves first and commits.
	close(fetcher.releaseSearch)
	if err := <-secondDone; err != nil {
		t.Fatal(err)
	}

	// The older request resolves last; its response must be discarded.
	close(fetcher.releaseRec)
	if err := <-firstDone; err != nil {
		t.Fatal(err)
	}

	snap := p.View()
	if snap.Mode != SourceSearch {
		t.Fatalf("stale response clobbered the newer set: mode=%q", snap.Mode)
	}
	if snap.Fetched != 1 || len(snap.Jobs) != 1 || snap.Jobs[0].ID != 2 {
		t.Fatalf("expected the search result set, got %+v", snap)
	}
	if snap.Loading {
		t.Fatal("loading gate stuck after resolution")
	}
}
