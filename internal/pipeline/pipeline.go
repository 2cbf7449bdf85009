package pipeline

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
)

// SourceMode names which remote call produced the current result set.
type SourceMode string

const (
	SourceRecommendation SourceMode = "recommendation"
	SourceSearch         SourceMode = "search"
)

const (
	loadFailed   = "Failed to load jobs. Please try again."
	searchFailed = "Failed to search jobs. Please try again."
)

// Fetcher is the slice of the API client the pipeline needs.
type Fetcher interface {
	Recommendations(userID string) (*careerforge.Jobs, error)
	Search(userID, term string, minRelevance float64) (*careerforge.Jobs, error)
}

// Pipeline coordinates the recommendation fetch, the search fetch, and the
// local filter/sort view. Each fetch replaces the result set wholesale;
// overlapping fetches resolve latest-request-wins via a monotonic token, so
// a stale response never clobbers a newer result set.
type Pipeline struct {
	mu      sync.Mutex
	fetcher Fetcher
	logger  *zap.Logger

	seq     uint64
	mode    SourceMode
	fetched *careerforge.Jobs
	query   Query
	loading bool
	errMsg  string
}

// Snapshot is a consistent view of the pipeline state for rendering.
type Snapshot struct {
	Mode    SourceMode
	Jobs    []*careerforge.Job
	Fetched int
	Loading bool
	Err     string
	Query   Query
}

func New(fetcher Fetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher: fetcher,
		logger:  logger,
		mode:    SourceRecommendation,
		fetched: &careerforge.Jobs{},
		query:   DefaultQuery(),
	}
}

// LoadRecommendations fetches the server-ranked listing and commits it as
// the current result set, unless a newer request superseded this one.
func (p *Pipeline) LoadRecommendations(userID string) error {
	token := p.begin()

	jobs, err := p.fetcher.Recommendations(userID)

	return p.commit(token, SourceRecommendation, jobs, err, loadFailed)
}

// RunSearch fetches listings for an explicitly submitted term. A cleared
// term falls back to recommendations. Never called on keystroke.
func (p *Pipeline) RunSearch(userID, term string) error {
	if strings.TrimSpace(term) == "" {
		return p.LoadRecommendations(userID)
	}

	p.mu.Lock()
	minRelevance := p.query.MinRelevance
	p.mu.Unlock()

	token := p.begin()

	jobs, err := p.fetcher.Search(userID, term, minRelevance)

	return p.commit(token, SourceSearch, jobs, err, searchFailed)
}

// Refresh re-runs whichever remote call produced the current set, keeping
// the view in sync with edited filters.
func (p *Pipeline) Refresh(userID string) error {
	p.mu.Lock()
	mode := p.mode
	term := p.query.Term
	p.mu.Unlock()

	if mode == SourceSearch && strings.TrimSpace(term) != "" {
		return p.RunSearch(userID, term)
	}
	return p.LoadRecommendations(userID)
}

// begin issues a new request token and flips the loading gate.
func (p *Pipeline) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.loading = true
	return p.seq
}

// commit installs a fetch outcome if its token is still current. Stale
// responses are discarded silently. A failed fetch surfaces an error message
// but leaves the previously committed result set intact.
func (p *Pipeline) commit(token uint64, mode SourceMode, jobs *careerforge.Jobs, err error, fallback string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.seq {
		p.logger.Debug("discarding superseded response",
			zap.Uint64("token", token),
			zap.Uint64("current", p.seq),
		)
		return nil
	}

	p.loading = false

	if err != nil {
		p.errMsg = careerforge.UserMessage(err, fallback)
		p.logger.Warn("fetch failed", zap.String("source", string(mode)), zap.Error(err))
		return err
	}

	p.errMsg = ""
	p.mode = mode
	p.fetched = jobs

	p.logger.Info("result set committed",
		zap.String("source", string(mode)),
		zap.Int("count", jobs.Len()),
	)

	return nil
}

// SetQuery replaces the local filter query. Recomputation is synchronous and
// never blocked by an in-flight fetch.
func (p *Pipeline) SetQuery(q Query) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
}

func (p *Pipeline) Query() Query {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// IsLoading reports whether a fetch is in flight. The search control is
// disabled while true; filter-only recomputation is not.
func (p *Pipeline) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// View returns the filtered, sorted snapshot of the current state.
func (p *Pipeline) View() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot{
		Mode:    p.mode,
		Jobs:    p.query.Apply(p.fetched),
		Fetched: p.fetched.Len(),
		Loading: p.loading,
		Err:     p.errMsg,
		Query:   p.query,
	}
}
