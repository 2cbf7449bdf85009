package careerforge

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	profileAPIURL = "http://127.0.0.1:8000"
	jobsAPIURL    = "http://127.0.0.1:8001"
	userAgent     = "sharanb/careerforge-cli"

	// Max result count for a single search request.
	searchTopK = 20
)

// Client talks to the two careerforge backends: the profile backend
// (registration, resume, questionnaire) and the jobs backend
// (recommendations, search, career tree).
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	ProfileURL string
	JobsURL    string
}

func New(ctx context.Context, logger *zap.Logger) *Client {
	return &Client{
		ctx:        ctx,
		ProfileURL: profileAPIURL,
		JobsURL:    jobsAPIURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
