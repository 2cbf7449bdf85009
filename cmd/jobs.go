package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sharanb/careerforge-cli/internal/pipeline"
	"github.com/sharanb/careerforge-cli/internal/render"
)

const (
	PromptSearch      = "Search jobs"
	PromptClearSearch = "Clear search"
	PromptEditFilters = "Edit filters"
	PromptRefresh     = "Refresh results"
	PromptToggleSort  = "Toggle sort (relevance/date)"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse AI-ranked job listings",
	Run: func(_ *cobra.Command, _ []string) {
		jobs()
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func jobs() {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client := newClient(ctx, logger, config)
	store := newSessionStore(config)
	userID := store.UserID()

	logger.Info("loading job recommendations", zap.String("user_id", userID))

	p := pipeline.New(client, logger)

	query := pipeline.DefaultQuery()
	if config.Search != nil {
		if config.Search.MinRelevance > 0 {
			query.MinRelevance = config.Search.MinRelevance
		}
		query.Location = config.Search.Location
	}
	p.SetQuery(query)

	// First load starts from an empty set; a failure here still enters the
	// loop so the user can retry.
	if err := p.LoadRecommendations(userID); err != nil {
		logger.Warn("initial load failed", zap.Error(err))
	}

	for {
		fmt.Println(render.JobList(p.View()))

		items := []string{PromptSearch, PromptEditFilters, PromptToggleSort, PromptRefresh}
		if p.Query().Term != "" {
			items = append(items, PromptClearSearch)
		}
		items = append(items, PromptQuit)

		prompt := promptui.Select{Label: "Job discovery", Items: items}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return
		}

		if err := handleJobsAction(action, p, userID, logger); err != nil {
			logger.Info("exiting", zap.String("reason", "got quit from prompt"))
			return
		}
	}
}

func handleJobsAction(action string, p *pipeline.Pipeline, userID string, logger *zap.Logger) error {
	switch action {
	case PromptSearch:
		// The search control is gated while a fetch is in flight.
		if p.IsLoading() {
			fmt.Println("A fetch is already running, try again in a moment.")
			return nil
		}

		term, err := (&promptui.Prompt{Label: "Search jobs, companies, or skills"}).Run()
		if err != nil {
			return errExit
		}

		term = strings.TrimSpace(term)
		query := p.Query()
		query.Term = term
		p.SetQuery(query)

		if err := p.RunSearch(userID, term); err != nil {
			logger.Warn("search failed", zap.Error(err))
		}
	case PromptClearSearch:
		query := p.Query()
		query.Term = ""
		p.SetQuery(query)

		if err := p.LoadRecommendations(userID); err != nil {
			logger.Warn("reloading recommendations failed", zap.Error(err))
		}
	case PromptEditFilters:
		editFilters(p)
	case PromptToggleSort:
		query := p.Query()
		if query.Sort == pipeline.SortRelevance {
			query.Sort = pipeline.SortDate
		} else {
			query.Sort = pipeline.SortRelevance
		}
		p.SetQuery(query)
	case PromptRefresh:
		if p.IsLoading() {
			fmt.Println("A fetch is already running, try again in a moment.")
			return nil
		}

		if err := p.Refresh(userID); err != nil {
			logger.Warn("refresh failed", zap.Error(err))
		}
	case PromptQuit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}

	return nil
}

// editFilters adjusts the local view query. No network call happens here;
// the view recomputes synchronously from the last fetched set.
func editFilters(p *pipeline.Pipeline) {
	query := p.Query()

	location, err := (&promptui.Prompt{Label: "Location filter (empty for all)", Default: query.Location}).Run()
	if err != nil {
		return
	}
	query.Location = strings.TrimSpace(location)

	minRelevance, err := (&promptui.Prompt{
		Label:   "Minimum relevance (0-100)",
		Default: strconv.FormatFloat(query.MinRelevance, 'f', -1, 64),
		Validate: func(input string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
			if err != nil || v < 0 || v > 100 {
				return fmt.Errorf("enter a number between 0 and 100")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return
	}
	query.MinRelevance, _ = strconv.ParseFloat(strings.TrimSpace(minRelevance), 64)

	skills, err := (&promptui.Prompt{
		Label:   "Skill filter, comma separated (empty for all)",
		Default: strings.Join(query.Skills, ", "),
	}).Run()
	if err != nil {
		return
	}

	query.Skills = nil
	for _, skill := range strings.Split(skills, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			query.Skills = append(query.Skills, skill)
		}
	}

	p.SetQuery(query)
}
