package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
	"github.com/sharanb/careerforge-cli/internal/render"
	"github.com/sharanb/careerforge-cli/internal/treeview"
)

const (
	PromptSelectPath  = "Select a path"
	PromptSelectStage = "Select a stage"
	PromptCloseStage  = "Close stage panel"
	PromptRegenerate  = "Regenerate tree"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Generate and explore your career tree",
	Run: func(_ *cobra.Command, _ []string) {
		tree()
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func tree() {
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

	selection := treeview.New()

	if err := generateTree(client, selection, userID, logger); err != nil {
		logger.Fatal("generating career tree", zap.Error(err))
	}

	for {
		fmt.Println(render.TreeOutline(selection))
		fmt.Println(render.Opportunities(selection))

		items := []string{PromptSelectPath}
		if selection.SelectedPath() != nil && len(selection.SelectedPath().Stages) > 0 {
			items = append(items, PromptSelectStage)
		}
		if selection.SelectedStage() != nil {
			items = append(items, PromptCloseStage)
		}
		items = append(items, PromptRegenerate, PromptQuit)

		prompt := promptui.Select{Label: "Career tree", Items: items}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return
		}

		switch action {
		case PromptSelectPath:
			selectPath(selection)
		case PromptSelectStage:
			selectStage(selection)
		case PromptCloseStage:
			selection.ClearStage()
		case PromptRegenerate:
			if err := generateTree(client, selection, userID, logger); err != nil {
				fmt.Println(careerforge.UserMessage(err, "Failed to generate career tree. Please try again."))
			}
		case PromptQuit:
			return
		}
	}
}

// generateTree replaces the whole tree; selection resets to the first path.
func generateTree(client *careerforge.Client, selection *treeview.Selection, userID string, logger *zap.Logger) error {
	logger.Info("generating career tree", zap.String("user_id", userID))

	generated, err := client.GenerateTree(userID)
	if err != nil {
		return err
	}

	selection.SetTree(generated)

	logger.Info("career tree generated",
		zap.Int("paths", len(generated.Paths)),
		zap.Float64("confidence", generated.Confidence),
	)

	return nil
}

func selectPath(selection *treeview.Selection) {
	generated := selection.Tree()
	if generated == nil || len(generated.Paths) == 0 {
		return
	}

	items := make([]string, 0, len(generated.Paths))
	for _, path := range generated.Paths {
		items = append(items, path.Title)
	}

	idx, _, err := (&promptui.Select{Label: "Choose a career path", Items: items}).Run()
	if err != nil {
		return
	}

	selection.SelectPath(generated.Paths[idx].ID)
}

func selectStage(selection *treeview.Selection) {
	path := selection.SelectedPath()
	if path == nil || len(path.Stages) == 0 {
		return
	}

	items := make([]string, 0, len(path.Stages))
	for _, stage := range path.Stages {
		items = append(items, stage.Name)
	}

	idx, _, err := (&promptui.Select{Label: "Choose a stage", Items: items}).Run()
	if err != nil {
		return
	}

	selection.SelectStage(path.Stages[idx].ID)
}
