package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
	"github.com/sharanb/careerforge-cli/internal/logger"
	"github.com/sharanb/careerforge-cli/internal/pipeline"
	"github.com/sharanb/careerforge-cli/internal/treeview"
)

const descriptionLimit = 160

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	bandHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	bandGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	bandOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	bandLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	badgeStyle = lipgloss.NewStyle().Bold(true)
)

// matchBand colors a 0-100 relevance the way the product bands matches.
func matchBand(score float64) lipgloss.Style {
	switch {
	case score >= 90:
		return bandHigh
	case score >= 80:
		return bandGood
	case score >= 70:
		return bandOK
	default:
		return bandLow
	}
}

// confidenceBand colors a 0-1 confidence using the same bands.
func confidenceBand(confidence float64) lipgloss.Style {
	return matchBand(confidence * 100)
}

// JobList renders the filtered job view with an optional error banner. A
// fetch failure keeps previously displayed results visible above the banner.
func JobList(snap pipeline.Snapshot) string {
	var b strings.Builder

	if snap.Err != "" {
		b.WriteString(errorStyle.Render(snap.Err) + "\n\n")
	}

	header := fmt.Sprintf("%d of %d jobs shown", len(snap.Jobs), snap.Fetched)
	if snap.Mode == pipeline.SourceSearch {
		header += fmt.Sprintf(" (search results for %q)", snap.Query.Term)
	} else {
		header += " (personalized recommendations)"
	}
	b.WriteString(subtleStyle.Render(header) + "\n\n")

	if len(snap.Jobs) == 0 {
		b.WriteString(emptyStyle.Render("No jobs found. Try adjusting your search criteria or filters."))
		return b.String()
	}

	for _, job := range snap.Jobs {
		b.WriteString(jobCard(job) + "\n")
	}

	return b.String()
}

func jobCard(job *careerforge.Job) string {
	badge := badgeStyle.Inherit(matchBand(job.Relevance)).
		Render(fmt.Sprintf("%.0f%% match", job.Relevance))

	lines := []string{
		titleStyle.Render(job.Title) + "  " + badge,
		subtleStyle.Render(job.Company),
	}

	if len(job.Locations) > 0 {
		lines = append(lines, subtleStyle.Render(strings.Join(job.Locations, ", ")))
	}

	if desc := logger.TruncateForLog(stripTags(job.Description), descriptionLimit); desc != "" {
		lines = append(lines, desc)
	}

	if len(job.Skills) > 0 {
		lines = append(lines, subtleStyle.Render("skills: "+strings.Join(job.Skills, ", ")))
	}

	if job.ApplyLink != "" {
		lines = append(lines, subtleStyle.Render("apply: "+job.ApplyLink))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// TreeOutline renders paths and stages, marking the current selection.
func TreeOutline(sel *treeview.Selection) string {
	tree := sel.Tree()
	if tree == nil {
		return emptyStyle.Render("No career tree generated yet.")
	}

	var b strings.Builder

	if len(tree.DomainFocus) > 0 {
		b.WriteString(subtleStyle.Render("focus: "+strings.Join(tree.DomainFocus, ", ")) + "\n\n")
	}

	selectedPath := sel.SelectedPath()
	selectedStage := sel.SelectedStage()

	for i, path := range tree.Paths {
		marker := "  "
		style := titleStyle
		if selectedPath != nil && path.ID == selectedPath.ID {
			marker = "> "
			style = selectedStyle
		}

		confidence := confidenceBand(path.Confidence).
			Render(fmt.Sprintf("%.0f%% confidence", path.Confidence*100))

		b.WriteString(fmt.Sprintf("%s%d. %s  %s\n", marker, i+1, style.Render(path.Title), confidence))
		b.WriteString("     " + subtleStyle.Render(path.Summary) + "\n")
		b.WriteString("     " + subtleStyle.Render(fmt.Sprintf("%d stages, %.0f%% fit", len(path.Stages), path.FitScore*100)) + "\n")

		for j, stage := range path.Stages {
			stageMarker := "   "
			stageStyle := lipgloss.NewStyle()
			if selectedStage != nil && stage.ID == selectedStage.ID {
				stageMarker = " > "
				stageStyle = selectedStyle
			}

			line := fmt.Sprintf("%s  %d.%d %s", stageMarker, i+1, j+1, stageStyle.Render(stage.Name))
			if stage.EtaMonths > 0 {
				line += subtleStyle.Render(fmt.Sprintf(" (%d months)", stage.EtaMonths))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Opportunities renders the panel for the selected stage.
func Opportunities(sel *treeview.Selection) string {
	stage := sel.SelectedStage()
	if stage == nil {
		return emptyStyle.Render("Select a stage to view available opportunities.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(stage.Name) + "\n")

	if stage.Description != "" {
		b.WriteString(stage.Description + "\n")
	}
	if len(stage.SkillRequirements) > 0 {
		b.WriteString(subtleStyle.Render("required skills: "+strings.Join(stage.SkillRequirements, ", ")) + "\n")
	}
	b.WriteString("\n")

	opportunities := sel.VisibleOpportunities()
	if len(opportunities) == 0 {
		b.WriteString(emptyStyle.Render("No opportunities listed for this stage."))
		return b.String()
	}

	for _, opp := range opportunities {
		confidence := confidenceBand(opp.Confidence).
			Render(fmt.Sprintf("%.0f%%", opp.Confidence*100))

		lines := []string{titleStyle.Render(opp.Title) + "  " + confidence}
		if opp.Snippet != "" {
			lines = append(lines, logger.TruncateForLog(opp.Snippet, descriptionLimit))
		}
		source := opp.SourceType
		if source == "" {
			source = "unknown source"
		}
		lines = append(lines, subtleStyle.Render(source))
		if opp.URL != "" {
			lines = append(lines, subtleStyle.Render(opp.URL))
		}

		b.WriteString(cardStyle.Render(strings.Join(lines, "\n")) + "\n")
	}

	return b.String()
}

// Progress renders the wizard step indicator.
func Progress(step, total int) string {
	marks := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if i <= step {
			marks = append(marks, selectedStyle.Render("●"))
		} else {
			marks = append(marks, subtleStyle.Render("○"))
		}
	}
	return fmt.Sprintf("Step %d of %d  %s", step, total, strings.Join(marks, " "))
}

// stripTags removes HTML markup from listing descriptions for terminal output.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
