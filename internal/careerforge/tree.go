package careerforge

import "fmt"

const treeGeneratePath = "/careertree/generate"

// CareerTree is produced wholesale by one generation call; the client never
// edits it, only layers selection state on top.
type CareerTree struct {
	UserID      string        `json:"user_id"`
	GeneratedAt string        `json:"generated_at"`
	DomainFocus []string      `json:"domain_focus"`
	Paths       []*PathBranch `json:"paths"`
	Confidence  float64       `json:"confidence"`
}

type PathBranch struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	FitScore   float64  `json:"fit_score"`
	Confidence float64  `json:"confidence"`
	Stages     []*Stage `json:"stages"`
}

type Stage struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	EtaMonths         int            `json:"eta_months,omitempty"`
	SkillRequirements []string       `json:"skill_requirements"`
	TopOpportunities  []*Opportunity `json:"top_opportunities"`
}

type Opportunity struct {
	Title      string  `json:"title"`
	URL        string  `json:"url,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	SourceType string  `json:"source_type,omitempty"`
	Confidence float64 `json:"confidence"`
}

func (t *CareerTree) FindPath(id string) *PathBranch {
	for _, path := range t.Paths {
		if path.ID == id {
			return path
		}
	}
	return nil
}

func (p *PathBranch) FindStage(id string) *Stage {
	for _, stage := range p.Stages {
		if stage.ID == id {
			return stage
		}
	}
	return nil
}

// GenerateTree asks the jobs backend to build a career tree for the user.
func (c *Client) GenerateTree(userID string) (*CareerTree, error) {
	op := "generate tree"
	url := fmt.Sprintf("%s%s/%s", c.JobsURL, treeGeneratePath, userID)

	var resp struct {
		UserID string      `json:"user_id"`
		Status string      `json:"status"`
		Tree   *CareerTree `json:"tree"`
	}
	if err := c.postJSON(op, url, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "ok" || resp.Tree == nil {
		return nil, &MalformedResponseError{Op: op, Missing: "tree"}
	}

	return resp.Tree, nil
}
