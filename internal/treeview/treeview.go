package treeview

import "github.com/sharanb/careerforge-cli/internal/careerforge"

// Selection layers path/stage view state over a generated career tree. The
// tree itself is never edited. Invariant: a selected stage always belongs to
// the selected path.
type Selection struct {
	tree            *careerforge.CareerTree
	selectedPathID  string
	selectedStageID string
}

func New() *Selection {
	return &Selection{}
}

func (s *Selection) Tree() *careerforge.CareerTree { return s.tree }

// SetTree replaces the whole tree and resets selection to the first path
// with no stage selected.
func (s *Selection) SetTree(tree *careerforge.CareerTree) {
	s.tree = tree
	s.selectedPathID = ""
	s.selectedStageID = ""

	if tree != nil && len(tree.Paths) > 0 {
		s.selectedPathID = tree.Paths[0].ID
	}
}

// SelectedPath returns the currently selected path, or nil.
func (s *Selection) SelectedPath() *careerforge.PathBranch {
	if s.tree == nil || s.selectedPathID == "" {
		return nil
	}
	return s.tree.FindPath(s.selectedPathID)
}

// SelectedStage returns the currently selected stage, or nil.
func (s *Selection) SelectedStage() *careerforge.Stage {
	path := s.SelectedPath()
	if path == nil || s.selectedStageID == "" {
		return nil
	}
	return path.FindStage(s.selectedStageID)
}

// SelectPath switches the selected path. The stage selection is cleared
// unless the stage also belongs to the new path. Unknown path ids are
// ignored.
func (s *Selection) SelectPath(pathID string) {
	if s.tree == nil {
		return
	}

	path := s.tree.FindPath(pathID)
	if path == nil {
		return
	}

	s.selectedPathID = pathID
	if s.selectedStageID != "" && path.FindStage(s.selectedStageID) == nil {
		s.selectedStageID = ""
	}
}

// SelectStage records a stage selection. Stages outside the selected path
// are a no-op; the UI should already constrain choices.
func (s *Selection) SelectStage(stageID string) {
	path := s.SelectedPath()
	if path == nil || path.FindStage(stageID) == nil {
		return
	}
	s.selectedStageID = stageID
}

// ClearStage drops the stage selection, keeping the path.
func (s *Selection) ClearStage() {
	s.selectedStageID = ""
}

// VisibleOpportunities is the opportunity panel for the current selection:
// the selected stage's top opportunities, or nothing.
func (s *Selection) VisibleOpportunities() []*careerforge.Opportunity {
	stage := s.SelectedStage()
	if stage == nil {
		return []*careerforge.Opportunity{}
	}
	return stage.TopOpportunities
}
