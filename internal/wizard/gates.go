package wizard

import "github.com/sharanb/careerforge-cli/internal/careerforge"

// CanAdvance reports whether the data collected for a step is complete
// enough to move on. Pure; no side effects.
func CanAdvance(step Step, form *Form, questions *careerforge.QuestionSet) bool {
	if form == nil {
		return false
	}

	switch step {
	case StepBackground:
		if form.ResumePath != "" {
			return true
		}
		return form.Education != "" && form.Experience != ""
	case StepSkills:
		return len(form.Skills) > 0
	case StepInterests:
		return len(form.Interests) > 0
	case StepQuestionnaire:
		// Unsatisfiable until the question list has loaded.
		if questions == nil || questions.Len() == 0 {
			return false
		}
		for _, q := range questions.Items {
			if _, ok := form.Answers[q.ID]; !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
