package wizard

import (
	"testing"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
)

func questionSet(ids ...string) *careerforge.QuestionSet {
	set := &careerforge.QuestionSet{Source: careerforge.SourceFallback}
	for _, id := range ids {
		set.Items = append(set.Items, &careerforge.Question{
			ID:     id,
			Prompt: "prompt " + id,
			Options: []careerforge.Option{
				{Text: "a", Value: "E"},
				{Text: "b", Value: "I"},
			},
		})
	}
	return set
}

func TestCanAdvanceBackground(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resume     string
		education  string
		experience string
		want       bool
	}{
		{"empty", "", "", "", false},
		{"resume only", "resume.pdf", "", "", true},
		{"education only", "", "B.Tech", "", false},
		{"experience only", "", "", "2 years", false},
		{"education and experience", "", "B.Tech", "2 years", true},
		{"resume beats partial text", "resume.pdf", "B.Tech", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := newForm()
			form.ResumePath = tt.resume
			form.Education = tt.education
			form.Experience = tt.experience

			if got := CanAdvance(StepBackground, form, nil); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanAdvanceSkillsAndInterests(t *testing.T) {
	t.Parallel()

	form := newForm()

	if CanAdvance(StepSkills, form, nil) {
		t.Fatalf("expected false for empty skill set")
	}

	form.Skills["Go"] = true
	if !CanAdvance(StepSkills, form, nil) {
		t.Fatalf("expected true after toggling exactly one skill")
	}

	if CanAdvance(StepInterests, form, nil) {
		t.Fatalf("expected false for empty interest set")
	}

	form.Interests["DevOps"] = true
	if !CanAdvance(StepInterests, form, nil) {
		t.Fatalf("expected true after toggling exactly one interest")
	}
}

func TestCanAdvanceQuestionnaireExactCount(t *testing.T) {
	t.Parallel()

	questions := questionSet("q1", "q2", "q3")
	form := newForm()

	if CanAdvance(StepQuestionnaire, form, questions) {
		t.Fatalf("expected false with no answers")
	}

	form.Answers["q1"] = "E"
	form.Answers["q2"] = "I"
	if CanAdvance(StepQuestionnaire, form, questions) {
		t.Fatalf("expected false with answered-count < question count")
	}

	// An answer for an unknown id must not count towards completion.
	form.Answers["q99"] = "E"
	if CanAdvance(StepQuestionnaire, form, questions) {
		t.Fatalf("expected false when an id is unmatched")
	}

	form.Answers["q3"] = "T"
	if !CanAdvance(StepQuestionnaire, form, questions) {
		t.Fatalf("expected true with every loaded question answered")
	}
}

func TestCanAdvanceQuestionnaireUnloaded(t *testing.T) {
	t.Parallel()

	form := newForm()
	form.Answers["q1"] = "E"

	if CanAdvance(StepQuestionnaire, form, nil) {
		t.Fatalf("expected false while questions have not loaded")
	}

	if CanAdvance(StepQuestionnaire, form, &careerforge.QuestionSet{}) {
		t.Fatalf("expected false for an empty question list")
	}
}
