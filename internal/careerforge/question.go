package careerforge

import (
	"fmt"
)

const questionsPath = "/user/questions"

// QuestionSource tags where a question set came from. A session never mixes
// remote and fallback questions.
type QuestionSource string

const (
	SourceRemote   QuestionSource = "remote"
	SourceFallback QuestionSource = "fallback"
)

// Question is either categorical (fixed options carrying a code) or a
// Likert-style scale (labels carrying a numeric value). Exactly one of
// Options and Scale is populated.
type Question struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"question"`
	Options []Option     `json:"options,omitempty"`
	Scale   []ScalePoint `json:"scale,omitempty"`
}

type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type ScalePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// IsScale reports whether answers to this question are numeric.
func (q *Question) IsScale() bool {
	return len(q.Scale) > 0
}

// QuestionSet is the questionnaire for one wizard session.
type QuestionSet struct {
	Source QuestionSource
	Items  []*Question
}

func (s *QuestionSet) Len() int {
	return len(s.Items)
}

func (s *QuestionSet) FindByID(id string) *Question {
	for _, q := range s.Items {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Questions fetches the questionnaire from the profile backend.
func (c *Client) Questions() (*QuestionSet, error) {
	op := "questions"
	url := fmt.Sprintf("%s%s", c.ProfileURL, questionsPath)

	var resp struct {
		Questions []*Question `json:"questions"`
	}
	if err := c.getJSON(op, url, &resp); err != nil {
		return nil, err
	}

	if resp.Questions == nil {
		return nil, &MalformedResponseError{Op: op, Missing: "questions"}
	}

	return &QuestionSet{Source: SourceRemote, Items: resp.Questions}, nil
}

// FallbackQuestions returns the built-in categorical question set used when
// the remote source is unavailable.
func FallbackQuestions() *QuestionSet {
	return &QuestionSet{
		Source: SourceFallback,
		Items: []*Question{
			{
				ID:     "q1",
				Prompt: "At a party, you would rather:",
				Options: []Option{
					{Text: "Meet new people and socialize", Value: "E"},
					{Text: "Have deep conversations with a few close friends", Value: "I"},
				},
			},
			{
				ID:     "q2",
				Prompt: "When learning something new, you prefer:",
				Options: []Option{
					{Text: "Hands-on experience and practical examples", Value: "S"},
					{Text: "Understanding the big picture and concepts", Value: "N"},
				},
			},
			{
				ID:     "q3",
				Prompt: "When making decisions, you rely more on:",
				Options: []Option{
					{Text: "Logic and objective analysis", Value: "T"},
					{Text: "Values and how it affects people", Value: "F"},
				},
			},
			{
				ID:     "q4",
				Prompt: "You prefer to:",
				Options: []Option{
					{Text: "Plan ahead and stick to schedules", Value: "J"},
					{Text: "Keep your options open and be flexible", Value: "P"},
				},
			},
			{
				ID:     "q5",
				Prompt: "In group projects, you typically:",
				Options: []Option{
					{Text: "Take charge and organize the team", Value: "E"},
					{Text: "Contribute ideas and support others", Value: "I"},
				},
			},
			{
				ID:     "q6",
				Prompt: "You are more interested in:",
				Options: []Option{
					{Text: "What is real and practical", Value: "S"},
					{Text: "What is possible and theoretical", Value: "N"},
				},
			},
		},
	}
}
