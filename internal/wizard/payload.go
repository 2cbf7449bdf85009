package wizard

import "github.com/sharanb/careerforge-cli/internal/careerforge"

// ToScoringPayload converts recorded answers into the shape the scoring
// endpoint expects. The recipient keys by question id, so order does not
// matter. Values are passed through without interpretation: categorical
// codes stay strings, scale answers stay numbers.
func ToScoringPayload(answers map[string]any) []careerforge.Answer {
	payload := make([]careerforge.Answer, 0, len(answers))
	for id, value := range answers {
		payload = append(payload, careerforge.Answer{
			QuestionID: id,
			Value:      value,
		})
	}
	return payload
}
