package careerforge

import (
	"encoding/json"
	"fmt"
)

const (
	answersPath  = "/user/answers"
	resumePath   = "/user/resume"
	registerPath = "/user/register"
)

// Answer pairs a question id with the recorded answer value. The value is a
// categorical code or a numeric scale value; it is passed through untouched.
type Answer struct {
	QuestionID string `json:"question_id"`
	Value      any    `json:"answer"`
}

// PersonalityVector is the opaque result of remote scoring. The client never
// interprets it, only carries it into the registration payload.
type PersonalityVector = json.RawMessage

// ResumeUpload is the storage locator returned for an uploaded resume.
type ResumeUpload struct {
	Bucket   string `json:"bucket"`
	DestBlob string `json:"dest_blob"`
}

// EducationEntry is the shape the profile backend expects for education.
type EducationEntry struct {
	Degree  string `json:"degree"`
	Branch  string `json:"branch"`
	College string `json:"college"`
}

// Project is a user-supplied portfolio entry carried through registration.
type Project struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Preferences holds the desired location and role from the identity hand-off.
type Preferences struct {
	Location string `json:"location"`
	Role     string `json:"role"`
}

// Registration is the assembled profile sent to the register endpoint.
// Bucket and DestinationBlob stay null when no resume was uploaded.
type Registration struct {
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	LinkedIn        string            `json:"linkedin"`
	GitHub          string            `json:"github"`
	Preferences     Preferences       `json:"preferences"`
	Education       []EducationEntry  `json:"education"`
	Skills          []string          `json:"skills"`
	Projects        []Project         `json:"projects"`
	Personality     PersonalityVector `json:"personality"`
	Bucket          *string           `json:"bucket"`
	DestinationBlob *string           `json:"destination_blob"`
	Password        string            `json:"password"`
}

// ScoreAnswers submits questionnaire answers for remote scoring and returns
// the personality vector verbatim.
func (c *Client) ScoreAnswers(answers []Answer) (PersonalityVector, error) {
	op := "score answers"
	url := fmt.Sprintf("%s%s", c.ProfileURL, answersPath)

	payload := map[string]any{"answers": answers}

	var resp map[string]json.RawMessage
	if err := c.postJSON(op, url, payload, &resp); err != nil {
		return nil, err
	}

	vector, ok := resp["personality scores"]
	if !ok {
		return nil, &MalformedResponseError{Op: op, Missing: "personality scores"}
	}

	return PersonalityVector(vector), nil
}

// UploadResume sends the resume file and returns its storage locator.
func (c *Client) UploadResume(path string) (*ResumeUpload, error) {
	op := "upload resume"
	url := fmt.Sprintf("%s%s", c.ProfileURL, resumePath)

	var resp ResumeUpload
	if err := c.postFile(op, url, "file", path, &resp); err != nil {
		return nil, err
	}

	if resp.Bucket == "" && resp.DestBlob == "" {
		return nil, &MalformedResponseError{Op: op, Missing: "bucket"}
	}

	return &resp, nil
}

// Register submits the assembled profile and returns the new user id.
func (c *Client) Register(profile *Registration) (string, error) {
	op := "register"
	url := fmt.Sprintf("%s%s", c.ProfileURL, registerPath)

	var resp struct {
		UserID string `json:"user_id"`
	}
	if err := c.postJSON(op, url, profile, &resp); err != nil {
		return "", err
	}

	if resp.UserID == "" {
		return "", &MalformedResponseError{Op: op, Missing: "user_id"}
	}

	return resp.UserID, nil
}
