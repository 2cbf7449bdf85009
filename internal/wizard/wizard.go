package wizard

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
	"github.com/sharanb/careerforge-cli/internal/logger"
)

// Step identifies one of the four onboarding steps.
type Step int

const (
	StepBackground Step = iota + 1
	StepSkills
	StepInterests
	StepQuestionnaire
)

// Status is the lifecycle of a wizard session.
type Status int

const (
	StatusInProgress Status = iota
	StatusSubmitting
	StatusDone
	StatusFailed
)

// Form holds the per-step data entered so far.
type Form struct {
	ResumePath string
	Education  string
	Experience string
	Skills     map[string]bool
	Interests  map[string]bool
	Answers    map[string]any
}

func newForm() *Form {
	return &Form{
		Skills:    make(map[string]bool),
		Interests: make(map[string]bool),
		Answers:   make(map[string]any),
	}
}

// SelectedSkills returns the chosen skills in stable order.
func (f *Form) SelectedSkills() []string {
	return sortedKeys(f.Skills)
}

// SelectedInterests returns the chosen interests in stable order.
func (f *Form) SelectedInterests() []string {
	return sortedKeys(f.Interests)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k, on := range set {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Backend is the slice of the API client the submission protocol needs.
type Backend interface {
	UploadResume(path string) (*careerforge.ResumeUpload, error)
	ScoreAnswers(answers []careerforge.Answer) (careerforge.PersonalityVector, error)
	Register(profile *careerforge.Registration) (string, error)
}

// Wizard owns the onboarding state: current step, form data, questionnaire,
// and the submission lifecycle. Entered data survives failed submissions.
type Wizard struct {
	SessionID string

	identity  Identity
	form      *Form
	questions *careerforge.QuestionSet
	step      Step
	status    Status
	failure   string
	logger    *zap.Logger
}

func New(identity Identity, questions *careerforge.QuestionSet, log *zap.Logger) *Wizard {
	w := &Wizard{
		SessionID: uuid.NewString(),
		identity:  identity,
		form:      newForm(),
		questions: questions,
		step:      StepBackground,
		status:    StatusInProgress,
	}
	w.logger = logger.WithFields(log, logger.UserFields("", w.SessionID)...)
	return w
}

func (w *Wizard) Step() Step                          { return w.step }
func (w *Wizard) Status() Status                      { return w.status }
func (w *Wizard) Failure() string                     { return w.failure }
func (w *Wizard) Form() *Form                         { return w.form }
func (w *Wizard) Questions() *careerforge.QuestionSet { return w.questions }

// CanAdvance reports whether the current step's gate holds.
func (w *Wizard) CanAdvance() bool {
	return CanAdvance(w.step, w.form, w.questions)
}

// Next advances one step when the current gate holds. Returns false when the
// gate rejects or there is no further step.
func (w *Wizard) Next() bool {
	if w.status != StatusInProgress && w.status != StatusFailed {
		return false
	}
	if w.step >= StepQuestionnaire || !w.CanAdvance() {
		return false
	}
	w.step++
	return true
}

// Back moves one step towards the start. Always permitted except from the
// first step.
func (w *Wizard) Back() bool {
	if w.status == StatusSubmitting || w.status == StatusDone {
		return false
	}
	if w.step <= StepBackground {
		return false
	}
	w.step--
	return true
}

func (w *Wizard) SetResume(path string)     { w.form.ResumePath = path }
func (w *Wizard) SetEducation(text string)  { w.form.Education = text }
func (w *Wizard) SetExperience(text string) { w.form.Experience = text }

func (w *Wizard) ToggleSkill(skill string) {
	toggle(w.form.Skills, skill)
}

func (w *Wizard) ToggleInterest(interest string) {
	toggle(w.form.Interests, interest)
}

func toggle(set map[string]bool, key string) {
	if set[key] {
		delete(set, key)
		return
	}
	set[key] = true
}

// Answer records an answer for a loaded question. Answers for unknown
// question ids are ignored.
func (w *Wizard) Answer(questionID string, value any) {
	if w.questions == nil || w.questions.FindByID(questionID) == nil {
		return
	}
	w.form.Answers[questionID] = value
}

// Submit runs the four-stage submission protocol: resume upload, answer
// scoring, payload assembly, registration. Stages are strictly sequential;
// the first failure aborts the rest, and the wizard stays on the
// questionnaire step with all entered data so the user can retry.
func (w *Wizard) Submit(backend Backend) (string, error) {
	if w.step != StepQuestionnaire || !w.CanAdvance() {
		return "", fmt.Errorf("questionnaire is not complete")
	}

	w.status = StatusSubmitting

	var upload *careerforge.ResumeUpload
	if w.form.ResumePath != "" {
		result, err := backend.UploadResume(w.form.ResumePath)
		if err != nil {
			return "", w.fail("uploading resume", err)
		}
		upload = result
		w.logger.Info("resume uploaded", zap.String("bucket", upload.Bucket))
	}

	vector, err := backend.ScoreAnswers(ToScoringPayload(w.form.Answers))
	if err != nil {
		return "", w.fail("scoring answers", err)
	}

	userID, err := backend.Register(w.assemble(vector, upload))
	if err != nil {
		return "", w.fail("registering", err)
	}

	w.status = StatusDone
	w.logger.Info("registration complete", zap.String("user_id", userID))

	return userID, nil
}

func (w *Wizard) fail(stage string, err error) error {
	w.status = StatusFailed
	w.step = StepQuestionnaire
	w.failure = careerforge.UserMessage(err, "Profile setup failed. Please try again.")
	w.logger.Warn("submission aborted", zap.String("stage", stage), zap.Error(err))
	return fmt.Errorf("%s: %w", stage, err)
}

// assemble merges identity fields, step 1-3 data, the personality vector,
// and the storage locator into the registration payload.
func (w *Wizard) assemble(vector careerforge.PersonalityVector, upload *careerforge.ResumeUpload) *careerforge.Registration {
	profile := &careerforge.Registration{
		Name:        w.identity.Name(),
		Email:       w.identity.Email,
		Phone:       w.identity.Phone,
		LinkedIn:    w.identity.LinkedIn,
		GitHub:      w.identity.GitHub,
		Preferences: w.identity.Preferences,
		Education:   []careerforge.EducationEntry{},
		Skills:      w.form.SelectedSkills(),
		Projects:    []careerforge.Project{},
		Personality: vector,
		Password:    w.identity.Password,
	}

	if w.form.Education != "" {
		profile.Education = append(profile.Education, careerforge.EducationEntry{
			Degree: w.form.Education,
		})
	}

	if upload != nil {
		profile.Bucket = &upload.Bucket
		profile.DestinationBlob = &upload.DestBlob
	}

	return profile
}
