package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
	"github.com/sharanb/careerforge-cli/internal/render"
	"github.com/sharanb/careerforge-cli/internal/wizard"
)

const (
	PromptNext    = "Next step"
	PromptBack    = "Previous step"
	PromptSubmit  = "Complete setup"
	PromptQuit    = "Quit"
	promptAnswerQ = "Answer questions"

	promptAttachResume  = "Attach resume file"
	promptSetEducation  = "Set education"
	promptSetExperience = "Set experience"
	promptPickSkills    = "Toggle skills"
	promptPickInterests = "Toggle interests"
	promptDone          = "done"
)

var (
	errExit   = errors.New("exit requested")
	errSubmit = errors.New("submit requested")
)

var skillCatalog = []struct {
	Category string
	Skills   []string
}{
	{"Programming", []string{"JavaScript", "Python", "Java", "C++", "TypeScript", "Go", "Rust"}},
	{"Web Development", []string{"React", "Vue.js", "Angular", "Node.js", "Express", "Django", "Flask"}},
	{"Data Science", []string{"Machine Learning", "Data Analysis", "Statistics", "R", "SQL", "Pandas", "NumPy"}},
	{"Design", []string{"UI/UX Design", "Figma", "Adobe Creative Suite", "Sketch", "Prototyping", "User Research"}},
	{"Business", []string{"Project Management", "Marketing", "Sales", "Strategy", "Finance", "Operations"}},
}

var interestDomains = []string{
	"Artificial Intelligence",
	"Web Development",
	"Mobile Development",
	"Data Science",
	"Cybersecurity",
	"Cloud Computing",
	"Blockchain",
	"Game Development",
	"UI/UX Design",
	"Product Management",
	"Digital Marketing",
	"DevOps",
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Register and build a profile through the onboarding wizard",
	Run: func(cmd *cobra.Command, _ []string) {
		onboard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(onboardCmd)

	onboardCmd.Flags().StringP("resume", "r", "", "path to a resume file to attach on step 1")
}

func onboard(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the onboarding wizard", zap.String("version", version))

	identity, err := collectIdentity()
	if err != nil {
		logger.Fatal("collecting identity", zap.Error(err))
	}

	client := newClient(ctx, logger, config)

	questions, err := client.Questions()
	if err != nil {
		logger.Warn("questionnaire source unavailable, using the built-in set", zap.Error(err))
		questions = careerforge.FallbackQuestions()
	}

	logger.Info("questionnaire loaded",
		zap.String("source", string(questions.Source)),
		zap.Int("count", questions.Len()),
	)

	w := wizard.New(*identity, questions, logger)

	if resume := cmd.Flag("resume").Value.String(); resume != "" {
		w.SetResume(resume)
	} else if config.Resume != "" {
		w.SetResume(config.Resume)
	}

	for {
		fmt.Println(render.Progress(int(w.Step()), 4))

		err := runStep(w)
		switch {
		case err == nil:
			continue
		case errors.Is(err, errSubmit):
			userID, err := w.Submit(client)
			if err != nil {
				// The wizard stays on the questionnaire step with all
				// entered data, so the loop continues for a retry.
				fmt.Println(w.Failure())
				continue
			}

			store := newSessionStore(config)
			if err := store.Save(userID); err != nil {
				logger.Fatal("persisting user id", zap.Error(err))
			}

			logger.Info("profile created", zap.String("user_id", userID))
			fmt.Println("Profile setup complete. Run 'careerforge-cli jobs' to browse your recommendations.")
			return
		case errors.Is(err, errExit):
			logger.Info("exiting", zap.String("reason", "wizard abandoned"))
			return
		default:
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// collectIdentity prompts for the registration hand-off fields and loops
// until local validation passes. Nothing is sent over the network here.
func collectIdentity() (*wizard.Identity, error) {
	for {
		identity := &wizard.Identity{}

		fields := []struct {
			label  string
			target *string
			mask   bool
		}{
			{"First name", &identity.FirstName, false},
			{"Last name", &identity.LastName, false},
			{"Email", &identity.Email, false},
			{"Password", &identity.Password, true},
			{"Confirm password", &identity.ConfirmPassword, true},
			{"Phone (optional)", &identity.Phone, false},
			{"LinkedIn (optional)", &identity.LinkedIn, false},
			{"GitHub (optional)", &identity.GitHub, false},
		}

		for _, field := range fields {
			prompt := promptui.Prompt{Label: field.label}
			if field.mask {
				prompt.Mask = '*'
			}

			value, err := prompt.Run()
			if err != nil {
				return nil, err
			}
			*field.target = strings.TrimSpace(value)
		}

		problems := identity.Validate()
		if len(problems) == 0 {
			return identity, nil
		}

		for field, msg := range problems {
			fmt.Printf("%s: %s\n", field, msg)
		}
		fmt.Println("Please correct the fields above.")
	}
}

func runStep(w *wizard.Wizard) error {
	switch w.Step() {
	case wizard.StepBackground:
		return stepBackground(w)
	case wizard.StepSkills:
		return stepToggle(w, "Select your skills", flattenSkills(), w.Form().Skills, w.ToggleSkill)
	case wizard.StepInterests:
		return stepToggle(w, "Choose your interests", interestDomains, w.Form().Interests, w.ToggleInterest)
	case wizard.StepQuestionnaire:
		return stepQuestionnaire(w)
	default:
		return fmt.Errorf("unknown wizard step: %d", w.Step())
	}
}

func stepBackground(w *wizard.Wizard) error {
	form := w.Form()

	items := []string{promptAttachResume, promptSetEducation, promptSetExperience}
	if w.CanAdvance() {
		items = append(items, PromptNext)
	}
	items = append(items, PromptQuit)

	label := "Upload your resume or fill in your details manually"
	if form.ResumePath != "" {
		label = fmt.Sprintf("Resume attached: %s", form.ResumePath)
	}

	prompt := promptui.Select{Label: label, Items: items}

	_, action, err := prompt.Run()
	if err != nil {
		return errExit
	}

	switch action {
	case promptAttachResume:
		path, err := (&promptui.Prompt{Label: "Resume path"}).Run()
		if err != nil {
			return errExit
		}
		w.SetResume(strings.TrimSpace(path))
	case promptSetEducation:
		text, err := (&promptui.Prompt{Label: "Education", Default: form.Education}).Run()
		if err != nil {
			return errExit
		}
		w.SetEducation(strings.TrimSpace(text))
	case promptSetExperience:
		text, err := (&promptui.Prompt{Label: "Experience", Default: form.Experience}).Run()
		if err != nil {
			return errExit
		}
		w.SetExperience(strings.TrimSpace(text))
	case PromptNext:
		w.Next()
	case PromptQuit:
		return errExit
	}

	return nil
}

// stepToggle drives the two set-membership steps: repeated selects toggle
// entries until the user moves on. The gate keeps Next hidden while the set
// is empty.
func stepToggle(w *wizard.Wizard, label string, options []string, selected map[string]bool, toggle func(string)) error {
	items := make([]string, 0, len(options)+3)
	for _, option := range options {
		mark := "[ ] "
		if selected[option] {
			mark = "[x] "
		}
		items = append(items, mark+option)
	}

	if w.CanAdvance() {
		items = append(items, PromptNext)
	}
	items = append(items, PromptBack, PromptQuit)

	prompt := promptui.Select{Label: label, Items: items, Size: 12}

	_, action, err := prompt.Run()
	if err != nil {
		return errExit
	}

	switch action {
	case PromptNext:
		w.Next()
	case PromptBack:
		w.Back()
	case PromptQuit:
		return errExit
	default:
		toggle(strings.TrimPrefix(strings.TrimPrefix(action, "[ ] "), "[x] "))
	}

	return nil
}

func stepQuestionnaire(w *wizard.Wizard) error {
	questions := w.Questions()
	answers := w.Form().Answers

	if questions == nil || questions.Len() == 0 {
		// Never satisfiable without questions; surface the state instead of
		// a false complete.
		fmt.Println("Questionnaire is still loading or unavailable.")
		return errExit
	}

	items := []string{promptAnswerQ}
	if w.CanAdvance() {
		items = []string{PromptSubmit, promptAnswerQ}
	}
	items = append(items, PromptBack, PromptQuit)

	label := fmt.Sprintf("Personality assessment (%d of %d answered)", len(answers), questions.Len())
	prompt := promptui.Select{Label: label, Items: items}

	_, action, err := prompt.Run()
	if err != nil {
		return errExit
	}

	switch action {
	case promptAnswerQ:
		return askQuestions(w)
	case PromptSubmit:
		return errSubmit
	case PromptBack:
		w.Back()
	case PromptQuit:
		return errExit
	}

	return nil
}

// askQuestions walks every question, reusing recorded answers as defaults.
func askQuestions(w *wizard.Wizard) error {
	for _, q := range w.Questions().Items {
		if q.IsScale() {
			items := make([]string, 0, len(q.Scale))
			for _, point := range q.Scale {
				items = append(items, point.Label)
			}

			idx, _, err := (&promptui.Select{Label: q.Prompt, Items: items}).Run()
			if err != nil {
				return errExit
			}
			w.Answer(q.ID, q.Scale[idx].Value)
			continue
		}

		items := make([]string, 0, len(q.Options))
		for _, option := range q.Options {
			items = append(items, option.Text)
		}

		idx, _, err := (&promptui.Select{Label: q.Prompt, Items: items}).Run()
		if err != nil {
			return errExit
		}
		w.Answer(q.ID, q.Options[idx].Value)
	}

	return nil
}

func flattenSkills() []string {
	var skills []string
	for _, category := range skillCatalog {
		skills = append(skills, category.Skills...)
	}
	return skills
}
