/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/Tedomi2525/My-project/internal/services"
	"github.com/Tedomi2525/My-project/internal/store"
	"github.com/Tedomi2525/My-project/types"
	"github.com/spf13/cobra"
)

var (
	examTitle       string
	examDescription string
	examDuration    int
	examStart       string
	examEnd         string
	examPassword    string
	examViewAnswers bool
	examClasses     []int
	examQuestions   []int
	examPoint       float64
)

func examService(a *app) *services.ExamService {
	return services.NewExamService(store.NewExamRepository(a.client))
}

func parseTimeFlag(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be RFC 3339, e.g. 2026-01-02T15:04:05Z: %w", name, err)
	}
	return &t, nil
}

// examsCmd represents the exams command
var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "Manage exams",
}

var examsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exams",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		exams, err := examService(a).List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), exams)
	}),
}

var examsGetCmd = &cobra.Command{
	Use:   "get <exam-id>",
	Short: "Show an exam",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		exam, err := examService(a).Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), exam)
	}),
}

var examsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an exam",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		start, err := parseTimeFlag("start", examStart)
		if err != nil {
			return err
		}
		end, err := parseTimeFlag("end", examEnd)
		if err != nil {
			return err
		}
		in := types.ExamCreate{
			Title:            examTitle,
			Description:      examDescription,
			DurationMinutes:  examDuration,
			StartTime:        start,
			EndTime:          end,
			Password:         examPassword,
			AllowViewAnswers: examViewAnswers,
			ClassIDs:         examClasses,
			Questions:        examQuestions,
		}
		if id, ok := a.store.Identity(); ok {
			in.CreatedBy = id.ID
		}
		exam, err := examService(a).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), exam)
	}),
}

var examsUpdateCmd = &cobra.Command{
	Use:   "update <exam-id>",
	Short: "Update an exam",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		var in types.ExamUpdate
		if flags.Changed("title") {
			in.Title = &examTitle
		}
		if flags.Changed("description") {
			in.Description = &examDescription
		}
		if flags.Changed("duration") {
			in.DurationMinutes = &examDuration
		}
		if in.StartTime, err = parseTimeFlag("start", examStart); err != nil {
			return err
		}
		if in.EndTime, err = parseTimeFlag("end", examEnd); err != nil {
			return err
		}
		if flags.Changed("password") {
			in.Password = &examPassword
		}
		if flags.Changed("allow-view-answers") {
			in.AllowViewAnswers = &examViewAnswers
		}
		if flags.Changed("class") {
			in.ClassIDs = examClasses
		}
		if flags.Changed("question") {
			in.Questions = examQuestions
		}
		exam, err := examService(a).Update(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), exam)
	}),
}

var examsDeleteCmd = &cobra.Command{
	Use:   "delete <exam-id>",
	Short: "Delete an exam",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		svc := examService(a)
		if err := svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), svc.Items())
	}),
}

var examsAddQuestionCmd = &cobra.Command{
	Use:   "add-question <exam-id> <question-id>",
	Short: "Attach a question to an exam",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		examID, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		questionID, err := parseIDArg("question id", args[1])
		if err != nil {
			return err
		}
		svc := examService(a)
		if err := svc.AddQuestion(cmd.Context(), examID, questionID, examPoint); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), svc.Items())
	}),
}

var examsRemoveQuestionCmd = &cobra.Command{
	Use:   "remove-question <exam-id> <question-id>",
	Short: "Detach a question from an exam",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		examID, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		questionID, err := parseIDArg("question id", args[1])
		if err != nil {
			return err
		}
		svc := examService(a)
		if err := svc.RemoveQuestion(cmd.Context(), examID, questionID); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), svc.Items())
	}),
}

var examsQuestionsCmd = &cobra.Command{
	Use:   "questions <exam-id>",
	Short: "List the questions of an exam",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		questions, err := examService(a).Questions(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), questions)
	}),
}

var examsAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List the exams open to the signed-in student",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		exams, err := examService(a).Available(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), exams)
	}),
}

var examsVerifyPasswordCmd = &cobra.Command{
	Use:   "verify-password <exam-id> <password>",
	Short: "Check an exam password",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		ok, err := examService(a).VerifyPassword(cmd.Context(), id, args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), types.PasswordCheck{Success: ok})
	}),
}

func init() {
	rootCmd.AddCommand(examsCmd)
	examsCmd.AddCommand(
		examsListCmd,
		examsGetCmd,
		examsCreateCmd,
		examsUpdateCmd,
		examsDeleteCmd,
		examsAddQuestionCmd,
		examsRemoveQuestionCmd,
		examsQuestionsCmd,
		examsAvailableCmd,
		examsVerifyPasswordCmd,
	)

	for _, c := range []*cobra.Command{examsCreateCmd, examsUpdateCmd} {
		f := c.Flags()
		f.StringVar(&examTitle, "title", "", "exam title")
		f.StringVar(&examDescription, "description", "", "exam description")
		f.IntVar(&examDuration, "duration", 60, "duration in minutes")
		f.StringVar(&examStart, "start", "", "opening time (RFC 3339)")
		f.StringVar(&examEnd, "end", "", "closing time (RFC 3339)")
		f.StringVar(&examPassword, "password", "", "password required to start the exam")
		f.BoolVar(&examViewAnswers, "allow-view-answers", false, "let students see correct answers after submitting")
		f.IntSliceVar(&examClasses, "class", nil, "class ids allowed to take the exam")
		f.IntSliceVar(&examQuestions, "question", nil, "question ids in the exam")
	}
	_ = examsCreateCmd.MarkFlagRequired("title")
	examsAddQuestionCmd.Flags().Float64Var(&examPoint, "point", 1, "points awarded for a correct answer")
}
