/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tedomi2525/My-project/internal/services"
	"github.com/Tedomi2525/My-project/internal/store"
	"github.com/Tedomi2525/My-project/types"
	"github.com/spf13/cobra"
)

var (
	resultStudent   int
	resultAnswers   []string
	resultStartedAt string
)

func resultService(a *app) *services.ResultService {
	return services.NewResultService(store.NewResultRepository(a.client))
}

// parseAnswers reads QUESTION_ID=OPTION pairs.
func parseAnswers(raw []string) ([]types.Answer, error) {
	answers := make([]types.Answer, 0, len(raw))
	for _, pair := range raw {
		qid, option, ok := strings.Cut(pair, "=")
		id, err := strconv.Atoi(strings.TrimSpace(qid))
		if !ok || err != nil || id < 1 {
			return nil, fmt.Errorf("answer %q must look like QUESTION_ID=OPTION", pair)
		}
		answers = append(answers, types.Answer{QuestionID: id, SelectedOption: strings.TrimSpace(option)})
	}
	return answers, nil
}

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Submit exams and read graded results",
}

var resultsSubmitCmd = &cobra.Command{
	Use:   "submit <exam-id>",
	Short: "Submit answers for an exam",
	Long: `Submits answers and prints the graded result. Usage:

	examctl results submit 3 --answer 7=A --answer 8=C
`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		examID, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		studentID := resultStudent
		if studentID == 0 {
			id, ok := a.store.Identity()
			if !ok {
				return errors.New("not logged in")
			}
			studentID = id.ID
		}
		answers, err := parseAnswers(resultAnswers)
		if err != nil {
			return err
		}
		startedAt, err := parseTimeFlag("started-at", resultStartedAt)
		if err != nil {
			return err
		}

		result, err := resultService(a).Submit(cmd.Context(), examID, studentID, types.SubmitRequest{
			StartedAt: startedAt,
			Answers:   answers,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}),
}

var resultsListCmd = &cobra.Command{
	Use:   "list <exam-id>",
	Short: "List the results of an exam",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		examID, err := parseIDArg("exam id", args[0])
		if err != nil {
			return err
		}
		results, err := resultService(a).ListByExam(cmd.Context(), examID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), results)
	}),
}

var resultsReviewCmd = &cobra.Command{
	Use:   "review <result-id>",
	Short: "Show the per-question review of a result",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("result id", args[0])
		if err != nil {
			return err
		}
		review, err := resultService(a).Review(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), review)
	}),
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsSubmitCmd, resultsListCmd, resultsReviewCmd)

	f := resultsSubmitCmd.Flags()
	f.IntVar(&resultStudent, "student", 0, "student id (defaults to the signed-in user)")
	f.StringArrayVar(&resultAnswers, "answer", nil, "answer as QUESTION_ID=OPTION (repeatable)")
	f.StringVar(&resultStartedAt, "started-at", "", "when the attempt started (RFC 3339)")
}
