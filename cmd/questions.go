/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/Tedomi2525/My-project/internal/services"
	"github.com/Tedomi2525/My-project/internal/store"
	"github.com/Tedomi2525/My-project/types"
	"github.com/spf13/cobra"
)

var (
	questionContent    string
	questionType       string
	questionDifficulty string
	questionOptions    []string
	questionAnswer     string
)

func questionService(a *app) *services.QuestionService {
	return services.NewQuestionService(store.NewQuestionRepository(a.client))
}

// questionInput builds the payload from flags. Options are given as KEY=text.
func questionInput() (types.QuestionInput, error) {
	in := types.QuestionInput{
		Content:       questionContent,
		QuestionType:  questionType,
		Difficulty:    types.Difficulty(strings.ToUpper(questionDifficulty)),
		CorrectAnswer: questionAnswer,
	}
	if len(questionOptions) > 0 {
		in.Options = make(map[string]string, len(questionOptions))
		for _, raw := range questionOptions {
			key, text, ok := strings.Cut(raw, "=")
			if !ok || strings.TrimSpace(key) == "" {
				return types.QuestionInput{}, fmt.Errorf("option %q must look like KEY=text", raw)
			}
			in.Options[strings.TrimSpace(key)] = text
		}
	}
	return in, nil
}

// questionsCmd represents the questions command
var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		questions, err := questionService(a).List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), questions)
	}),
}

var questionsGetCmd = &cobra.Command{
	Use:   "get <question-id>",
	Short: "Show a question",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("question id", args[0])
		if err != nil {
			return err
		}
		q, err := questionService(a).Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), q)
	}),
}

var questionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a question",
	Long: `Creates a question. Usage:

	examctl questions create --content "2+2?" --option A=3 --option B=4 --answer B
`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		in, err := questionInput()
		if err != nil {
			return err
		}
		q, err := questionService(a).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), q)
	}),
}

var questionsUpdateCmd = &cobra.Command{
	Use:   "update <question-id>",
	Short: "Replace a question",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("question id", args[0])
		if err != nil {
			return err
		}
		in, err := questionInput()
		if err != nil {
			return err
		}
		q, err := questionService(a).Update(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), q)
	}),
}

var questionsDeleteCmd = &cobra.Command{
	Use:   "delete <question-id>",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("question id", args[0])
		if err != nil {
			return err
		}
		svc := questionService(a)
		if err := svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), svc.Items())
	}),
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.AddCommand(questionsListCmd, questionsGetCmd, questionsCreateCmd, questionsUpdateCmd, questionsDeleteCmd)

	for _, c := range []*cobra.Command{questionsCreateCmd, questionsUpdateCmd} {
		c.Flags().StringVar(&questionContent, "content", "", "question text")
		c.Flags().StringVar(&questionType, "type", "single_choice", "question type")
		c.Flags().StringVar(&questionDifficulty, "difficulty", "MEDIUM", "EASY, MEDIUM or HARD")
		c.Flags().StringArrayVar(&questionOptions, "option", nil, "answer option as KEY=text (repeatable)")
		c.Flags().StringVar(&questionAnswer, "answer", "", "key of the correct option")
		_ = c.MarkFlagRequired("content")
	}
}
