/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/Tedomi2525/My-project/internal/services"
	"github.com/Tedomi2525/My-project/internal/store"
	"github.com/Tedomi2525/My-project/types"
	"github.com/spf13/cobra"
)

var (
	className        string
	classDescription string
)

func classService(a *app) *services.ClassService {
	return services.NewClassService(store.NewClassRepository(a.client))
}

// classesCmd represents the classes command
var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Manage classes",
}

var classesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classes",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		classes, err := classService(a).List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), classes)
	}),
}

var classesGetCmd = &cobra.Command{
	Use:   "get <class-id>",
	Short: "Show a class and its students",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("class id", args[0])
		if err != nil {
			return err
		}
		class, err := classService(a).Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), class)
	}),
}

var classesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a class",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		class, err := classService(a).Create(cmd.Context(), types.ClassInput{
			Name:        className,
			Description: classDescription,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), class)
	}),
}

var classesUpdateCmd = &cobra.Command{
	Use:   "update <class-id>",
	Short: "Update a class",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("class id", args[0])
		if err != nil {
			return err
		}
		var in types.ClassUpdate
		if cmd.Flags().Changed("name") {
			in.Name = &className
		}
		if cmd.Flags().Changed("description") {
			in.Description = &classDescription
		}
		class, err := classService(a).Update(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), class)
	}),
}

var classesDeleteCmd = &cobra.Command{
	Use:   "delete <class-id>",
	Short: "Delete a class",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("class id", args[0])
		if err != nil {
			return err
		}
		svc := classService(a)
		if err := svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), svc.Items())
	}),
}

var classesAddStudentCmd = &cobra.Command{
	Use:   "add-student <class-id> <student-id>",
	Short: "Enroll a student into a class",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		classID, err := parseIDArg("class id", args[0])
		if err != nil {
			return err
		}
		studentID, err := parseIDArg("student id", args[1])
		if err != nil {
			return err
		}
		svc := classService(a)
		if err := svc.AddStudent(cmd.Context(), classID, studentID); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), svc.Items())
	}),
}

var classesRemoveStudentCmd = &cobra.Command{
	Use:   "remove-student <class-id> <student-id>",
	Short: "Remove a student from a class",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		classID, err := parseIDArg("class id", args[0])
		if err != nil {
			return err
		}
		studentID, err := parseIDArg("student id", args[1])
		if err != nil {
			return err
		}
		class, err := classService(a).RemoveStudent(cmd.Context(), classID, studentID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), class)
	}),
}

func init() {
	rootCmd.AddCommand(classesCmd)
	classesCmd.AddCommand(
		classesListCmd,
		classesGetCmd,
		classesCreateCmd,
		classesUpdateCmd,
		classesDeleteCmd,
		classesAddStudentCmd,
		classesRemoveStudentCmd,
	)

	for _, c := range []*cobra.Command{classesCreateCmd, classesUpdateCmd} {
		c.Flags().StringVar(&className, "name", "", "class name")
		c.Flags().StringVar(&classDescription, "description", "", "class description")
	}
	_ = classesCreateCmd.MarkFlagRequired("name")
}
