/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/Tedomi2525/My-project/internal/services"
	"github.com/Tedomi2525/My-project/internal/store"
	"github.com/Tedomi2525/My-project/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	userUsername    string
	userPassword    string
	userFullName    string
	userEmail       string
	userRole        string
	userStudentCode string
)

func addUserFlags(f *pflag.FlagSet) {
	f.StringVar(&userUsername, "username", "", "login name")
	f.StringVar(&userPassword, "password", "", "account password")
	f.StringVar(&userFullName, "full-name", "", "display name")
	f.StringVar(&userEmail, "email", "", "email address")
	f.StringVar(&userRole, "role", string(types.RoleStudent), "admin, teacher or student")
	f.StringVar(&userStudentCode, "student-code", "", "student number")
}

func userCreateInput() (types.UserCreate, error) {
	role, ok := types.ParseRole(userRole)
	if !ok {
		return types.UserCreate{}, fmt.Errorf("unknown role %q", userRole)
	}
	return types.UserCreate{
		Username:    userUsername,
		Password:    userPassword,
		FullName:    userFullName,
		Email:       userEmail,
		Role:        role,
		StudentCode: userStudentCode,
	}, nil
}

func userUpdateInput(f *pflag.FlagSet) (types.UserUpdate, error) {
	var in types.UserUpdate
	if f.Changed("full-name") {
		in.FullName = &userFullName
	}
	if f.Changed("email") {
		in.Email = &userEmail
	}
	if f.Changed("password") {
		in.Password = &userPassword
	}
	if f.Changed("student-code") {
		in.StudentCode = &userStudentCode
	}
	if f.Changed("role") {
		role, ok := types.ParseRole(userRole)
		if !ok {
			return types.UserUpdate{}, fmt.Errorf("unknown role %q", userRole)
		}
		in.Role = &role
	}
	return in, nil
}

// userCommands builds list/get/create/update/delete for one accounts
// collection.
func userCommands(newService func(*app) *services.UserService) []*cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			users, err := newService(a).List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), users)
		}),
	}

	get := &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseIDArg("user id", args[0])
			if err != nil {
				return err
			}
			user, err := newService(a).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		}),
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			in, err := userCreateInput()
			if err != nil {
				return err
			}
			user, err := newService(a).Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		}),
	}
	addUserFlags(create.Flags())
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	update := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseIDArg("user id", args[0])
			if err != nil {
				return err
			}
			in, err := userUpdateInput(cmd.Flags())
			if err != nil {
				return err
			}
			user, err := newService(a).Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		}),
	}
	addUserFlags(update.Flags())

	del := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseIDArg("user id", args[0])
			if err != nil {
				return err
			}
			svc := newService(a)
			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.Items())
		}),
	}

	return []*cobra.Command{list, get, create, update, del}
}

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts through /users",
}

// adminUsersCmd represents the admin-users command
var adminUsersCmd = &cobra.Command{
	Use:   "admin-users",
	Short: "Manage accounts through /admin/users (admins only)",
}

var adminUsersResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <user-id>",
	Short: "Reset an account password",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseIDArg("user id", args[0])
		if err != nil {
			return err
		}
		reset, err := adminUserService(a).ResetPassword(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), reset)
	}),
}

func adminUserService(a *app) *services.AdminUserService {
	return services.NewAdminUserService(store.NewAdminUserRepository(a.client))
}

func init() {
	rootCmd.AddCommand(usersCmd, adminUsersCmd)

	usersCmd.AddCommand(userCommands(func(a *app) *services.UserService {
		return services.NewUserService(store.NewUserRepository(a.client))
	})...)

	admin := userCommands(func(a *app) *services.UserService {
		return adminUserService(a).UserService
	})
	// /admin/users has no single-account read in this client.
	for _, c := range admin {
		if c.Name() != "get" {
			adminUsersCmd.AddCommand(c)
		}
	}
	adminUsersCmd.AddCommand(adminUsersResetPasswordCmd)
}
