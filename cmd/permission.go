package cmd

import (
	"fmt"

	"github.com/Daskott/sosphone/platform"
	"github.com/spf13/cobra"
)

// permissions sosphone can be granted, by name on the command line
var permissions = map[string]platform.Permission{
	"call": platform.CallPhone,
}

func init() {
	rootCmd.AddCommand(createPermissionCmd())
}

func createPermissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Manages the permissions granted to sosphone",
	}

	cmd.AddCommand(
		createPermissionSubCmd("grant", "Grants a permission", func(h *host, p platform.Permission) error {
			return h.term.SetGrant(p, true)
		}),
		createPermissionSubCmd("deny", "Denies a permission", func(h *host, p platform.Permission) error {
			return h.term.SetGrant(p, false)
		}),
		createPermissionSubCmd("revoke", "Forgets a permission, so it's asked for again", func(h *host, p platform.Permission) error {
			return h.term.Revoke(p)
		}),
		createPermissionSubCmd("status", "Shows whether a permission is granted", nil),
	)

	return cmd
}

func createPermissionSubCmd(use, short string, change func(*host, platform.Permission) error) *cobra.Command {
	validArgs := make([]string, 0, len(permissions))
	for name := range permissions {
		validArgs = append(validArgs, name)
	}

	return &cobra.Command{
		Use:       fmt.Sprintf("%v <permission>", use),
		Short:     short,
		ValidArgs: validArgs,
		Args:      cobra.ExactValidArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return runPermission(cmd, args[0], change)
		}),
	}
}

func runPermission(cmd *cobra.Command, name string, change func(*host, platform.Permission) error) error {
	h, err := openHost(cmd)
	if err != nil {
		return err
	}
	defer h.close()

	permission := permissions[name]
	if change != nil {
		if err = change(h, permission); err != nil {
			return err
		}
	}

	state, err := h.term.State(permission)
	if err != nil {
		return err
	}

	cmd.Printf("%v permission: %v\n", name, permissionLabel(state))
	return nil
}
