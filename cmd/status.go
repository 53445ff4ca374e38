package cmd

import (
	"github.com/Daskott/sosphone/colors"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/profile"
	"github.com/Daskott/sosphone/utils"
	"github.com/spf13/cobra"
)

const msgNotConfigured = "No emergency profile configured. Run 'sosphone configure --phone <number>' to set one up."

func init() {
	rootCmd.AddCommand(createStatusCmd())
}

func createStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Shows the emergency profile & the call permission",
		Args:  cobra.NoArgs,
		RunE:  runE(runStatus),
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	h, err := openHost(cmd)
	if err != nil {
		return err
	}
	defer h.close()

	if err = h.launch(); err != nil {
		return err
	}

	if screen, ok := h.app.Config(); ok {
		cmd.Println(colors.Yellow(msgNotConfigured))
		printProfile(cmd, screen.Form().Profile())
		return nil
	}

	screen, _ := h.app.Actions()
	cmd.Println(colors.Bold("Emergency profile"))
	printProfile(cmd, screen.Profile())

	state, err := h.term.State(platform.CallPhone)
	if err != nil {
		return err
	}
	cmd.Printf("Call permission: %v\n", permissionLabel(state))

	return nil
}

func printProfile(cmd *cobra.Command, p profile.Profile) {
	for _, field := range profile.Fields {
		value := utils.StrVal(p.Get(field))
		if value == "" {
			value = "-"
		}
		cmd.Printf("  %-9s %s\n", field.Key()+":", value)
	}
}

func permissionLabel(state platform.PermissionState) string {
	switch state {
	case platform.Granted:
		return colors.Green(state)
	case platform.Denied:
		return colors.Red(state)
	}
	return colors.Yellow("not asked yet")
}
