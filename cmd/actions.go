package cmd

import (
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/screens/actions"
	"github.com/spf13/cobra"
)

func init() {
	for _, cmd := range createActionCmds() {
		rootCmd.AddCommand(cmd)
	}
}

// createActionCmds returns one command per button of the action screen
func createActionCmds() []*cobra.Command {
	return []*cobra.Command{
		createActionCmd("call", "Calls the emergency phone number", (*actions.Screen).Call),
		createActionCmd("open-url", "Opens the emergency URL", (*actions.Screen).OpenURL),
		createActionCmd("open-location", "Shows the emergency location on a map", (*actions.Screen).OpenLocation),
		createActionCmd("email", "Writes an SOS email to the emergency address", (*actions.Screen).SendEmail),
	}
}

func createActionCmd(use, short string, press func(*actions.Screen) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, press)
		}),
	}
}

func runAction(cmd *cobra.Command, press func(*actions.Screen) error) error {
	h, err := openHost(cmd)
	if err != nil {
		return err
	}
	defer h.close()

	if err = h.launch(); err != nil {
		return err
	}

	screen, ok := h.app.Actions()
	if !ok {
		return platform.Show(h.term, msgNotConfigured)
	}

	return press(screen)
}
