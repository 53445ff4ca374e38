package cmd

import (
	"fmt"

	"github.com/Daskott/sosphone/colors"
	"github.com/Daskott/sosphone/profile"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createConfigureCmd())
}

func createConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Sets up the emergency profile",
		Long: `Fills in the configuration form with the given values & submits it.
Fields left out keep whatever the form was pre-filled with. The phone number is required,
email & URL are optional but must be valid when given, location is free text.`,
		Args: cobra.NoArgs,
		RunE: runE(runConfigure),
	}

	for _, field := range profile.Fields {
		cmd.Flags().String(field.Key(), "", fmt.Sprintf("emergency %v", field))
	}

	return cmd
}

func runConfigure(cmd *cobra.Command, args []string) error {
	h, err := openHost(cmd)
	if err != nil {
		return err
	}
	defer h.close()

	if err = h.launch(); err != nil {
		return err
	}

	screen, ok := h.app.Config()
	if !ok {
		return fmt.Errorf("an emergency profile is already configured, run 'sosphone reconfigure' to change it")
	}

	for _, field := range profile.Fields {
		if !cmd.Flags().Changed(field.Key()) {
			continue
		}

		value, err := cmd.Flags().GetString(field.Key())
		if err != nil {
			return err
		}
		screen.SetField(field, value)
	}

	if err = screen.Submit(); err != nil {
		return err
	}

	actions, ok := h.app.Actions()
	if !ok {
		return fmt.Errorf("emergency profile saved, but the action screen didn't open")
	}

	cmd.Println(colors.Green("Emergency profile saved"))
	printProfile(cmd, actions.Profile())
	return nil
}
