package cmd

import (
	"github.com/Daskott/sosphone/platform"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createReconfigureCmd())
}

func createReconfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconfigure",
		Short: "Clears the emergency profile so it can be set up again",
		Args:  cobra.NoArgs,
		RunE:  runE(runReconfigure),
	}
}

func runReconfigure(cmd *cobra.Command, args []string) error {
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

	if err = screen.Reconfigure(); err != nil {
		return err
	}

	cmd.Println("Emergency profile cleared. Run 'sosphone configure --phone <number>' to set it up again.")
	return nil
}
