package cmd

import (
	"os"
	"os/signal"

	"github.com/Daskott/sosphone/colors"
	"github.com/Daskott/sosphone/screens/conf"
	"github.com/spf13/cobra"
)

var waitArg bool

func init() {
	rootCmd.AddCommand(createAlarmCmd())
}

func createAlarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm",
		Short: "Sets the SOS alarm to ring in two minutes",
		Long: `Sets an alarm labelled 'Alarma SOS' two minutes from now.
The alarm only rings while sosphone is running, use --wait to keep it running until then.`,
		Args: cobra.NoArgs,
		RunE: runE(runAlarm),
	}

	cmd.Flags().BoolVarP(&waitArg, "wait", "w", false, "wait for the alarm to ring")

	return cmd
}

func runAlarm(cmd *cobra.Command, args []string) error {
	h, err := openHost(cmd)
	if err != nil {
		return err
	}
	defer h.close()

	if err = h.launch(); err != nil {
		return err
	}

	h.clock.Start()
	if err = h.app.ScheduleAlarm(); err != nil {
		return err
	}

	for _, alarm := range h.clock.Pending() {
		cmd.Printf("%s set for %v\n", colors.Bold(alarm.Label), alarm.At.Format("15:04"))
	}

	if !waitArg {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cmd.Printf("Waiting for %v to ring, press Ctrl+C to stop\n", conf.AlarmLabel)
	_, err = h.clock.Wait(ctx)
	return err
}
