package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blinksim",
	Short: "Run the blink firmware on the host",
	Long: "blinksim runs the LED blink-mode firmware against fake pins.\n" +
		"'run' ticks in real time and reads presses from stdin;\n" +
		"'script' replays a scenario file and checks its expectations.",
	SilenceUsage: true,
}

func init() {
	addMachineFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd, scriptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
