package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol/platform"
	"github.com/spf13/cobra"
)

var swapModesCmd = &cobra.Command{
	Use:   "swapmodes",
	Short: "List the swap control modes of this platform",
	Args:  cobra.NoArgs,
	Run:   listSwapModes,
}

func init() {
	rootCmd.AddCommand(swapModesCmd)
}

func listSwapModes(cmd *cobra.Command, args []string) {
	_, backends := platform.Backends(nil)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Swap control modes:")
	for i, b := range backends {
		fmt.Fprintf(out, "  %d: %s\n", i, b.Name())
	}
}
