package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/saft-pt/pkg/saft"
)

// Version and BuildDate are overridden by the release build.
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the toolkit version and the SAF-T schema it targets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, Version)
			return
		}
		fmt.Fprintf(out, "saftpt %s (built %s, %s)\n", Version, BuildDate, runtime.Version())
		fmt.Fprintf(out, "SAF-T (PT) %s, %s\n", saft.AuditFileVersion, saft.Namespace)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	rootCmd.AddCommand(versionCmd)
}
