package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cddiller",
	Short: "API del panel de distribución CDDiller",
	Long: `API del panel de distribución CDDiller. Uso:

	cddiller serve
	cddiller migrate up
	cddiller seed
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
