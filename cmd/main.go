package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "regintel",
	Short: "A CLI for managing the Regulatory Intelligence CRM services",
	Long:  `Regulatory Intelligence CRM tracks regulatory opportunities, target companies and government procurements, and generates daily intelligence briefings.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
