// Command rent360-report prints list-view stats for the demo portfolio.
package main

import (
	"os"

	"github.com/rent360/rent360/internal/app/reportcli"
)

func main() {
	if err := reportcli.NewRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
