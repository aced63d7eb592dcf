package main

import (
	"github.com/BerylCAtieno/growthpro-dashboard/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		logging.Log.Exit(1)
	}
}
