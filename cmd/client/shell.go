package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/orchestrator"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive dashboard session",
	Long: `Interactive dashboard session. Commands:

  submit <name> | <location>   fetch a snapshot
  regenerate                   new headline, same rating and reviews
  reset                        start over
  state                        show the session
  quit                         leave`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	o, baseURL, err := newOrchestrator(func(s orchestrator.Session) {
		if s.Busy() {
			fmt.Printf("%s… %s%s\n", colorYellow, s.Phase(), colorReset)
		}
	})
	if err != nil {
		return err
	}

	printHeader("Business Dashboard")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		verb, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch strings.ToLower(verb) {
		case "":
			continue
		case "submit":
			name, location, ok := strings.Cut(rest, "|")
			if !ok {
				printError("usage: submit <name> | <location>")
				continue
			}
			report(o.Submit(ctx, models.BusinessIdentity{Name: strings.TrimSpace(name), Location: strings.TrimSpace(location)}))
			printSession(o.State())
		case "regenerate":
			report(o.Regenerate(ctx))
			printSession(o.State())
		case "reset":
			o.Reset()
			printSuccess("Session cleared")
		case "state":
			printSession(o.State())
		case "quit", "exit":
			return nil
		default:
			printError(fmt.Sprintf("Unknown command: %s", verb))
		}
	}
}

func report(err error) {
	var ferr *orchestrator.FormError
	switch {
	case err == nil:
	case errors.As(err, &ferr):
		for _, msg := range ferr.Fields {
			printError(msg)
		}
	case errors.Is(err, orchestrator.ErrBusy):
		printError("Please wait for the current request to finish")
	}
}
