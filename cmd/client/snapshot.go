package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch a business snapshot, optionally regenerating the headline",
	Example: `  growthpro snapshot --name "Joe's Cafe" --location Austin
  growthpro snapshot --name "Joe's Cafe" --location Austin --regenerate 3`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().String("name", "", "business name")
	snapshotCmd.Flags().String("location", "", "business location")
	snapshotCmd.Flags().Int("regenerate", 0, "number of headline regenerations after the snapshot")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	location, _ := cmd.Flags().GetString("location")
	times, _ := cmd.Flags().GetInt("regenerate")

	o, baseURL, err := newOrchestrator(nil)
	if err != nil {
		return err
	}

	printHeader("Business Dashboard")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)

	ctx := context.Background()
	id := models.BusinessIdentity{Name: name, Location: location}

	printStepHeader("Fetching business data")
	if err := o.Submit(ctx, id); err != nil {
		return err
	}
	printSession(o.State())

	for i := 0; i < times; i++ {
		printStepHeader(fmt.Sprintf("Regenerating headline (%d/%d)", i+1, times))
		if err := o.Regenerate(ctx); err != nil {
			return err
		}
		printSession(o.State())
	}
	return nil
}
