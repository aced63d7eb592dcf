package main

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/orchestrator"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

func printSession(s orchestrator.Session) {
	if msg := s.Error(); msg != "" {
		printError(msg)
	}

	snap, ok := s.Snapshot()
	if !ok {
		fmt.Printf("%sNo business loaded. Use: submit <name> | <location>%s\n", colorCyan, colorReset)
		return
	}
	id, _ := s.Identity()

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%s%s%s - %s\n", colorGreen, id.Name, colorReset, id.Location)
	fmt.Printf("Rating:   %s %.1f\n", stars(snap.Rating), snap.Rating)
	fmt.Printf("Reviews:  %d\n", snap.Reviews)
	fmt.Printf("Headline: %s\"%s\"%s\n", colorYellow, snap.Headline, colorReset)
	fmt.Println(strings.Repeat("=", 80))
}

func stars(rating float64) string {
	full := int(rating)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printStepHeader(text string) {
	fmt.Printf("%s[%s]%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}
