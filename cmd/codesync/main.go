// Package main provides the entry point for the CodeSync backend server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codesync",
	Short: "CodeSync backend server",
	Long:  "CodeSync is a career platform for engineering students: AI-assisted resume analysis, learning roadmaps, aggregated contest listings and sandboxed code execution behind one REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
