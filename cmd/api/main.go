package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskplanner/core/cmd/api/commands"
)

// @title TaskPlanner API
// @version 1.0
// @description Task scheduling API with a month calendar view

// @host localhost:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskplanner",
		Short: "TaskPlanner API server",
		Long:  `TaskPlanner is a task scheduling service with a month calendar view over task due dates.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewCalendarCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
