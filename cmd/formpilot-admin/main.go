// formpilot-admin is an operator CLI over the same services the API uses.
package main

import (
	"fmt"
	"log"
	"os"

	"formpilot-api/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "formpilot-admin",
	Short:         "Operator tasks for FormPilot",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func openDB() (*gorm.DB, config.Settings, error) {
	settings := config.LoadSettings()
	db, err := config.InitDB(settings)
	return db, settings, err
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rootCmd.AddCommand(formsCmd(), submissionsCmd(), accountCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
