package export

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appexport "interview-pipeline/internal/app/export"
	"interview-pipeline/internal/app/repository/pg"
	"interview-pipeline/internal/config"
)

var (
	userID     string
	outputPath string
)

var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's transcripts to an xlsx file",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run())
	},
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to export transcripts for")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "transcripts.xlsx", "output file path")
	Cmd.MarkFlagRequired("user")
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	db, err := pg.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database error: %v\n", err)
		return 1
	}
	defer db.Close()

	transcripts, err := db.ListByUser(context.Background(), userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query error: %v\n", err)
		return 1
	}

	if len(transcripts) == 0 {
		fmt.Printf("no transcripts found for user %s\n", userID)
		return 0
	}

	if err := appexport.ToExcel(transcripts, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "export error: %v\n", err)
		return 1
	}

	fmt.Printf("exported %d transcripts to %s\n", len(transcripts), outputPath)
	return 0
}
