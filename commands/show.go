package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scripta-tools/linehistory/internal/application/panel"
	"github.com/scripta-tools/linehistory/internal/core/model"
)

var showCmd = &cobra.Command{
	Use:   "show <record.json>",
	Short: "Render the version history of one line record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	fetcher, renderer, hostCtx, err := setup()
	if err != nil {
		return err
	}

	record, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read line record: %w", err)
	}

	p := panel.New(fetcher, renderer, hostCtx)
	return p.SelectSync(context.Background(), model.RawRecord(record))
}
