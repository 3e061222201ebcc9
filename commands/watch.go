package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scripta-tools/linehistory/internal/application/panel"
	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/data/events"
	"github.com/scripta-tools/linehistory/internal/util"
)

var watchWS string

var watchCmd = &cobra.Command{
	Use:   "watch [record.json]",
	Short: "Keep rendering the history as the line changes",
	Long: `watch attaches the history panel to a live event source and re-renders
the version history on every line-selected or line-updated event.

With a record file argument, the file is watched for rewrites; with
--ws, events arrive from the host application over a websocket.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchWS, "ws", "", "Host event websocket URL (e.g. ws://localhost:8080/events)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	fetcher, renderer, hostCtx, err := setup()
	if err != nil {
		return err
	}

	p := panel.New(fetcher, renderer, hostCtx)

	var source events.Source
	switch {
	case watchWS != "":
		source, err = events.NewSocketSource(watchWS)
		if err != nil {
			return fmt.Errorf("failed to connect to host event socket: %w", err)
		}
	case len(args) == 1:
		source, err = events.NewFileSource(args[0])
		if err != nil {
			return fmt.Errorf("failed to watch record file: %w", err)
		}
		// Seed the panel with the file's current content.
		if record, err := os.ReadFile(args[0]); err == nil {
			p.Select(model.RawRecord(record))
		}
	default:
		return fmt.Errorf("either a record file or --ws is required")
	}
	defer source.Close()

	p.Attach(source)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	util.LogInfo("Shutting down")
	return nil
}
