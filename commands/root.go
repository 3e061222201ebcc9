package commands

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/data/fetch"
	"github.com/scripta-tools/linehistory/internal/presentation/formatter"
	"github.com/scripta-tools/linehistory/internal/util"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "linehistory",
		Short: "Transcription line version history viewer",
		Long: `linehistory reconstructs the version history of a single transcription
line: it fetches the line's historical records from a history service,
normalizes their heterogeneous shapes, orders the versions newest
first, and marks where the image-region bounding box changed.

Examples:
  linehistory show line.json                                 # one-shot history for a line record
  linehistory show line.json --output json                   # machine-readable view model
  linehistory show line.json --transport tree --endpoint https://store.example.org
  linehistory watch line.json                                # re-render whenever the record file changes
  linehistory watch --ws ws://localhost:8080/events          # follow host application selections`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.linehistory.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.PersistentFlags().String("endpoint", "", "History-tree service base URL (tree transport)")
	rootCmd.PersistentFlags().String("transport", "plain", "History transport (tree, plain)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().String("timezone", "Local", "Timezone for displayed timestamps (e.g. UTC, Europe/London)")
	rootCmd.PersistentFlags().String("manifest", "", "Manifest identifier of the active project")
	rootCmd.PersistentFlags().String("canvas", "", "Canvas identifier of the active page")

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("transport", rootCmd.PersistentFlags().Lookup("transport"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))
	viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	viper.BindPFlag("canvas", rootCmd.PersistentFlags().Lookup("canvas"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".linehistory")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("LINEHISTORY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		util.LogDebugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// setup initializes logging and time handling and builds the
// configured collaborators.
func setup() (fetch.Fetcher, formatter.Renderer, model.Context, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	util.InitLogger(logLevel, "")

	if err := util.InitializeTimeProvider(viper.GetString("timezone")); err != nil {
		return nil, nil, model.Context{}, err
	}

	fetcher, err := newFetcher()
	if err != nil {
		return nil, nil, model.Context{}, err
	}

	hostCtx := model.Context{
		ManifestID: viper.GetString("manifest"),
		CanvasID:   viper.GetString("canvas"),
	}

	return fetcher, formatter.New(viper.GetString("output")), hostCtx, nil
}

// newFetcher picks one history transport per deployment.
func newFetcher() (fetch.Fetcher, error) {
	switch transport := viper.GetString("transport"); transport {
	case "tree":
		endpoint := viper.GetString("endpoint")
		if endpoint == "" {
			return nil, fmt.Errorf("transport 'tree' requires --endpoint")
		}
		return fetch.NewTreeClient(endpoint), nil
	case "plain", "":
		return fetch.NewPlainClient(), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (expected tree or plain)", transport)
	}
}

func Execute() error {
	return rootCmd.Execute()
}
