package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"berkotech.co/particlecorr/internal/config"
	"berkotech.co/particlecorr/internal/display"
	"berkotech.co/particlecorr/internal/pipeline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "particlecorr [input.csv]",
	Short: "Correlate particle shape descriptors and plot them",
	Long: `particlecorr loads a particle shape table, drops the identifier columns,
keeps rows with elongation <= 100, prints a preview and the Pearson
correlation matrix, saves a scatter matrix to correlation_plot.png and shows
it together with a correlation heat map.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ./particlecorr.yaml)")
	f.Bool("debug", false, "enable debug logging")

	rf := rootCmd.Flags()
	rf.String("output", "correlation_plot.png", "scatter matrix PNG, overwritten if present")
	rf.String("heatmap-output", "", "also save the heat map to this PNG")
	rf.String("report", "", "write a YAML report of the run to this file")
	rf.StringSlice("drop", []string{"particle_number", "contour_number"}, "columns to drop")
	rf.Bool("allow-missing-drop", false, "ignore drop columns the input does not have")
	rf.String("filter-column", "elongation", "column the threshold applies to")
	rf.Float64("threshold", 100, "keep rows with filter column <= threshold")
	rf.Int("preview-rows", 5, "rows to print after filtering")
	rf.Bool("describe", false, "print summary statistics of the filtered data")
	rf.Bool("show", true, "open the plots in the default image viewer")
	rf.String("viewer", "", "application to open plots with instead of the platform default")
	rf.Bool("trend", false, "draw least-squares lines on the scatter panels")
	rf.Int("bins", 10, "histogram bins on the scatter matrix diagonal")
	rf.Bool("annotate", true, "print coefficients on the heat map")

	bind := map[string]string{
		"debug":              "debug",
		"output":             "output",
		"heatmap-output":     "heatmap_output",
		"report":             "report",
		"drop":               "drop",
		"allow-missing-drop": "allow_missing_drop",
		"filter-column":      "filter_column",
		"threshold":          "threshold",
		"preview-rows":       "preview_rows",
		"describe":           "describe",
		"show":               "show",
		"viewer":             "viewer",
		"trend":              "trend",
		"bins":               "bins",
		"annotate":           "annotate",
	}
	for flag, key := range bind {
		fl := rf.Lookup(flag)
		if fl == nil {
			fl = f.Lookup(flag)
		}
		if err := v.BindPFlag(key, fl); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(configCmd)
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		v.Set("input", args[0])
	}
	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var presenter display.Presenter = display.Discard{}
	if c.Show {
		presenter = &display.Opener{App: c.Viewer, Logger: log}
	}

	p := &pipeline.Pipeline{
		Config:    c,
		Presenter: presenter,
		Out:       cmd.OutOrStdout(),
		Logger:    log,
		RunID:     uuid.New(),
	}
	_, err = p.Run()
	return err
}
