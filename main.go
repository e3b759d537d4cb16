package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noelruault/lazygrid/internal/aws"
	"github.com/noelruault/lazygrid/internal/config"
	"github.com/noelruault/lazygrid/internal/logutil"
	"github.com/noelruault/lazygrid/internal/source"
)

type flagValues struct {
	configPath  string
	overscan    int
	columnWidth int
	frozen      int
	limit       int
	sheet       string
	table       string
	profile     string
	region      string
	logFile     string
	logLevel    string
}

func main() {
	if err := newRootCmd(&flagValues{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lazygrid [source]",
		Short: "Browse large tables in the terminal",
		Long: `lazygrid opens CSV, TSV, XLSX and SQLite tables, locally or from
s3://bucket/key, and renders only the rows and columns on screen.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fv, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&fv.configPath, "config", "", "Config file (default: ~/.lazygrid/config.json)")
	f.IntVar(&fv.overscan, "overscan", 0, "Columns rendered beyond each side of the viewport")
	f.IntVarP(&fv.columnWidth, "width", "w", 0, "Default column width")
	f.IntVarP(&fv.frozen, "frozen", "f", 0, "Freeze the first n columns")
	f.IntVarP(&fv.limit, "limit", "n", 0, "Read at most n rows (0 = all)")
	f.StringVar(&fv.sheet, "sheet", "", "Worksheet to open in an XLSX file")
	f.StringVar(&fv.table, "table", "", "Table to open in a SQLite database")
	f.StringVar(&fv.profile, "profile", "", "AWS profile for s3:// sources")
	f.StringVar(&fv.region, "region", "", "AWS region for s3:// sources")
	f.StringVar(&fv.logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&fv.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	return cmd
}

func loadConfig(cmd *cobra.Command, fv *flagValues) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if fv.configPath != "" {
		cfg, err = config.LoadConfigFrom(fv.configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("overscan") {
		cfg.Overscan = fv.overscan
	}
	if f.Changed("width") {
		cfg.ColumnWidth = fv.columnWidth
	}
	if f.Changed("frozen") {
		cfg.Frozen = fv.frozen
	}
	if f.Changed("limit") {
		cfg.Limit = fv.limit
	}
	if f.Changed("profile") {
		cfg.Profile = fv.profile
	}
	if f.Changed("region") {
		cfg.Region = fv.region
	}
	if f.Changed("log-file") {
		cfg.LogFile = fv.logFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = fv.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, fv *flagValues, uri string) error {
	cfg, err := loadConfig(cmd, fv)
	if err != nil {
		return err
	}

	logger, err := logutil.Setup(logutil.LogConfig{Level: cfg.LogLevel, Filename: cfg.LogFile})
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := source.Options{
		Sheet:       fv.sheet,
		Table:       fv.table,
		Limit:       cfg.Limit,
		Frozen:      cfg.Frozen,
		ColumnWidth: cfg.ColumnWidth,
		MaxWidth:    cfg.MaxWidth,
		MaxBytes:    cfg.MaxBytes,
		Logger:      logger,
	}
	if strings.HasPrefix(uri, "s3://") {
		client, err := aws.NewClient(context.Background(), aws.ClientOptions{Profile: cfg.Profile, Region: cfg.Region})
		if err != nil {
			return err
		}
		opts.Fetcher = client
		logger.Info("aws client ready", zap.String("region", client.GetRegion()))
	}

	p := tea.NewProgram(initialModel(cfg, uri, opts, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
