// Package main provides the fumofetch command-line tool for displaying Linux
// system information beside an ASCII art logo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/peterbourgon/ff/v2"
	"go.uber.org/zap"

	"github.com/fumofumoenjoyer/FumoRfetch/ascii"
	"github.com/fumofumoenjoyer/FumoRfetch/fetchlog"
	"github.com/fumofumoenjoyer/FumoRfetch/render"
	"github.com/fumofumoenjoyer/FumoRfetch/sysinfo"
)

// config holds the command line settings. Every flag can also be set with a
// FUMOFETCH_ environment variable.
type config struct {
	gap     int
	logo    string
	wide    bool
	timeout time.Duration
	debug   bool
	logFile string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("fumofetch", flag.ContinueOnError)
	fs.IntVar(&cfg.gap, "gap", render.DefaultGap, "number of spaces between logo and info")
	fs.StringVar(&cfg.logo, "logo", "", "logo file tried before resources/"+ascii.LogoFile+" and ./"+ascii.LogoFile)
	fs.BoolVar(&cfg.wide, "wide", false, "measure wide characters as two cells when aligning the logo")
	fs.DurationVar(&cfg.timeout, "timeout", 0, "timeout for each helper command (0 waits forever)")
	fs.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	fs.StringVar(&cfg.logFile, "log-file", "", "write debug log to this file instead of stderr")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("FUMOFETCH")); err != nil {
		return config{}, err
	}
	if cfg.gap < 0 {
		return config{}, fmt.Errorf("invalid -gap %d: must not be negative", cfg.gap)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fumofetch: %v\n", err)
		os.Exit(2)
	}

	log, closeLog := fetchlog.New(fetchlog.Options{Debug: cfg.debug, File: cfg.logFile})
	src := sysinfo.NewHostSource(cfg.timeout, log.Named("source"))
	err = run(context.Background(), cfg, os.Stdout, log, src)
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fumofetch: %v\n", err)
		os.Exit(1)
	}
}

// run collects the report from src and prints it beside the logo.
func run(ctx context.Context, cfg config, out io.Writer, log *zap.Logger, src sysinfo.Source) error {
	report, err := sysinfo.NewProber(src, log.Named("probe")).Collect(ctx)
	if err != nil {
		return err
	}

	logo, err := ascii.Load(ascii.DefaultPaths(cfg.logo)...)
	if err != nil {
		log.Debug("using built-in logo", zap.Error(err))
		logo = ascii.Fallback()
	}

	width := render.VisibleWidth
	if cfg.wide {
		width = render.CellWidth
	}
	return render.Renderer{Out: out, Gap: cfg.gap, Width: width}.Render(logo, report)
}
