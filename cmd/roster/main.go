package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pedrohavay/broadstripes/roster"
)

// Roster tooling for Broadstripes imports.
// Usage:
//   roster parse-bu -infile "BU 2024.09.01.csv" -program-col PROGRAM -fullname-col NAME
//   roster check-skipped -all-broadstripes all.csv -skipped-entries skipped.csv [-outfile matches.csv]

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch cmd := os.Args[1]; cmd {
	case "parse-bu":
		err = parseBU(os.Args[2:])
	case "check-skipped":
		err = checkSkipped(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "roster commands: parse-bu | check-skipped | help\n")
	fmt.Fprintf(os.Stderr, "run 'roster <command> -h' for the flags of a command\n")
}

// commonFlags are shared by every command.
type commonFlags struct {
	config  string
	verbose bool
	noColor bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "YAML config file (default $"+roster.ConfigEnv+")")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
}

func (c *commonFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func threeColumns(flagName string, cols []string) ([3]string, error) {
	if len(cols) != 3 {
		return [3]string{}, fmt.Errorf("-%s: %w: %q", flagName, roster.ErrInvalidNameColumnSpec, cols)
	}
	return [3]string{cols[0], cols[1], cols[2]}, nil
}

func checkSkipped(args []string) error {
	fs := flag.NewFlagSet("check-skipped", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	all := fs.String("all-broadstripes", "", "CSV of all Broadstripes entries (required)")
	skipped := fs.String("skipped-entries", "", "CSV of skipped entries to check (required)")
	allCols := fs.String("all-bs-cols", "", "comma separated last,first,middle columns of the Broadstripes CSV (default 'Last Name,First Name,Middle Name')")
	skippedCols := fs.String("skipped-cols", "", "comma separated last,first,middle columns of the skipped CSV (default 'Last,First,Middle')")
	threshold := fs.Float64("similarity-threshold", 0, "fuzzy matching threshold in [0, 1] (default 0.75)")
	outfile := fs.String("outfile", "", "optional results file (.csv, .jsonl or .msgpack)")
	workers := fs.Int("workers", 0, "compare this many names concurrently")
	fold := fs.Bool("fold-accents", false, "ignore diacritics when comparing names")
	_ = fs.Parse(args)

	if *all == "" || *skipped == "" {
		return errors.New("-all-broadstripes and -skipped-entries are required")
	}
	cfg, err := roster.LoadConfig(common.config)
	if err != nil {
		return err
	}
	set := setFlags(fs)
	if set["similarity-threshold"] {
		cfg.Threshold = *threshold
	}
	if set["all-bs-cols"] {
		cfg.AllBroadstripesColumns = splitColumns(*allCols)
	}
	if set["skipped-cols"] {
		cfg.SkippedColumns = splitColumns(*skippedCols)
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if *fold {
		cfg.FoldAccents = true
	}
	if err := roster.CheckThreshold(cfg.Threshold); err != nil {
		return err
	}
	allC, err := threeColumns("all-bs-cols", cfg.AllBroadstripesColumns)
	if err != nil {
		return err
	}
	skippedC, err := threeColumns("skipped-cols", cfg.SkippedColumns)
	if err != nil {
		return err
	}
	opts := []roster.Option{roster.WithWorkers(cfg.Workers)}
	if cfg.FoldAccents {
		opts = append(opts, roster.WithFoldAccents())
	}
	_, err = roster.CheckSkippedImports(roster.CheckOptions{
		AllBroadstripes: *all,
		Skipped:         *skipped,
		AllColumns:      allC,
		SkippedColumns:  skippedC,
		Threshold:       cfg.Threshold,
		Outfile:         *outfile,
		MatchOptions:    opts,
		Console:         os.Stdout,
		NoColor:         common.noColor,
	}, common.logger())
	return err
}

func parseBU(args []string) error {
	fs := flag.NewFlagSet("parse-bu", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	infile := fs.String("infile", "", "employer roster CSV, its name must contain the date received as YYYY.MM.DD (required)")
	programCol := fs.String("program-col", "", "column holding the program/field of study (required)")
	fullnameCol := fs.String("fullname-col", "", "column holding 'Last, First M.' names; exclusive with -lfm-cols")
	lfmCols := fs.String("lfm-cols", "", "comma separated last,first,middle columns; exclusive with -fullname-col")
	mappingFile := fs.String("program-mapping-file", "", "YAML program mapping (default program_mapping.yaml)")
	outfile := fs.String("outfile", "", "output CSV (default '<list> made <timestamp>.csv' in the output directory)")
	outputDir := fs.String("output-dir", "", "directory for the default output file (default data)")
	phoneCol := fs.String("phone-col", "", "optional phone column to normalize to E.164")
	emailCol := fs.String("email-col", "", "optional email column to normalize")
	_ = fs.Parse(args)

	if *infile == "" || *programCol == "" {
		return errors.New("-infile and -program-col are required")
	}
	if (*fullnameCol != "") == (*lfmCols != "") {
		return errors.New("specify exactly one of -fullname-col or -lfm-cols so we know which column(s) to use for names")
	}
	cols := []string{*fullnameCol}
	if *lfmCols != "" {
		cols = splitColumns(*lfmCols)
	}
	cfg, err := roster.LoadConfig(common.config)
	if err != nil {
		return err
	}
	if *mappingFile != "" {
		cfg.ProgramMappingFile = *mappingFile
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	programs, err := roster.LoadProgramMapping(cfg.ProgramMappingFile)
	if err != nil {
		return err
	}
	logger := common.logger()
	_, out, err := roster.ParseEmployerList(roster.ParseOptions{
		Infile:        *infile,
		ProgramColumn: *programCol,
		NameColumns:   cols,
		Programs:      programs,
		Address:       cfg.Address,
		PhoneColumn:   *phoneCol,
		EmailColumn:   *emailCol,
		PhoneRegion:   cfg.PhoneRegion,
		Outfile:       *outfile,
		OutputDir:     cfg.OutputDir,
		Write:         true,
	}, logger)
	if err != nil {
		var upe *roster.UnknownProgramError
		if errors.As(err, &upe) {
			fmt.Fprintln(os.Stderr, "This file has program/field of study entries we haven't seen before. Interpret them and add them to the program mapping file:")
			for _, p := range upe.Programs {
				fmt.Fprintf(os.Stderr, "  %s\n", p)
			}
		}
		return err
	}
	fmt.Printf("Wrote to file '%s'\n", out)
	return nil
}
