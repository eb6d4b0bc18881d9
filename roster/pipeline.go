package roster

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoadRoster reads an employer roster. Whitespace-only cells are rejected and
// columns with missing cells are logged with their share of nulls.
func LoadRoster(path string, logger *slog.Logger) (*Table, error) {
	logger = loggerOr(logger)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return nil, fmt.Errorf("%s: spreadsheet input is not supported, export it to CSV first", path)
	}
	t, err := LoadTableCSV(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded roster", "file", path, "rows", t.Len(), "columns", t.Header)
	if err := t.CheckEmptyCells(); err != nil {
		return nil, fmt.Errorf("%s: %w, please check data quality", path, err)
	}
	for _, s := range t.NullStats() {
		logger.Info("column with null values", "column", s.Column, "null_pct", s.Percent, "null_total", s.Nulls)
	}
	return t, nil
}

// ParseOptions configures ParseEmployerList.
type ParseOptions struct {
	Infile        string
	ProgramColumn string
	// NameColumns is either one full name column or last, first and middle columns.
	NameColumns []string
	Programs    ProgramMapping
	Address     AddressColumns
	PhoneColumn string
	EmailColumn string
	PhoneRegion string
	// Outfile defaults to "<list id> made <timestamp>.csv" in OutputDir.
	Outfile   string
	OutputDir string
	Write     bool
	Now       func() time.Time
}

// ParseEmployerList cleans an employer roster for import: it tags rows with the
// list identifier, classifies programs, checks or splits names, combines the
// address and, when asked, writes the result. It returns the table and the
// path written to ("" when Write is unset).
func ParseEmployerList(opts ParseOptions, logger *slog.Logger) (*Table, string, error) {
	logger = loggerOr(logger)
	if n := len(opts.NameColumns); n != 1 && n != 3 {
		return nil, "", fmt.Errorf("%w: got %d %q", ErrInvalidNameColumnSpec, n, opts.NameColumns)
	}
	t, err := LoadRoster(opts.Infile, logger)
	if err != nil {
		return nil, "", err
	}
	listID, err := ListIdentifier(opts.Infile)
	if err != nil {
		return nil, "", err
	}
	logger.Info("parsed employer list date", "list", listID)
	flags := make([]string, t.Len())
	for i := range flags {
		flags[i] = "True"
	}
	if err := t.SetStrings(listID, flags); err != nil {
		return nil, "", err
	}
	if err := ClassifyPrograms(t, opts.ProgramColumn, opts.Programs, logger); err != nil {
		return nil, "", err
	}
	if err := ApplyNameColumns(t, opts.NameColumns, logger); err != nil {
		return nil, "", err
	}
	addr := opts.Address
	if addr == (AddressColumns{}) {
		addr = DefaultAddressColumns
	}
	if err := CombineAddresses(t, addr); err != nil {
		return nil, "", err
	}
	if opts.PhoneColumn != "" {
		rejected, err := NormalizePhones(t, opts.PhoneColumn, opts.PhoneRegion, logger)
		if err != nil {
			return nil, "", err
		}
		logger.Info("normalized phone numbers", "column", opts.PhoneColumn, "unparsed", rejected)
	}
	if opts.EmailColumn != "" {
		rejected, err := NormalizeEmails(t, opts.EmailColumn, logger)
		if err != nil {
			return nil, "", err
		}
		logger.Info("normalized emails", "column", opts.EmailColumn, "unparsed", rejected)
	}
	logger.Info("finished parsing employer list, check the output for errors before using it")
	if !opts.Write {
		return t, "", nil
	}

	out := opts.Outfile
	if out == "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		name := fmt.Sprintf("%s made %s.csv", listID, now().Format("2006.01.02_15.04.05"))
		out = filepath.Join(opts.OutputDir, name)
	}
	if err := writeFile(out, func(w io.Writer) error { return WriteTableCSV(w, t) }); err != nil {
		return nil, "", err
	}
	logger.Info("wrote roster", "file", out)
	return t, out, nil
}

// CheckOptions configures CheckSkippedImports.
type CheckOptions struct {
	AllBroadstripes string
	Skipped         string
	AllColumns      [3]string
	SkippedColumns  [3]string
	Threshold       float64
	// Outfile format follows its extension: .jsonl, .msgpack, anything else CSV.
	Outfile      string
	MatchOptions []Option
	// Console, when set, receives the printed report.
	Console io.Writer
	NoColor bool
}

// CheckSkippedImports compares the names of skipped roster entries against all
// existing entries and returns the potential duplicates.
func CheckSkippedImports(opts CheckOptions, logger *slog.Logger) (MatchReport, error) {
	logger = loggerOr(logger)
	if err := CheckThreshold(opts.Threshold); err != nil {
		return nil, err
	}
	existing, err := LoadTableCSV(opts.AllBroadstripes, opts.AllColumns[:]...)
	if err != nil {
		return nil, fmt.Errorf("all Broadstripes entries: %w", err)
	}
	logger.Info("loaded all Broadstripes entries", "file", opts.AllBroadstripes, "rows", existing.Len())
	skipped, err := LoadTableCSV(opts.Skipped, opts.SkippedColumns[:]...)
	if err != nil {
		return nil, fmt.Errorf("skipped additions: %w", err)
	}
	logger.Info("loaded skipped additions", "file", opts.Skipped, "rows", skipped.Len())

	queries, err := CombineNameColumns(skipped, opts.SkippedColumns)
	if err != nil {
		return nil, fmt.Errorf("skipped additions: %w", err)
	}
	reference, err := CombineNameColumns(existing, opts.AllColumns)
	if err != nil {
		return nil, fmt.Errorf("all Broadstripes entries: %w", err)
	}
	report, err := FindMatches(Strs(queries...), Strs(reference...), opts.Threshold, opts.MatchOptions...)
	if err != nil {
		return nil, err
	}
	exact, fuzzy := report.Counts()
	logger.Info("found potential matches", "total", len(report), "exact", exact, "fuzzy", fuzzy)
	if opts.Console != nil {
		PrintReport(opts.Console, report, opts.NoColor)
	}
	if opts.Outfile != "" {
		if err := WriteReportFile(opts.Outfile, report); err != nil {
			return nil, err
		}
		logger.Info("wrote results", "file", opts.Outfile)
	}
	return report, nil
}

// WriteReportFile writes r to path in the format named by its extension.
func WriteReportFile(path string, r MatchReport) error {
	write := func(w io.Writer) error { return WriteReportCSV(w, r) }
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		write = func(w io.Writer) error { return WriteReportJSONL(w, r) }
	case ".msgpack", ".mp":
		write = func(w io.Writer) error { return WriteReportMsgpack(w, r) }
	}
	return writeFile(path, write)
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
