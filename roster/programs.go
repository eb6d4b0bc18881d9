package roster

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Columns added by ClassifyPrograms.
const (
	EmployerColumn = "Employer"
	DegreeColumn   = "Degree"
)

// Program is the employer and degree a program/field of study maps to.
type Program struct {
	Employer string `yaml:"employer"`
	Degree   string `yaml:"degree"`
}

// UnmarshalYAML accepts either a two element list [employer, degree] or a
// mapping with employer and degree keys.
func (p *Program) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []string
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: program entry needs [employer, degree], got %d values", node.Line, len(pair))
		}
		p.Employer, p.Degree = pair[0], pair[1]
		return nil
	}
	type plain Program
	return node.Decode((*plain)(p))
}

// ProgramMapping maps a program/field of study to its employer and degree.
type ProgramMapping map[string]Program

// ParseProgramMapping decodes a YAML program mapping document.
func ParseProgramMapping(raw []byte) (ProgramMapping, error) {
	m := ProgramMapping{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for name, p := range m {
		if p.Employer == "" || p.Degree == "" {
			return nil, fmt.Errorf("program %q: employer and degree are required", name)
		}
	}
	return m, nil
}

// LoadProgramMapping reads a YAML program mapping file.
func LoadProgramMapping(path string) (ProgramMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program mapping file: %w", err)
	}
	m, err := ParseProgramMapping(raw)
	if err != nil {
		return nil, fmt.Errorf("program mapping %s: %w", path, err)
	}
	return m, nil
}

var programSuffix = regexp.MustCompile(`(?i) PROGRAM`)

// ClassifyPrograms maps the program column of t to Employer and Degree columns.
// The redundant " PROGRAM" text employers sometimes add is removed first. Any
// missing program value, or any program not in m, fails the whole table.
func ClassifyPrograms(t *Table, col string, m ProgramMapping, logger *slog.Logger) error {
	logger = loggerOr(logger)
	vals, err := t.Column(col)
	if err != nil {
		return fmt.Errorf("program column: %w", err)
	}
	for i, v := range vals {
		if !v.Valid {
			return fmt.Errorf("%w: column %q, row %d", ErrMissingProgram, col, i+1)
		}
		vals[i] = Str(programSuffix.ReplaceAllString(v.String, ""))
	}
	if err := t.SetColumn(col, vals); err != nil {
		return err
	}

	unknown := map[string]struct{}{}
	for _, v := range vals {
		if _, ok := m[v.String]; !ok {
			unknown[v.String] = struct{}{}
		}
	}
	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for n := range unknown {
			names = append(names, n)
		}
		sort.Strings(names)
		return &UnknownProgramError{Programs: names}
	}

	employers := make([]string, len(vals))
	degrees := make([]string, len(vals))
	ue, ud := map[string]struct{}{}, map[string]struct{}{}
	for i, v := range vals {
		p := m[v.String]
		employers[i], degrees[i] = p.Employer, p.Degree
		ue[p.Employer] = struct{}{}
		ud[p.Degree] = struct{}{}
	}
	if err := t.SetStrings(EmployerColumn, employers); err != nil {
		return err
	}
	if err := t.SetStrings(DegreeColumn, degrees); err != nil {
		return err
	}
	logger.Info("parsed program/field of study data", "employers", len(ue), "degrees", len(ud))
	return nil
}
