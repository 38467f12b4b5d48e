package driver

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/parser"
)

// CheckResult is the outcome of parsing one named source.
type CheckResult struct {
	Name         string
	Program      *ast.Program
	Rendered     string
	Diagnostics  parser.Diagnostics
	Placeholders int
}

// OK reports whether the source parsed without diagnostics.
func (r CheckResult) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Check parses src and summarises the result under name.
func Check(name, src string) CheckResult {
	program, diags := parser.ParseString(src)
	return CheckResult{
		Name:         name,
		Program:      program,
		Rendered:     program.String(),
		Diagnostics:  diags,
		Placeholders: len(ast.Placeholders(program)),
	}
}

// CheckManifest loads and checks every source listed in m, in manifest
// order. When names is non-empty only those sources are checked. Read
// failures and parse diagnostics are folded into the returned error; the
// results for sources that could be read are always returned.
func (l *Loader) CheckManifest(m *Manifest, names []string) ([]CheckResult, error) {
	if len(names) == 0 {
		names = m.SourceOrder
	}
	var (
		results []CheckResult
		errs    *multierror.Error
	)
	for _, name := range names {
		path, ok := m.SourcePath(name)
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("source %q is not declared in %s", name, m.Path))
			continue
		}
		src, err := l.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("source %q: %w", name, err))
			continue
		}
		result := Check(name, src)
		l.log.Debugf("checked %s: %d diagnostics", name, len(result.Diagnostics))
		if err := result.Diagnostics.Err(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("source %q: %w", name, err))
		}
		results = append(results, result)
	}
	return results, errs.ErrorOrNil()
}
