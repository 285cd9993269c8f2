package inspect

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/krogueintel/batchbuffer-logger-all/internal/blackbox"
)

// recordFilter wraps a compiled CEL program and provides a common evaluator
// for the dump command. When disabled, Eval always returns true.
type recordFilter struct {
	prog    cel.Program
	enabled bool
}

func newRecordFilter(expr string) (recordFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return recordFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("name", cel.StringType),
		// Payload size in bytes; payload contents stay opaque
		cel.Variable("size", cel.IntType),
		cel.Variable("depth", cel.IntType),
		cel.Variable("index", cel.IntType),
		cel.Variable("file", cel.StringType),
	)
	if err != nil {
		return recordFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return recordFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return recordFilter{}, iss2.Err()
	}
	if checked.OutputType() != cel.BoolType {
		return recordFilter{}, fmt.Errorf("filter expression must evaluate to a boolean, got %s", checked.OutputType())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return recordFilter{}, err
	}
	return recordFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against one decoded record. When
// disabled, returns true.
func (f recordFilter) Eval(file string, index, depth int, rec blackbox.Record) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"kind":  rec.Kind.String(),
		"name":  string(rec.Name),
		"size":  int64(len(rec.Value)),
		"depth": int64(depth),
		"index": int64(index),
		"file":  file,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
