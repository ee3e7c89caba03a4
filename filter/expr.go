package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// WithClock replaces time.Now in the date helpers
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		c.now = now
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 16),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	defaults := createHelperFunctions(c.now)
	for name, fn := range defaults {
		if _, custom := c.helperFuncs[name]; !custom {
			c.helperFuncs[name] = fn
		}
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	now         func() time.Time
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if filter, ok := c.cache.Get(expression); ok {
			return filter, nil
		}
	}

	env := recordEnvironment(Record{}, c.helperFuncs)
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(), // raw JSON keys under Data are not known up front
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate runs the filter against one record
func (f *exprFilter) Evaluate(record Record) (bool, error) {
	result, err := expr.Run(f.program, recordEnvironment(record, f.helpers))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Record:     record.String(),
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// AsBool at compile time guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the record-independent helpers
func createHelperFunctions(now func() time.Time) map[string]any {
	return map[string]any{
		"yearsAgo": func(years int) int {
			return now().Year() - years
		},
		"parseDate": func(date string) time.Time {
			t, _ := time.Parse(time.DateOnly, date)
			return t
		},
		"daysSince": func(date string) int {
			t, err := time.Parse(time.DateOnly, date)
			if err != nil {
				return -1
			}
			return int(now().Sub(t).Hours() / 24)
		},
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"now":   now,
	}
}

// recordEnvironment exposes the record fields and per-record helpers next to
// the shared helper functions
func recordEnvironment(record Record, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+24)
	maps.Copy(env, helpers)

	env["Record"] = record
	env["Kind"] = record.Kind
	env["ID"] = record.ID
	env["Title"] = record.Title
	env["OriginalTitle"] = record.OriginalTitle
	env["Overview"] = record.Overview
	env["ReleaseDate"] = record.ReleaseDate
	env["Year"] = record.Year
	env["Popularity"] = record.Popularity
	env["Rating"] = record.Rating
	env["Votes"] = record.Votes
	env["Adult"] = record.Adult
	env["Language"] = record.Language
	env["GenreIDs"] = record.GenreIDs
	env["KnownForDepartment"] = record.KnownForDept
	env["Data"] = record.Data

	env["hasGenre"] = createHasGenreFunc(record.GenreIDs)
	env["isMovie"] = func() bool { return record.Kind == "movie" }
	env["isShow"] = func() bool { return record.Kind == "tv" }
	env["isPerson"] = func() bool { return record.Kind == "person" }
	env["released"] = func() bool { return record.ReleaseDate != "" }

	return env
}

func createHasGenreFunc(ids []int) func(int) bool {
	return func(id int) bool {
		return slices.Contains(ids, id)
	}
}
