package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression  string
	program     *vm.Program
	helperFuncs map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *programCache
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

	// Check cache if enabled
	if c.cache != nil {
		if filter, ok := c.cache.Get(expression); ok {
			return filter, nil
		}
	}

	// Readings are only present when the module reports them, so variables
	// are resolved at run time.
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
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
		expression:  expression,
		program:     program,
		helperFuncs: c.helperFuncs,
	}

	// Cache if enabled
	if c.cache != nil {
		c.cache.Put(filter)
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
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a subject. A failed evaluation,
// such as comparing a reading the module does not report, is a non-match.
func (f *exprFilter) Evaluate(subject Subject) bool {
	ok, err := f.Check(subject)
	return err == nil && ok
}

// Check evaluates the filter against a subject
func (f *exprFilter) Check(subject Subject) (bool, error) {
	vars := subject.Env()
	env := make(map[string]any, len(f.helperFuncs)+len(vars)+1)
	maps.Copy(env, f.helperFuncs)
	maps.Copy(env, vars)
	env["has"] = func(name string) bool {
		v, ok := vars[name]
		return ok && v != nil
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Subject:    subject.Label(),
			Err:        err,
		}
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// has is replaced per subject at run time
	funcs["has"] = func(string) bool { return false }

	// Time helpers
	funcs["minutesSince"] = func(t time.Time) int {
		return int(time.Since(t).Minutes())
	}
	funcs["hoursSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours())
	}
	funcs["minutesAgo"] = func(minutes int) time.Time {
		return time.Now().Add(-time.Duration(minutes) * time.Minute)
	}
	funcs["hoursAgo"] = func(hours int) time.Time {
		return time.Now().Add(-time.Duration(hours) * time.Hour)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}

	// String helpers
	funcs["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	// Reading helpers
	funcs["fahrenheit"] = func(celsius float64) float64 {
		return celsius*9/5 + 32
	}
	funcs["between"] = func(v, lo, hi float64) bool {
		return v >= lo && v <= hi
	}

	// Current time
	funcs["now"] = time.Now

	return funcs
}
