package filter

// Subject is something a filter can be evaluated against
type Subject interface {
	// Label identifies the subject in output and errors
	Label() string

	// Env returns the variables visible to expressions
	Env() map[string]any
}

// Filter defines the basic interface for filters
type Filter interface {
	// Evaluate checks if a subject matches the filter criteria
	Evaluate(subject Subject) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Check evaluates the filter and reports evaluation failures
	Check(subject Subject) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
