package validate

// Field is one {value, field, validator, message} check.
type Field struct {
	Value   string
	Name    string
	Valid   func(string) bool
	Message string
}

// Result is the outcome of running a list of Field checks.
type Result struct {
	OK     bool
	Errors []string
}

// Run evaluates every check in order and collects ALL failure messages.
// Order of Errors matches the order of the given checks.
func Run(checks []Field) Result {
	var errs []string
	for _, c := range checks {
		if c.Valid == nil || !c.Valid(c.Value) {
			errs = append(errs, c.Message)
		}
	}
	return Result{OK: len(errs) == 0, Errors: errs}
}
