package whatwgurl

import "strconv"

// errors.go implements spec.md §7: a recoverable validation-error channel
// (reported to a sink, parsing continues) and a fatal failure sentinel
// (parsing stops, the adapter surfaces a plain error).
//
// The teacher (urlparser.go) returns bare `error` from every exported
// function with no custom error type hierarchy; we follow that idiom.
// `parseError` below is the only custom error type in the module, and it
// exists solely to let callers recover the offending input string, which
// spec.md §7 says a "caller-meaningful message" must contain.

// ValidationErrorSink receives every validation-error message produced
// during a parse. Messages are prefixed with "Validation Error: " per
// spec.md §6. A nil sink discards all messages.
type ValidationErrorSink func(message string)

// globalValidationErrorSink is the process-wide default sink (spec.md §9
// "Global validation sink"). Prefer injecting a sink through ParserOption
// for new code; this exists for the "global setter" compatibility entry
// point the spec explicitly allows.
var globalValidationErrorSink ValidationErrorSink

// SetValidationErrorSink installs the process-wide default validation
// error sink. Pass nil to discard all messages (the default).
func SetValidationErrorSink(sink ValidationErrorSink) {
	globalValidationErrorSink = sink
}

func reportValidationError(sink ValidationErrorSink, message string) {
	if sink == nil {
		sink = globalValidationErrorSink
	}
	if sink == nil {
		return
	}
	sink("Validation Error: " + message)
}

// parseError is returned when the basic URL parser hits a "return
// failure" branch. It carries the offending input so the adapter's error
// message stays caller-meaningful, per spec.md §7.
type parseError struct {
	op    string
	input string
}

func (e *parseError) Error() string {
	return e.op + ": " + strconv.Quote(e.input)
}

func newParseError(op, input string) error {
	return &parseError{op: op, input: input}
}
