package logger

// Exported for white-box tests of the error chain rendering.
var (
	CauseChain  = causeChain
	FormatChain = formatChain
)
