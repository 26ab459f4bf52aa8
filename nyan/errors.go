package nyan

import "fmt"

// ErrorKind classifies a fatal runtime or build-time error. The CLI does not
// branch on it: every error exits with code 1 (see main in main.go), and the
// kind reaches the user as the prefix of the printed message.
type ErrorKind int

const (
	ErrFileNotFound ErrorKind = iota
	ErrBadExtension
	ErrParseInvalidChar
	ErrUnmatchedBracket
	ErrManifestSyntax
	ErrPortConflict
	ErrPortUnbound
	ErrBadMagic
	ErrOutputExists
	ErrOutputMissingDir
	ErrInvalidOpcode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrFileNotFound:
		return "FileNotFound"
	case ErrBadExtension:
		return "BadExtension"
	case ErrParseInvalidChar:
		return "ParseInvalidChar"
	case ErrUnmatchedBracket:
		return "UnmatchedBracket"
	case ErrManifestSyntax:
		return "ManifestSyntax"
	case ErrPortConflict:
		return "PortConflict"
	case ErrPortUnbound:
		return "PortUnbound"
	case ErrBadMagic:
		return "BadMagic"
	case ErrOutputExists:
		return "OutputExists"
	case ErrOutputMissingDir:
		return "OutputMissingDir"
	case ErrInvalidOpcode:
		return "InvalidOpcode"
	default:
		return "Unknown"
	}
}

// NyanError is the only error type the core raises. Every fatal condition
// named in the error kind table carries its Kind through unmodified to the
// CLI boundary.
type NyanError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *NyanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *NyanError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, format string, args ...interface{}) *NyanError {
	return &NyanError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *NyanError {
	return &NyanError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
