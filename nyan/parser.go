package nyan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var quotedComment = regexp.MustCompile(`"(?:\\"|[^"])*"`)

var whitespace = strings.NewReplacer("\n", "", "\r", "", " ", "", "\t", "")

// sourceTokens implements Fetcher over a parsed token slice. The sentinel
// (running off the end) is handled by the caller checking cursor >= Len, so
// no explicit sentinel token is stored.
type sourceTokens struct {
	ops []Opcode
}

func (s *sourceTokens) Len() int64 {
	return int64(len(s.ops))
}

func (s *sourceTokens) Fetch(cursor int64) (Instruction, error) {
	if cursor < 0 || cursor >= s.Len() {
		return Instruction{}, newError(ErrInvalidOpcode, "fetch out of range at %d", cursor)
	}
	return Instruction{Op: s.ops[cursor], Count: 1, Next: 1}, nil
}

// parseSource reads a .nyan file, strips whitespace then quoted comments
// (in that order, matching the original interpreter's parse_program), and
// tokenizes the remainder against the fixed alphabet.
func parseSource(path string) (*sourceTokens, error) {
	if filepath.Ext(path) != ".nyan" {
		return nil, newError(ErrBadExtension, "%s is not a .nyan file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(ErrFileNotFound, err, "reading %s", path)
	}
	stripped := whitespace.Replace(string(data))
	stripped = quotedComment.ReplaceAllString(stripped, "")
	ops := make([]Opcode, 0, len(stripped))
	for _, r := range stripped {
		op, ok := sourceAlphabet[r]
		if !ok {
			return nil, newError(ErrParseInvalidChar, "disallowed character %q in %s", r, path)
		}
		ops = append(ops, op)
	}
	return &sourceTokens{ops: ops}, nil
}
