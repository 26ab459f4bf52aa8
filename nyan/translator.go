package nyan

import (
	"os"
	"path/filepath"
	"strings"
)

var bfMapping = map[rune]rune{
	'<': '!',
	'>': '?',
	'+': '냥',
	'-': '냐',
	'[': '~',
	']': '-',
}

var bfPassthrough = map[rune]bool{
	',': true, '.': true, ' ': true, '\n': true,
}

// TranslateBF lowers a Brainfuck-like source file into Nyanlang source.
// Characters outside the BF alphabet are wrapped in a quoted comment, so
// they are kept in the output file and the parser's comment-stripping pass
// removes them instead of rejecting them; characters inside it are
// replaced one for one.
func TranslateBF(srcPath, outPath string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", wrapError(ErrFileNotFound, err, "reading %s", srcPath)
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".nyan"
	}
	if _, err := os.Stat(outPath); err == nil {
		return "", newError(ErrOutputExists, "%s already exists", outPath)
	}
	var b strings.Builder
	for _, r := range string(data) {
		if mapped, ok := bfMapping[r]; ok {
			b.WriteRune(mapped)
		} else if bfPassthrough[r] {
			b.WriteRune(r)
		} else {
			b.WriteByte('"')
			b.WriteRune(r)
			b.WriteByte('"')
		}
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return "", wrapError(ErrOutputMissingDir, err, "writing %s", outPath)
	}
	return outPath, nil
}
