package nyan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// BuildFile lowers a .nyan source file (and its .mouse manifest, if any)
// into the compact binary form. outPath defaults to <stem>.nya and, if
// given explicitly, must end in .nya. Refuses to clobber an existing file
// or write into a nonexistent directory, mirroring the translator's own
// overwrite refusal in spirit.
func BuildFile(srcPath, outPath string) (string, error) {
	tokens, err := parseSource(srcPath)
	if err != nil {
		return "", err
	}
	if err := checkLoopBalance(tokens.ops); err != nil {
		return "", err
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".nya"
	} else if filepath.Ext(outPath) != ".nya" {
		return "", newError(ErrBadExtension, "output path %s must end in .nya", outPath)
	}
	if _, err := os.Stat(outPath); err == nil {
		return "", newError(ErrOutputExists, "%s already exists", outPath)
	}
	if _, err := os.Stat(filepath.Dir(outPath)); err != nil {
		return "", wrapError(ErrOutputMissingDir, err, "directory for %s", outPath)
	}
	entries, err := loadSourceManifest(srcPath)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if len(entries) > 0 {
		buf.WriteByte(magicManifest)
		encodeManifestHeader(&buf, entries)
	} else {
		buf.WriteByte(magicPlain)
	}
	encodeOpcodes(&buf, tokens.ops)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", wrapError(ErrOutputMissingDir, err, "writing %s", outPath)
	}
	return outPath, nil
}

func checkLoopBalance(ops []Opcode) error {
	var opens, closes int
	for _, op := range ops {
		switch op {
		case OpLoopStart:
			opens++
		case OpLoopEnd:
			closes++
		}
	}
	if opens != closes {
		return newError(ErrUnmatchedBracket, "unequal loop token counts: %d '~' vs %d '-'", opens, closes)
	}
	return nil
}

// encodeOpcodes merges adjacent identical compressible opcodes into a
// single opcode+3-byte-count pair; every other opcode is emitted as one
// byte, matching the binary format's run-length scheme exactly.
func encodeOpcodes(buf *bytes.Buffer, ops []Opcode) {
	i := 0
	for i < len(ops) {
		op := ops[i]
		if op.isCompressible() {
			j := i + 1
			for j < len(ops) && ops[j] == op {
				j++
			}
			count := j - i
			buf.WriteByte(byte(op))
			buf.WriteByte(byte(count >> 16))
			buf.WriteByte(byte(count >> 8))
			buf.WriteByte(byte(count))
			i = j
		} else {
			buf.WriteByte(byte(op))
			i++
		}
	}
}

// encodeManifestHeader writes the 2-byte count, its filler byte, and each
// entry's local/remote ports (each padded with an extra filler byte,
// preserved bit-for-bit per the resolved wire-layout design note).
func encodeManifestHeader(buf *bytes.Buffer, entries []ManifestEntry) {
	count := uint16(len(entries))
	buf.WriteByte(byte(count >> 8))
	buf.WriteByte(byte(count))
	buf.WriteByte(0)
	for _, e := range entries {
		local := uint16(e.LocalPort)
		buf.WriteByte(byte(local >> 8))
		buf.WriteByte(byte(local))
		buf.WriteByte(0)
		remote := uint16(e.RemotePort)
		buf.WriteByte(byte(remote >> 8))
		buf.WriteByte(byte(remote))
		buf.WriteByte(0)
		buf.WriteString(e.Filename)
		buf.WriteByte(0x0A)
	}
}
