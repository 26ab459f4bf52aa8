package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nyanlang/Nyanlang/nyan"
)

func TestHelloWorld(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hello.bf")
	data, err := os.ReadFile("testdata/hello.bf")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", src, err)
	}
	nyanPath, err := nyan.TranslateBF(src, "")
	if err != nil {
		t.Fatalf("TranslateBF: %v", err)
	}
	out := &bytes.Buffer{}
	if err := nyan.RunFile(nyanPath, false, strings.NewReader(""), out); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if out.String() != "Hello, World!\n" {
		t.Fatalf("stdout: got=%q, want=%q", out.String(), "Hello, World!\n")
	}
}

func TestCat(t *testing.T) {
	out := &bytes.Buffer{}
	if err := nyan.RunFile("testdata/cat.nyan", false, strings.NewReader("abc"), out); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if out.String() != "abc" {
		t.Fatalf("stdout: got=%q, want=%q", out.String(), "abc")
	}
}

func TestPingPong(t *testing.T) {
	out := &bytes.Buffer{}
	if err := nyan.RunFile("testdata/pingpong_a.nyan", false, strings.NewReader(""), out); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if out.String() != "A" {
		t.Fatalf("stdout: got=%q, want=%q", out.String(), "A")
	}
}

func TestCommentStripping(t *testing.T) {
	out := &bytes.Buffer{}
	if err := nyan.RunFile("testdata/comment_strip.nyan", false, strings.NewReader(""), out); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	got := []byte(out.String())
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("stdout: got=%v, want=[2]", got)
	}
}

func TestBuildRLE(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ten_incs.nyan")
	data, err := os.ReadFile("testdata/ten_incs.nyan")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", src, err)
	}
	outPath, err := nyan.BuildFile(src, "")
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading built binary: %v", err)
	}
	want := []byte{0x01, 0x02, 0x00, 0x00, 0x0A} // no-manifest tag + RLE body
	if !bytes.Equal(got, want) {
		t.Fatalf("built binary: got=% x, want=% x", got, want)
	}
}

// TestSourceAndBuiltBinaryProduceIdenticalOutput covers Testable Property 1
// (source/binary equivalence) and Property 6 (RLE roundtrip) together: the
// fixture's two straight-line opcode runs are long enough to get merged by
// the builder's RLE encoder, so running the built .nya exercises the
// binary decoder's run-expansion path while running the .nyan source
// exercises the token-by-token path, and both must agree on stdout.
func TestSourceAndBuiltBinaryProduceIdenticalOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "build_equivalence.nyan")
	data, err := os.ReadFile("testdata/build_equivalence.nyan")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", src, err)
	}

	sourceOut := &bytes.Buffer{}
	if err := nyan.RunFile(src, false, strings.NewReader(""), sourceOut); err != nil {
		t.Fatalf("RunFile(source): %v", err)
	}

	builtPath, err := nyan.BuildFile(src, "")
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	binaryOut := &bytes.Buffer{}
	if err := nyan.RunFile(builtPath, false, strings.NewReader(""), binaryOut); err != nil {
		t.Fatalf("RunFile(binary): %v", err)
	}

	want := []byte{5, 3}
	if !bytes.Equal([]byte(sourceOut.String()), want) {
		t.Fatalf("source stdout: got=%v, want=%v", []byte(sourceOut.String()), want)
	}
	if sourceOut.String() != binaryOut.String() {
		t.Fatalf("source/binary stdout mismatch: source=%v, binary=%v",
			[]byte(sourceOut.String()), []byte(binaryOut.String()))
	}
}

func TestUnmatchedBracket(t *testing.T) {
	err := nyan.RunFile("testdata/unmatched.nyan", false, strings.NewReader(""), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an UnmatchedBracket error, got nil")
	}
	if ne, ok := err.(*nyan.NyanError); !ok || ne.Kind != nyan.ErrUnmatchedBracket {
		t.Fatalf("got error %v, want Kind=ErrUnmatchedBracket", err)
	}
}
