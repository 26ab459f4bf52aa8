package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"
	flag "github.com/spf13/pflag"

	"github.com/Nyanlang/Nyanlang/nyan"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  nyan run <file> [-d|--debug]
  nyan build <file> [-o|--out <path>]
  nyan debug <file>
  nyan translate bf <file> [-o|--out <path>]`)
}

func main() {
	defer glog.Flush()
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "build":
		err = buildCommand(os.Args[2:])
	case "debug":
		err = debugCommand(os.Args[2:])
	case "translate":
		err = translateCommand(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	debug := fs.BoolP("debug", "d", false, "render `.` as {value} and log scheduler transitions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("run: missing file argument")
	}
	return nyan.RunFile(fs.Arg(0), *debug, os.Stdin, os.Stdout)
}

func buildCommand(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	out := fs.StringP("out", "o", "", "output .nya path (defaults to <stem>.nya)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("build: missing file argument")
	}
	written, err := nyan.BuildFile(fs.Arg(0), *out)
	if err != nil {
		return err
	}
	glog.Infof("wrote %s", written)
	return nil
}

func debugCommand(args []string) error {
	fs := flag.NewFlagSet("debug", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("debug: missing file argument")
	}
	return nyan.DebugFile(fs.Arg(0), os.Stdin, os.Stdout)
}

func translateCommand(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	out := fs.StringP("out", "o", "", "output .nyan path (defaults to <stem>.nyan)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 || fs.Arg(0) != "bf" {
		return errors.New("translate: usage is `translate bf <file> [-o <out>]`")
	}
	written, err := nyan.TranslateBF(fs.Arg(1), *out)
	if err != nil {
		return err
	}
	glog.Infof("wrote %s", written)
	return nil
}
