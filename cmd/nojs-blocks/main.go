// Command nojs-blocks renders view templates to static HTML and checks
// templates for syntax errors.
//
//	nojs-blocks render -in page.gt.html [-data model.json] [-out page.html]
//	nojs-blocks check [-dir .]
//
// render registers every other template in the input's directory under its
// file name, so <view name="card"/> resolves to card.gt.html.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vcrobe/nojs-blocks/console"
	"github.com/vcrobe/nojs-blocks/markup"
	"github.com/vcrobe/nojs-blocks/runtime"
)

var stderr io.Writer = os.Stderr

func logf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, errOut io.Writer) int {
	stderr = errOut
	console.SetOutput(errOut)
	if len(args) == 0 {
		usage()
		return 2
	}

	var err error
	switch args[0] {
	case "render":
		err = renderCmd(args[1:], stdout)
	case "check":
		err = checkCmd(args[1:], stdout)
	case "-h", "-help", "--help", "help":
		usage()
		return 0
	default:
		logf("unknown command %q", args[0])
		usage()
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logf("Error: %v", err)
		return 1
	}
	return 0
}

func usage() {
	logf("usage:\n  nojs-blocks render -in page.gt.html [-data model.json] [-out page.html] [-log level]\n  nojs-blocks check [-dir .] [-log level]")
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	lvl := fs.String("log", "warn", "Minimum log level: debug, info, warn, error or off.")
	return fs, lvl
}

func applyLevel(name string) error {
	l, err := console.ParseLevel(name)
	if err != nil {
		return err
	}
	console.SetLevel(l)
	return nil
}

func renderCmd(args []string, stdout io.Writer) error {
	fs, lvl := newFlagSet("render")
	inPath := fs.String("in", "", "The path to the input template.")
	dataPath := fs.String("data", "", "A JSON file holding the model.")
	outPath := fs.String("out", "", "The output HTML file. Defaults to stdout.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyLevel(*lvl); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("the -in flag is required")
	}

	reg := runtime.NewRegistry()
	siblings, err := findTemplates(filepath.Dir(*inPath))
	if err != nil {
		return err
	}
	for _, t := range siblings {
		if filepath.Clean(t.Path) == filepath.Clean(*inPath) {
			continue
		}
		if err := registerFile(reg, t); err != nil {
			return err
		}
	}

	src, err := os.ReadFile(*inPath)
	if err != nil {
		return err
	}
	root, err := markup.Parse(string(src), markup.Options{Name: *inPath})
	if err != nil {
		return err
	}
	model, err := loadModel(*dataPath)
	if err != nil {
		return err
	}

	v := runtime.New(model, root, runtime.WithRegistry(reg), runtime.WithName(*inPath))
	v.Start(nil)
	defer v.Dispose()
	out := v.HTML() + "\n"

	if *outPath == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Rendered %s to %s\n", *inPath, *outPath)
	return nil
}

func registerFile(reg *runtime.Registry, t template) error {
	src, err := os.ReadFile(t.Path)
	if err != nil {
		return err
	}
	return reg.RegisterMarkup(t.Name, string(src), nil)
}

func loadModel(path string) (map[string]any, error) {
	model := map[string]any{}
	if path == "" {
		return model, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &model); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return model, nil
}

func checkCmd(args []string, stdout io.Writer) error {
	fs, lvl := newFlagSet("check")
	dir := fs.String("dir", ".", "The module directory to scan.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyLevel(*lvl); err != nil {
		return err
	}

	found, err := discoverPackageTemplates(*dir)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		logf("warning: no templates (*%s) were found in any Go package", templateExt)
		return nil
	}
	return checkTemplates(found, stdout)
}

func checkTemplates(found []template, stdout io.Writer) error {
	failed := 0
	for _, t := range found {
		src, err := os.ReadFile(t.Path)
		if err == nil {
			_, err = markup.Parse(string(src), markup.Options{Name: t.Path})
		}
		if err != nil {
			failed++
			logf("%v", err)
			continue
		}
		fmt.Fprintf(stdout, "ok  %s\n", t.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates failed", failed, len(found))
	}
	return nil
}
