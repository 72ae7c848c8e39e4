// seehuhn.de/go/retype - regenerate PDF content streams after text replacement
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/language"

	"seehuhn.de/go/retype"
	"seehuhn.de/go/retype/ir"
	"seehuhn.de/go/retype/isolate"
	"seehuhn.de/go/retype/tools/internal/profile"
)

var (
	outDirArg     = flag.String("o", "", "output `directory` (default: next to the input file)")
	workDirArg    = flag.String("workdir", "", "`directory` for temporary files")
	langArg       = flag.String("lang", "und", "BCP 47 `tag` of the replacement language")
	debugArg      = flag.Bool("debug", false, "mark the output file name as a debug build")
	skipFormsArg  = flag.Bool("skip-forms", false, "do not re-render form XObject invocations")
	skipCleanArg  = flag.Bool("skip-clean", false, "skip font subsetting and document cleanup")
	noMonoArg     = flag.Bool("no-mono", false, "process the document without writing an output file")
	subsetTimeArg = flag.Duration("subset-timeout", 0, "time limit for font subsetting")
	saveTimeArg   = flag.Duration("save-timeout", 0, "time limit for saving the document")
	quietArg      = flag.Bool("q", false, "suppress progress output")
	passwdArg     = flag.String("p", "", "PDF password")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile    = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	isolate.Init()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "retype - regenerate PDF content streams after text replacement\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", version("retype"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  retype [options] <file.pdf> <tree.json>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  file.pdf    the original PDF file\n")
		fmt.Fprintf(os.Stderr, "  tree.json   the document tree with the replacement text\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  retype -lang de document.pdf document.json\n")
		fmt.Fprintf(os.Stderr, "  retype -p secret -o out/ encrypted.pdf tree.json\n")
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(pdfName, treeName string) error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	lang, err := language.Parse(*langArg)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", *langArg, err)
	}

	treeData, err := os.ReadFile(treeName)
	if err != nil {
		return err
	}
	doc := &ir.Document{}
	err = json.Unmarshal(treeData, doc)
	if err != nil {
		return fmt.Errorf("%s: %w", treeName, err)
	}

	opt := &retype.Options{
		Lang:           lang,
		OutDir:         *outDirArg,
		WorkDir:        *workDirArg,
		Debug:          *debugArg,
		SkipFormRender: *skipFormsArg,
		SkipClean:      *skipCleanArg,
		NoMono:         *noMonoArg,
		SubsetTimeout:  *subsetTimeArg,
		SaveTimeout:    *saveTimeArg,
		ReadPassword:   readPassword,
	}
	if !*quietArg {
		opt.Progress = showProgress
	}

	start := time.Now()
	res, err := retype.NewCreater(pdfName, doc, opt).Write()
	if err != nil {
		return err
	}

	if !*quietArg {
		stats := res.Stats
		fmt.Fprintf(os.Stderr, "%d pages, %d units written, %d suppressed (%.1fs)\n",
			stats.PagesWritten, stats.UnitsEmitted, stats.UnitsSuppressed,
			time.Since(start).Seconds())
		if res.MonoPath != "" {
			fmt.Println(res.MonoPath)
		}
	}
	return nil
}

func showProgress(stage string, done, total int) {
	if total > 1 && done > 0 && done < total {
		return
	}
	fmt.Fprintf(os.Stderr, "%s ... %d/%d\n", stage, done, total)
}

// version returns a short version string for the usage text, e.g.
// "retype (seehuhn.de/go/retype v0.1.0)".
func version(toolName string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return toolName
	}
	v := info.Main.Version
	if v != "" && v != "(devel)" {
		return toolName + " (" + info.Main.Path + " " + v + ")"
	}

	// fall back to the VCS revision
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return toolName
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if dirty {
		rev += "+dirty"
	}
	return toolName + " (" + info.Main.Path + " " + rev + ")"
}

func readPassword(_ []byte, try int) string {
	if *passwdArg != "" && try == 0 {
		return *passwdArg
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ""
	}
	fmt.Fprint(os.Stderr, "password: ")
	passwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return ""
	}
	return string(passwd)
}
