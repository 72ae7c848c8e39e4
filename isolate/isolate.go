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

// Package isolate runs fragile file transformations in a worker
// process.
//
// Font surgery and document rewriting can crash or hang on malformed
// input.  To protect the caller, such operations run in a re-executed
// copy of the current binary: the parent writes the input to a file,
// spawns the worker, and waits with a timeout.  The worker signals
// success by creating the output file and exiting cleanly; a worker
// that is still running when the timeout expires is abandoned.
//
// Binaries which call [Run] must call [Init] at the start of main,
// before any flag parsing.
package isolate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// workerArg marks an invocation of the binary as a worker process.
const workerArg = "__pdf-worker"

// An OpFunc transforms the file at inPath into a new file at outPath.
type OpFunc func(inPath, outPath string) error

var registry = make(map[string]OpFunc)

// Register makes an operation available to worker processes.  It is
// meant to be called from init functions; registering the same name
// twice panics.
func Register(name string, fn OpFunc) {
	if _, ok := registry[name]; ok {
		panic("isolate: duplicate operation " + name)
	}
	registry[name] = fn
}

// Init intercepts worker invocations of the binary.  When the process
// was started as a worker, Init runs the requested operation and never
// returns.  Otherwise it does nothing.
func Init() {
	if len(os.Args) != 5 || os.Args[1] != workerArg {
		return
	}
	op, inPath, outPath := os.Args[2], os.Args[3], os.Args[4]

	fn, ok := registry[op]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown worker operation %q\n", op)
		os.Exit(1)
	}
	err := fn(inPath, outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

// ErrTimeout indicates that a worker did not finish within its
// allotted time.
var ErrTimeout = errors.New("worker timed out")

// Run executes a registered operation in a worker process.  Run
// returns nil if and only if the worker exited cleanly within the
// timeout and produced the output file.
func Run(op, inPath, outPath string, timeout time.Duration) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	// A stale output file from an earlier run must not masquerade as
	// a result.
	err = os.Remove(outPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	cmd := exec.Command(exe, workerArg, op, inPath, outPath)
	cmd.Stderr = os.Stderr
	err = cmd.Start()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err = <-done:
		if err != nil {
			return err
		}
	case <-time.After(timeout):
		// The worker is left running and reaped in the background;
		// any output it produces later is ignored.
		go func() { <-done }()
		return ErrTimeout
	}

	_, err = os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("worker produced no output: %w", err)
	}
	return nil
}
