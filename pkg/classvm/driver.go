// Package classvm wires the class-file decoder, the interpreter, and
// the bootstrap classes together into the single entry point the
// command-line surface calls.
package classvm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/nrkt/classvm/internal/bootstrap"
	"github.com/nrkt/classvm/pkg/vm"
	"github.com/sirupsen/logrus"
)

// Run loads the bootstrap classes followed by every file in
// classPaths (in order), then invokes main on the first path given —
// the entry class, per spec.md §4.9 — and returns the process exit
// code: the value returned from main, or the shutdown-status value if
// native code requested shutdown, or 1 on any startup failure (file
// open, decode, resolution).
func Run(classPaths []string, log logrus.FieldLogger) int {
	if len(classPaths) == 0 {
		log.Error("no class file given")
		return 1
	}

	machine := vm.New(log)

	sources, err := bootstrapSources()
	if err != nil {
		log.WithError(wrap(err, "building bootstrap classes")).Error("startup failed")
		return 1
	}

	userSources, files, err := openSources(classPaths)
	defer closeAll(files)
	if err != nil {
		log.WithError(wrap(err, "opening class files")).Error("startup failed")
		return 1
	}
	sources = append(sources, userSources...)

	if err := machine.LoadAll(sources); err != nil {
		log.WithError(wrap(err, "loading classes")).Error("startup failed")
		return 1
	}

	entryClass := internalName(classPaths[0])
	result, err := machine.InvokeMain(entryClass)
	if err != nil {
		log.WithError(wrap(err, "executing main")).Error("execution failed")
		return 1
	}

	if machine.ShutdownRequested() {
		return int(machine.ShutdownCode())
	}
	return int(result)
}

func bootstrapSources() ([]vm.Source, error) {
	classes, err := bootstrap.All()
	if err != nil {
		return nil, err
	}
	sources := make([]vm.Source, 0, len(classes))
	for _, c := range classes {
		sources = append(sources, vm.Source{Label: c.Label, Reader: bytes.NewReader(c.Bytes)})
	}
	return sources, nil
}

func openSources(classPaths []string) ([]vm.Source, []*os.File, error) {
	sources := make([]vm.Source, 0, len(classPaths))
	files := make([]*os.File, 0, len(classPaths))
	for _, path := range classPaths {
		f, err := os.Open(path)
		if err != nil {
			return nil, files, err
		}
		files = append(files, f)
		sources = append(sources, vm.Source{Label: path, Reader: f})
	}
	return sources, files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}

// internalName strips a directory path and ".class" suffix, giving the
// internal class name the loader indexed the file under (the class's
// own this_class entry is expected to match).
func internalName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ".class")
}
