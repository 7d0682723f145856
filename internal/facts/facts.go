// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package facts loads the table of New Year facts from a Starlark file.
//
// The file must define a global named facts holding a non-empty list of
// strings:
//
//	facts = [
//	    "🎄 Russia celebrates the New Year on January 1 since 1700.",
//	    "🌍 Kiribati is the first country to greet the New Year.",
//	]
//
// Any Starlark may be used to build the list. Output of print goes to the
// provided logger.
package facts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.astrophena.name/newyearbot/internal/logger"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ErrNoFacts is returned when the file doesn't define a usable facts list.
var ErrNoFacts = errors.New("facts must be defined and be a non-empty list of strings")

// LoadFile reads the Starlark file at path and returns the facts it defines.
func LoadFile(path string, logf logger.Logf) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(filepath.Base(path), string(b), logf)
}

// Load executes the Starlark source src, naming it name in error messages,
// and returns the facts it defines.
func Load(name, src string, logf logger.Logf) ([]string, error) {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			if logf != nil {
				logf("%s: %s", name, msg)
			}
		},
	}

	globals, err := starlark.ExecFileOptions(
		&syntax.FileOptions{
			TopLevelControl: true,
		},
		thread,
		name,
		src,
		nil,
	)
	if err != nil {
		return nil, err
	}

	list, ok := globals["facts"].(*starlark.List)
	if !ok || list.Len() == 0 {
		return nil, ErrNoFacts
	}

	facts := make([]string, 0, list.Len())
	for i := range list.Len() {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %s", ErrNoFacts, i, list.Index(i).Type())
		}
		if s == "" {
			return nil, fmt.Errorf("%w: element %d is empty", ErrNoFacts, i)
		}
		facts = append(facts, s)
	}
	return facts, nil
}
