// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleSet records which module path is the program's main module, the
// closed-world compiler's analogue of spec §4.5's "own module" used by
// TableEmitter to split defined-vs-imported table entries. Its
// IsMainModule method, completing dispatch.ModuleResolver, lives in
// driver.go next to the rest of the resolver it's paired with.
type ModuleSet struct {
	mainPath string
}

// resolveMainModule reads go.mod under dir (the directory the build was
// invoked from) to determine the main module path, the same file the
// teacher's gopls/release tooling validates before tagging a release.
func resolveMainModule(dir string) (string, error) {
	path := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("driver: reading %s: %w", path, err)
	}
	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		return "", fmt.Errorf("driver: parsing %s: %w", path, err)
	}
	if mf.Module == nil {
		return "", fmt.Errorf("driver: %s has no module directive", path)
	}
	return mf.Module.Mod.Path, nil
}
