//go:build mage

package main

import (
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
)

const binDir = "bin"

type Build mg.Namespace

func binary(name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(binDir, name)
}

func goBuild(name string) error {
	_, err := executeCmd("go", withArgs("build", "-o", binary(name), "./cmd/"+name), withStream())
	return err
}

// Builds the ImGui scene editor.
func (Build) Editor() error {
	return goBuild("editor")
}

// Builds the standalone SDL viewer.
func (Build) Viewer() error {
	return goBuild("viewer")
}

// Builds the headless scene CLI.
func (Build) Scenetool() error {
	return goBuild("scenetool")
}

// Builds every binary into bin/.
func (Build) All() {
	mg.Deps(Build.Editor, Build.Viewer, Build.Scenetool)
}
