//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the editor. Extra flags come from EDITOR_FLAGS.
func (Run) Editor() error {
	fmt.Println("Run editor...")
	args := append([]string{"run", "./cmd/editor"}, splitFlags(os.Getenv("EDITOR_FLAGS"))...)
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}

// Runs the viewer on the scene named by SCENE (default test.json).
func (Run) Viewer() error {
	name := os.Getenv("SCENE")
	if name == "" {
		name = "test.json"
	}
	_, err := executeCmd("go", withArgs("run", "./cmd/viewer", "--scene", name), withStream())
	return err
}

// Removes build output.
func Clean() error {
	fmt.Println("Removing", binDir)
	return os.RemoveAll(binDir)
}
