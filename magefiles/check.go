//go:build mage

package main

import "github.com/magefile/mage/mg"

// Runs the unit tests.
func Test() error {
	args := []string{"test", "./..."}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}

// Runs go vet over the module.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Vets, tests and builds everything.
func All() {
	mg.SerialDeps(Vet, Test, Build.All)
}
