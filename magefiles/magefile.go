//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	goutils "github.com/l50/goutils"

	// mage utility functions
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func init() {
	os.Setenv("GO111MODULE", "on")
}

// InstallDeps Installs go dependencies
func InstallDeps() error {
	fmt.Println(color.YellowString("Installing dependencies."))

	if err := goutils.Tidy(); err != nil {
		return errors.New(color.RedString(
			"failed to install dependencies: %v", err))
	}

	if err := goutils.InstallGoPCDeps(); err != nil {
		return errors.New(color.RedString(
			"failed to install pre-commit dependencies: %v", err))
	}

	return nil
}

// InstallPreCommitHooks Installs pre-commit hooks locally
func InstallPreCommitHooks() error {
	mg.Deps(InstallDeps)

	fmt.Println(color.YellowString("Installing pre-commit hooks."))
	return goutils.InstallPCHooks()
}

// RunPreCommit runs all pre-commit hooks locally
func RunPreCommit() error {
	mg.Deps(InstallDeps)

	fmt.Println(color.YellowString("Updating pre-commit hooks."))
	if err := goutils.UpdatePCHooks(); err != nil {
		return err
	}

	fmt.Println(color.YellowString(
		"Clearing the pre-commit cache to ensure we have a fresh start."))
	if err := goutils.ClearPCCache(); err != nil {
		return err
	}

	fmt.Println(color.YellowString("Running all pre-commit hooks locally."))
	return goutils.RunPCHooks()
}

// Build compiles bin/em for GOOS/GOARCH, defaulting to the current system.
// The version is taken from `git describe`, or "dev" outside a checkout.
//
// Example usage:
//
// ```go
// GOOS=darwin GOARCH=arm64 mage build
// ```
func Build() error {
	goos := envOr("GOOS", runtime.GOOS)
	goarch := envOr("GOARCH", runtime.GOARCH)

	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(version) == "" {
		version = "dev"
	}

	out := filepath.Join("bin", "em")
	if goos == "windows" {
		out += ".exe"
	}

	fmt.Println(color.YellowString("Compiling em %s for %s/%s.", version, goos, goarch))
	env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
	ldflags := fmt.Sprintf("-s -w -X main.version=%s", strings.TrimSpace(version))
	if err := sh.RunWithV(env, "go", "build", "-ldflags", ldflags, "-o", out, "./cmd/em"); err != nil {
		return errors.New(color.RedString("failed to compile em: %v", err))
	}
	return nil
}

// RunTests executes all unit tests with the race detector.
func RunTests() error {
	fmt.Println(color.YellowString("Running unit tests."))
	if err := sh.RunV("go", "test", "-race", "-count=1", "./..."); err != nil {
		return fmt.Errorf("failed to run unit tests: %v", err)
	}
	return nil
}

// GenerateSchemas writes the em.yaml manifest and config JSON schemas to
// schema/.
func GenerateSchemas() error {
	fmt.Println(color.YellowString("Generating JSON schemas."))
	return sh.RunV("go", "run", "./cmd/schema-gen", "-o", "schema")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
