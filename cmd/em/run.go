/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package main

import (
	"fmt"

	"github.com/cowdogmoo/emrocks/config"
	"github.com/cowdogmoo/emrocks/runner"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var gulpfile string
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Build and serve your app, rebuilding on file changes",
		Long: `Run the gulp serve task of the current project.

The project is found by walking up from the working directory to the first
gulpfile.js, unless --gulpfile or runner.gulpfile names one. The task name
is runner.tasks.serve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, root, gulpfile, func(cfg *config.Config) string { return cfg.Runner.Tasks.Serve })
		},
	}
	cmd.Flags().StringVar(&gulpfile, "gulpfile", "", "Gulpfile to use instead of searching for gulpfile.js")
	return cmd
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	var gulpfile string
	cmd := &cobra.Command{
		Use:     "build",
		Aliases: []string{"b"},
		Short:   "Release your app into the build output path",
		Long: `Run the gulp build task of the current project.

The project is found by walking up from the working directory to the first
gulpfile.js, unless --gulpfile or runner.gulpfile names one. The task name
is runner.tasks.build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, root, gulpfile, func(cfg *config.Config) string { return cfg.Runner.Tasks.Build })
		},
	}
	cmd.Flags().StringVar(&gulpfile, "gulpfile", "", "Gulpfile to use instead of searching for gulpfile.js")
	return cmd
}

func runTask(cmd *cobra.Command, root *rootOptions, gulpfile string, task func(*config.Config) string) error {
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	cwd, err := root.workingDir()
	if err != nil {
		return err
	}

	if gulpfile == "" {
		gulpfile = cfg.Runner.Gulpfile
	}

	r := runner.New(cfg.Runner.GulpBin).
		WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()).
		WithGulpfile(gulpfile)
	return r.Run(cmd.Context(), cwd, task(cfg))
}
