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
	"os"
	"path/filepath"

	"github.com/cowdogmoo/emrocks/cli"
	"github.com/cowdogmoo/emrocks/config"
	"github.com/cowdogmoo/emrocks/generator"
	"github.com/cowdogmoo/emrocks/logging"
	"github.com/cowdogmoo/emrocks/project"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var opts cli.GenerateCLIOptions

	cmd := &cobra.Command{
		Use:     "generate <type:name>",
		Aliases: []string{"g"},
		Short:   "Generate a new file with ES6 support in the Ember app",
		Long: `Generate a new file at client/app/<type>s/<name>.js from a skeleton.

type is one of adapter, component, controller, helper, initializer, mixin,
model, route, serializer, template, transform, util, view, or a test type:
test (integration) and <type>-test (unit). A plural type such as routes is
accepted.

name is any string, or a '/' separated path that creates nested folders.
Component names must contain a hyphen.

route and component also generate their template unless it already exists.
Run 'em generate --list' to see every type and the files it generates.`,
		Example: `  em generate route:post
  em g controller:blog/post
  em g component:my-post
  em g route-test:post
  em g view:long/folder/name/post --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Args = args
			return runGenerate(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show the files that would be generated without writing them")
	cmd.Flags().BoolVar(&opts.List, "list", false, "List the available types")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "Output format (table, json)")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts cli.GenerateCLIOptions) error {
	if err := cli.NewValidator().ValidateGenerateOptions(opts); err != nil {
		return err
	}

	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	layout := generator.Layout{ClientDir: cfg.Project.ClientDir, AppDir: cfg.Project.AppDir}
	formatter := cli.NewOutputFormatter(opts.Format, cmd.OutOrStdout())
	if opts.List {
		return formatter.DisplayKinds(layout)
	}

	cwd, err := root.workingDir()
	if err != nil {
		return err
	}
	projectRoot, err := project.FindClientRoot(cwd, layout.ClientDir)
	if err != nil {
		return err
	}

	req, err := generator.ParseRequest(opts.Args[0])
	if err != nil {
		return err
	}
	plan, err := generator.NewPlan(req, layout)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine := generator.NewEngine(
		afero.NewBasePathFs(afero.NewOsFs(), projectRoot),
		skeletonFs(cmd, projectRoot, cfg),
	)

	var result *generator.Result
	if opts.DryRun {
		result, err = engine.DryRun(ctx, plan)
	} else {
		result, err = engine.Apply(ctx, plan)
	}
	if err != nil {
		return err
	}

	return formatter.DisplayGenerateResult(result)
}

// skeletonFs layers the project's skeleton override directory, when it
// exists, over the embedded skeletons.
func skeletonFs(cmd *cobra.Command, projectRoot string, cfg *config.Config) afero.Fs {
	dir := cfg.Generate.SkeletonDir
	if dir == "" {
		return generator.EmbeddedSkeletons()
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectRoot, dir)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return generator.EmbeddedSkeletons()
	}

	logging.DebugContext(cmd.Context(), "Using skeleton overrides from %s", dir)
	return generator.NewSkeletonFs(afero.NewOsFs(), dir)
}
