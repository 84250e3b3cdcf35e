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
	"path/filepath"

	"github.com/cowdogmoo/emrocks/cli"
	"github.com/cowdogmoo/emrocks/config"
	emgit "github.com/cowdogmoo/emrocks/git"
	"github.com/cowdogmoo/emrocks/templates"
	"github.com/spf13/cobra"
)

func newNewCmd(root *rootOptions) *cobra.Command {
	var opts cli.NewCLIOptions

	cmd := &cobra.Command{
		Use:   "new <dirName>",
		Short: "Create a new Ember application at dirName",
		Long: `Create a new Ember application from a boilerplate repository.

The boilerplate is fetched into the em cache, copied to dirName without its
git history and personalized with the application name. Unless --test is
set, em then initializes a git repository with an initial commit and
installs the npm and bower packages.`,
		Example: `  # Scaffold a new application
  em new my-app && cd my-app

  # Use another boilerplate
  em new my-app --path github.com/mattma/Ember-Rocks-Template-Basic

  # Pin the boilerplate to a tag
  em new my-app --version v1.2.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.DirName = args[0]
			}
			return runNew(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Path, "path", "p", "", "Boilerplate git URL (ex: github.com/mattma/Ember-Rocks-Template-Basic)")
	cmd.Flags().BoolVarP(&opts.Test, "test", "T", false, "Test mode: skip git init and npm/bower installs")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Boilerplate tag or branch")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "Output format (table, json)")

	return cmd
}

func runNew(cmd *cobra.Command, root *rootOptions, opts cli.NewCLIOptions) error {
	if err := cli.NewValidator().ValidateNewOptions(opts); err != nil {
		return err
	}

	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	url := opts.Path
	if url == "" {
		url = cfg.Template.URL
	}
	ref := opts.Version
	if ref == "" {
		ref = cfg.Template.Version
	}

	dir := opts.DirName
	if !filepath.IsAbs(dir) {
		cwd, err := root.workingDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(cwd, dir)
	}

	cacheDir, err := config.GetCacheDir(cfg.Template.CacheDir, "templates")
	if err != nil {
		return err
	}
	versions, err := templates.NewVersionManager(version)
	if err != nil {
		return err
	}

	fetcher := templates.NewGitOperations(cacheDir).WithAuth(cfg.Template.Token, cfg.Template.SSHKeyFile)
	installer := templates.NewInstaller(cfg.Install.NPM, cfg.Install.Bower)
	creator := templates.NewCreator(fetcher, versions, emgit.NewConfigReader(), installer)

	result, err := creator.Create(cmd.Context(), templates.CreateOptions{
		Dir:      dir,
		URL:      url,
		Version:  ref,
		TestMode: opts.Test,
	})
	if err != nil {
		return err
	}

	return cli.NewOutputFormatter(opts.Format, cmd.OutOrStdout()).DisplayCreateResult(result)
}
