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

package templates

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	emerrors "github.com/cowdogmoo/emrocks/errors"
	emgit "github.com/cowdogmoo/emrocks/git"
	"github.com/cowdogmoo/emrocks/logging"
)

// NormalizeURL turns the short `host/owner/repo` form into an HTTPS clone
// URL. SSH, HTTP(S), file URLs and local paths are returned unchanged.
//
//	NormalizeURL("github.com/mattma/Ember-Rocks-Template-Basic")
//	// "https://github.com/mattma/Ember-Rocks-Template-Basic.git"
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return raw
	case emgit.IsSSHURL(raw),
		strings.HasPrefix(raw, "https://"),
		strings.HasPrefix(raw, "http://"),
		strings.HasPrefix(raw, "file://"),
		filepath.IsAbs(raw),
		strings.HasPrefix(raw, "."):
		return raw
	}

	if info, err := os.Stat(raw); err == nil && info.IsDir() {
		return raw
	}

	host, _, found := strings.Cut(raw, "/")
	if !found || !strings.Contains(host, ".") {
		return raw
	}
	return "https://" + strings.TrimSuffix(raw, ".git") + ".git"
}

// GitOperations clones boilerplate repositories into a local cache.
type GitOperations struct {
	cacheDir   string
	token      string
	sshKeyFile string
}

// NewGitOperations creates a new git operations handler that caches
// repositories under cacheDir.
func NewGitOperations(cacheDir string) *GitOperations {
	return &GitOperations{
		cacheDir: cacheDir,
	}
}

// WithAuth sets the HTTPS token and SSH key file used for remotes.
func (g *GitOperations) WithAuth(token, sshKeyFile string) *GitOperations {
	g.token = token
	g.sshKeyFile = sshKeyFile
	return g
}

// CloneOrUpdate clones a repository if it is not cached yet, or pulls updates
// if it is. A failed pull keeps the cached copy.
func (g *GitOperations) CloneOrUpdate(ctx context.Context, gitURL, version string) (string, error) {
	repoPath := g.getCachePath(gitURL, version)

	auth, err := emgit.AuthFor(gitURL, g.token, g.sshKeyFile)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(repoPath); err == nil && info.IsDir() {
		logging.DebugContext(ctx, "Repository already cached at %s, pulling updates", repoPath)
		if err := g.pullUpdates(ctx, repoPath, auth); err != nil {
			logging.WarnContext(ctx, "Failed to pull updates, using cached version: %v", err)
		}
		return repoPath, nil
	}

	logging.InfoContext(ctx, "Fetching the boilerplate from %s", logging.RedactURL(gitURL))
	return g.clone(ctx, gitURL, version, repoPath, auth)
}

// isSpecificVersion checks if the version is a specific tag/branch (not main/master)
func isSpecificVersion(version string) bool {
	return version != "" && version != "main" && version != "master"
}

// cloneWithRetry tries version as a tag, then as a branch.
func (g *GitOperations) cloneWithRetry(ctx context.Context, repoPath string, cloneOpts *git.CloneOptions, version string) (*git.Repository, error) {
	repo, err := git.PlainCloneContext(ctx, repoPath, false, cloneOpts)
	if err != nil && isSpecificVersion(version) && ctx.Err() == nil {
		_ = os.RemoveAll(repoPath)
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(version)
		return git.PlainCloneContext(ctx, repoPath, false, cloneOpts)
	}
	return repo, err
}

// checkoutVersion attempts to checkout a specific version (tag or branch)
func checkoutVersion(repo *git.Repository, version string) error {
	w, err := repo.Worktree()
	if err != nil {
		return err
	}

	checkoutOpts := &git.CheckoutOptions{
		Branch: plumbing.NewTagReferenceName(version),
	}
	if err := w.Checkout(checkoutOpts); err != nil {
		checkoutOpts.Branch = plumbing.NewBranchReferenceName(version)
		return w.Checkout(checkoutOpts)
	}
	return nil
}

func (g *GitOperations) clone(ctx context.Context, gitURL, version, repoPath string, auth transport.AuthMethod) (string, error) {
	cloneOpts := &git.CloneOptions{
		URL:  gitURL,
		Auth: auth,
	}

	logger := logging.FromContext(ctx)
	if !logger.IsQuiet() {
		cloneOpts.Progress = logger.Writer()
	}

	if isSpecificVersion(version) {
		cloneOpts.ReferenceName = plumbing.NewTagReferenceName(version)
		cloneOpts.SingleBranch = true
	}

	repo, err := g.cloneWithRetry(ctx, repoPath, cloneOpts, version)
	if err != nil {
		_ = os.RemoveAll(repoPath)
		return "", emerrors.Precondition("could not fetch the boilerplate from %s", logging.RedactURL(gitURL)).
			WithCause(err).
			WithHint("Check the --path url and your network connection")
	}

	if isSpecificVersion(version) {
		if err := checkoutVersion(repo, version); err != nil {
			logging.WarnContext(ctx, "Could not checkout version %s, using default branch", version)
		}
	}

	return repoPath, nil
}

func (g *GitOperations) pullUpdates(ctx context.Context, repoPath string, auth transport.AuthMethod) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	pullOpts := &git.PullOptions{
		RemoteName: "origin",
		Auth:       auth,
	}
	logger := logging.FromContext(ctx)
	if !logger.IsQuiet() {
		pullOpts.Progress = logger.Writer()
	}

	err = w.PullContext(ctx, pullOpts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull updates: %w", err)
	}
	return nil
}

// getCachePath derives a cache directory from the URL and version. Specific
// versions get their own hashed subdirectory.
func (g *GitOperations) getCachePath(gitURL, version string) string {
	cleanURL := strings.TrimPrefix(gitURL, "https://")
	cleanURL = strings.TrimPrefix(cleanURL, "http://")
	cleanURL = strings.TrimPrefix(cleanURL, "ssh://")
	cleanURL = strings.TrimPrefix(cleanURL, "file://")
	cleanURL = strings.TrimPrefix(cleanURL, "git@")
	if at := strings.LastIndex(cleanURL, "@"); at >= 0 {
		cleanURL = cleanURL[at+1:]
	}
	cleanURL = strings.ReplaceAll(cleanURL, ":", "/")
	cleanURL = strings.TrimSuffix(cleanURL, ".git")
	cleanURL = strings.TrimPrefix(filepath.Clean("/"+cleanURL), "/")

	if isSpecificVersion(version) {
		hash := sha256.Sum256([]byte(version))
		cleanURL = filepath.Join(cleanURL, fmt.Sprintf("%x", hash)[:8])
	}

	return filepath.Join(g.cacheDir, cleanURL)
}
