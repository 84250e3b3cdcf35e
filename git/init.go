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

package git

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/cowdogmoo/emrocks/config"
	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
)

// InitialCommitMessage is the message of the first commit in a new project.
const InitialCommitMessage = "Initial commit"

// InitRepository runs the equivalent of `git init && git add -A && git
// commit` in dir. A zero author is recorded as em.
func InitRepository(ctx context.Context, dir string, author Author) (plumbing.Hash, error) {
	if err := ctx.Err(); err != nil {
		return plumbing.ZeroHash, err
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return plumbing.ZeroHash, emerrors.Wrap("initialize git repository", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, emerrors.Wrap("get worktree", dir, err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, emerrors.Wrap("stage files", dir, err)
	}

	if author.Name == "" {
		author.Name = config.AppName
	}
	hash, err := worktree.Commit(InitialCommitMessage, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return plumbing.ZeroHash, emerrors.Wrap("create initial commit", dir, err)
	}

	logging.DebugContext(ctx, "Initialized git repository in %s at %s", dir, hash.String()[:8])
	return hash, nil
}
