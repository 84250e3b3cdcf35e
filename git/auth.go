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
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	emerrors "github.com/cowdogmoo/emrocks/errors"
)

// tokenUsername is the user name paired with a token for HTTPS remotes.
const tokenUsername = "x-access-token"

// IsSSHURL reports whether repoURL uses the SSH transport.
func IsSSHURL(repoURL string) bool {
	return strings.HasPrefix(repoURL, "git@") || strings.HasPrefix(repoURL, "ssh://")
}

// AuthFor returns the auth method for repoURL. HTTPS remotes use token basic
// auth when a token is set, SSH remotes use sshKeyFile when one is set, and
// everything else gets nil so go-git falls back to its defaults.
func AuthFor(repoURL, token, sshKeyFile string) (transport.AuthMethod, error) {
	if IsSSHURL(repoURL) {
		if sshKeyFile == "" {
			return nil, nil
		}
		keyPath := expandPath(sshKeyFile)
		publicKeys, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
		if err != nil {
			return nil, emerrors.Wrap("load SSH key", keyPath, err)
		}
		return publicKeys, nil
	}

	if token == "" {
		return nil, nil
	}

	parsed, err := url.Parse(repoURL)
	if err != nil {
		return nil, emerrors.Wrap("parse repository URL", "", err)
	}
	if parsed.Scheme != "https" {
		return nil, nil
	}

	return &http.BasicAuth{
		Username: tokenUsername,
		Password: token,
	}, nil
}
