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

package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/naming"
)

// tokenPattern requires a non-empty type and a name with no further colon.
var tokenPattern = regexp.MustCompile(`^[^:]+.+:[^:]+$`)

const usageExample = "ex: em generate route:post"

// Request is a parsed `type:name` argument.
type Request struct {
	Kind Kind
	Name string
}

// ParseRequest parses a `type:name` token. A plural type such as "routes"
// is accepted for "route".
func ParseRequest(token string) (Request, error) {
	if !tokenPattern.MatchString(token) || strings.Count(token, ":") != 1 {
		return Request{}, emerrors.Usage("invalid argument, expected `type:name` got: %s", token).
			WithHint(usageExample)
	}

	parts := strings.Split(token, ":")
	kind := Kind(naming.Singularize(strings.TrimSpace(parts[0])))
	name := strings.TrimSpace(parts[1])

	if !kind.Valid() {
		hint := "valid types are: " + strings.Join(kindNames(), ", ")
		if s := suggest(string(kind)); s != "" {
			hint = fmt.Sprintf("did you mean %q?\n%s", s, hint)
		}
		return Request{}, emerrors.Usage("%s is not a valid type", parts[0]).WithHint(hint)
	}

	if name == "" {
		return Request{}, emerrors.Usage("the name of %s must be a valid string", kind).
			WithHint(usageExample)
	}

	return Request{Kind: kind, Name: name}, nil
}

// String returns the request in `type:name` form.
func (r Request) String() string {
	return string(r.Kind) + ":" + r.Name
}

func kindNames() []string {
	all := Kinds()
	names := make([]string, len(all))
	for i, k := range all {
		names[i] = string(k)
	}
	return names
}

// suggest returns the closest valid type to an unknown one, or "". Close
// misspellings win; otherwise the best subsequence match is used.
func suggest(input string) string {
	if input == "" {
		return ""
	}
	names := kindNames()
	lower := strings.ToLower(input)

	best, bestDist := "", 3
	for _, name := range names {
		if d := fuzzy.LevenshteinDistance(lower, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		return best
	}

	ranks := fuzzy.RankFindFold(input, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
