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

// Package naming implements the naming conventions em applies to generated
// files: dasherized file names, classified module names and the pluralized
// directory of each generator type.
package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dasherize converts s to lower-case words separated by hyphens.
//
//	Dasherize("BlogPost")  // "blog-post"
//	Dasherize("my_post")   // "my-post"
func Dasherize(s string) string {
	return strcase.ToKebab(s)
}

// Classify converts s to PascalCase. Hyphens, underscores, dots and spaces
// separate words.
//
//	Classify("blog_post_route") // "BlogPostRoute"
//	Classify("my-post")         // "MyPost"
func Classify(s string) string {
	return strcase.ToCamel(s)
}

// Capitalize upper-cases the first letter of s and leaves the rest as is.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// Pluralize returns the directory name for a generator type: the type plus
// "s", unless it already ends in "s" or is "store".
func Pluralize(kind string) string {
	if kind == "store" || strings.HasSuffix(kind, "s") {
		return kind
	}
	return kind + "s"
}

// Singularize strips one trailing "s" so that "routes" names the same
// generator as "route".
func Singularize(kind string) string {
	return strings.TrimSuffix(kind, "s")
}
