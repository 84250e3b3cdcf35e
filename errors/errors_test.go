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

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	baseErr := errors.New("something went wrong")

	tests := []struct {
		name           string
		action         string
		detail         string
		err            error
		expectedPrefix string
		shouldContain  []string
	}{
		{
			name:           "wrap with action only",
			action:         "clone boilerplate",
			err:            baseErr,
			expectedPrefix: "failed to clone boilerplate:",
			shouldContain:  []string{"failed to clone boilerplate:", "something went wrong"},
		},
		{
			name:           "wrap with action and detail",
			action:         "read skeleton",
			detail:         "route.js",
			err:            baseErr,
			expectedPrefix: "failed to read skeleton (route.js):",
			shouldContain:  []string{"failed to read skeleton", "route.js", "something went wrong"},
		},
		{
			name:   "wrap nil error returns nil",
			action: "do something",
			detail: "details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.action, tt.detail, tt.err)

			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil error, got: %v", result)
				}
				return
			}

			if result == nil {
				t.Fatal("Expected wrapped error, got nil")
			}

			errMsg := result.Error()
			if !strings.HasPrefix(errMsg, tt.expectedPrefix) {
				t.Errorf("Expected error to start with %q, got: %q", tt.expectedPrefix, errMsg)
			}
			for _, expected := range tt.shouldContain {
				if !strings.Contains(errMsg, expected) {
					t.Errorf("Expected error to contain %q, got: %q", expected, errMsg)
				}
			}
			if !errors.Is(result, baseErr) {
				t.Error("Expected wrapped error to unwrap to original error")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "usage", err: Usage("bad token %q", "route"), want: KindUsage},
		{name: "convention", err: Convention("no hyphen"), want: KindConvention},
		{name: "conflict", err: Conflict("exists"), want: KindConflict},
		{name: "precondition", err: Precondition("not a project"), want: KindPrecondition},
		{name: "wrapped classified", err: fmt.Errorf("generate: %w", Conflict("exists")), want: KindConflict},
		{name: "plain error", err: errors.New("boom"), want: KindUnknown},
		{name: "nil", err: nil, want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKind_IsUserError(t *testing.T) {
	assert.True(t, KindUsage.IsUserError())
	assert.True(t, KindConvention.IsUserError())
	assert.True(t, KindConflict.IsUserError())
	assert.False(t, KindPrecondition.IsUserError())
	assert.False(t, KindUnknown.IsUserError())
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Precondition("cannot read %s", "client").WithCause(cause).WithHint("run em new first")

	assert.Equal(t, "cannot read client: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "run em new first", HintOf(fmt.Errorf("wrapped: %w", err)))

	var classified *Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, "precondition", classified.Kind.String())
}

func TestHintOf_Unclassified(t *testing.T) {
	assert.Empty(t, HintOf(errors.New("plain")))
}
