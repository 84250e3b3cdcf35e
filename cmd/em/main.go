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
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cowdogmoo/emrocks/config"
	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes em with args and returns the process exit status. It is the
// only place errors become exit codes.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	reportError(opts.logger, stderr, err)
	return exitCode(err, opts.exitCodes(), opts.strict)
}

// exitCode maps an error to a process exit status. Usage, naming and
// conflict errors use codes.UserError unless strict is set, precondition
// errors use codes.Precondition and everything else exits 1.
func exitCode(err error, codes config.ExitCodesConfig, strict bool) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	kind := emerrors.KindOf(err)
	switch {
	case kind.IsUserError():
		if strict {
			return 1
		}
		return codes.UserError
	case kind == emerrors.KindPrecondition:
		return codes.Precondition
	default:
		return 1
	}
}

// reportError logs err and its hint. Errors raised before the logger was
// configured go to stderr with the default format.
func reportError(logger *logging.CustomLogger, stderr io.Writer, err error) {
	if logger == nil {
		logger = logging.NewCustomLoggerWithOptions("info", "color", false, false)
		logger.SetOutput(stderr, io.Discard)
	}

	logger.Error(err)
	if hint := emerrors.HintOf(err); hint != "" {
		for _, line := range strings.Split(hint, "\n") {
			logger.Info("%s", line)
		}
	}
}
