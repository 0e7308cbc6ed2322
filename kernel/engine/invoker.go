package engine

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/frontside/embersite/kernel/model"
	"github.com/mattn/go-shellwords"
	"github.com/michaelquigley/pfxlog"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BuildInvoker runs the external build for one app inside its directory.
type BuildInvoker interface {
	Build(ctx context.Context, app *model.App) (*BuildResult, error)
}

type BuildResult struct {
	Output   []byte
	Duration time.Duration
}

// ExecInvoker runs each command line in turn with the app directory as the
// working directory, stopping at the first failure.
type ExecInvoker struct {
	Commands []string
	Timeout  time.Duration

	toolchainErr error
}

func NewExecInvoker(commands []string, timeout time.Duration) *ExecInvoker {
	return &ExecInvoker{Commands: commands, Timeout: timeout}
}

// NewToolchainInvoker builds an ExecInvoker from the configured toolchain.
func NewToolchainInvoker(cfg *model.Config) (*ExecInvoker, error) {
	toolchain, err := model.GetToolchain(cfg.Toolchain)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	commands, err := toolchain.Commands(cfg)
	if err != nil {
		// surfaced per app by Build, so apps that are already built still work
		return &ExecInvoker{Timeout: timeout, toolchainErr: err}, nil
	}
	return NewExecInvoker(commands, timeout), nil
}

func (e *ExecInvoker) Build(ctx context.Context, app *model.App) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{}

	if e.toolchainErr != nil {
		return result, &model.BuildFailure{App: app.Label(), Dir: app.Dir, Err: e.toolchainErr}
	}
	if len(e.Commands) == 0 {
		return result, &model.BuildFailure{App: app.Label(), Dir: app.Dir, Err: errors.New("no build commands configured")}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	log := pfxlog.Logger().WithField("app", app.Basename())
	var output bytes.Buffer
	for _, line := range e.Commands {
		err := e.run(ctx, app.Dir, line, &output, log)
		result.Output = output.Bytes()
		result.Duration = time.Since(start)
		if err != nil {
			failure := &model.BuildFailure{
				App:     app.Label(),
				Dir:     app.Dir,
				Command: line,
				Output:  result.Output,
				Err:     err,
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				failure.ExitCode = exitErr.ExitCode()
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				failure.Err = errors.Wrap(ctxErr, "build interrupted")
			}
			return result, failure
		}
	}
	return result, nil
}

func (e *ExecInvoker) run(ctx context.Context, dir, line string, output *bytes.Buffer, log *logrus.Entry) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return errors.Wrapf(err, "unable to parse command '%s'", line)
	}
	if len(args) == 0 {
		return errors.Errorf("empty command '%s'", line)
	}

	log.Debugf("running '%s'", line)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = 5 * time.Second

	var w io.Writer = output
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logWriter := log.WriterLevel(logrus.DebugLevel)
		defer func() { _ = logWriter.Close() }()
		w = io.MultiWriter(output, logWriter)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	return cmd.Run()
}
