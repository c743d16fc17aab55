package radiance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes tool invocations sequentially. Implementations block
// until the command (or pipeline) completes; the first non-zero exit
// aborts with an error carrying the tool's stderr.
type Runner interface {
	// Run executes cmd, honoring its redirections, and discards stdout
	// unless StdoutPath is set.
	Run(ctx context.Context, cmd Cmd) error
	// Output executes cmd and returns its captured stdout.
	Output(ctx context.Context, cmd Cmd) (string, error)
	// Pipeline connects the commands stdout-to-stdin and returns the
	// captured stdout of the last one (or writes it to its StdoutPath).
	Pipeline(ctx context.Context, cmds ...Cmd) (string, error)
}

// ExecRunner runs commands with os/exec, echoing each shell-rendered
// command line before execution.
type ExecRunner struct {
	Echo io.Writer // defaults to os.Stdout
}

func (r ExecRunner) echo(line string) {
	w := r.Echo
	if w == nil {
		w = os.Stdout
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		// Best-effort command echo.
		_ = err
	}
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	_, err := r.run(ctx, cmd, false)
	return err
}

// Output implements Runner.
func (r ExecRunner) Output(ctx context.Context, cmd Cmd) (string, error) {
	return r.run(ctx, cmd, true)
}

func (r ExecRunner) run(ctx context.Context, cmd Cmd, capture bool) (string, error) {
	r.echo(cmd.String())
	ec := exec.CommandContext(ctx, cmd.Name, cmd.Args...)

	if cmd.StdinPath != "" {
		in, err := os.Open(cmd.StdinPath)
		if err != nil {
			return "", fmt.Errorf("failed to open stdin for %s: %w", cmd.Name, err)
		}
		defer func() {
			if cerr := in.Close(); cerr != nil {
				// Best-effort close of the stdin file.
				_ = cerr
			}
		}()
		ec.Stdin = in
	}

	var stdout bytes.Buffer
	var out *os.File
	switch {
	case cmd.StdoutPath != "":
		f, err := os.Create(cmd.StdoutPath)
		if err != nil {
			return "", fmt.Errorf("failed to create output for %s: %w", cmd.Name, err)
		}
		out = f
		ec.Stdout = f
	case capture:
		ec.Stdout = &stdout
	}

	var stderr bytes.Buffer
	ec.Stderr = &stderr

	err := ec.Run()
	if out != nil {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}
	if err != nil {
		return "", commandError(cmd, err, stderr.Bytes())
	}
	return stdout.String(), nil
}

// Pipeline implements Runner.
func (r ExecRunner) Pipeline(ctx context.Context, cmds ...Cmd) (string, error) {
	if len(cmds) == 0 {
		return "", fmt.Errorf("empty pipeline")
	}
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	r.echo(strings.Join(lines, " | "))

	procs := make([]*exec.Cmd, len(cmds))
	var stdout bytes.Buffer
	stderrs := make([]bytes.Buffer, len(cmds))
	var closers []io.Closer

	closeAll := func() {
		for _, c := range closers {
			if cerr := c.Close(); cerr != nil {
				// Best-effort cleanup of pipeline files.
				_ = cerr
			}
		}
	}

	last := len(cmds) - 1
	for i, c := range cmds {
		ec := exec.CommandContext(ctx, c.Name, c.Args...)
		ec.Stderr = &stderrs[i]
		if i == 0 && c.StdinPath != "" {
			in, err := os.Open(c.StdinPath)
			if err != nil {
				closeAll()
				return "", fmt.Errorf("failed to open stdin for %s: %w", c.Name, err)
			}
			closers = append(closers, in)
			ec.Stdin = in
		}
		if i == last {
			if c.StdoutPath != "" {
				f, err := os.Create(c.StdoutPath)
				if err != nil {
					closeAll()
					return "", fmt.Errorf("failed to create output for %s: %w", c.Name, err)
				}
				closers = append(closers, f)
				ec.Stdout = f
			} else {
				ec.Stdout = &stdout
			}
		}
		procs[i] = ec
	}
	for i := 0; i < last; i++ {
		pipe, err := procs[i].StdoutPipe()
		if err != nil {
			closeAll()
			return "", fmt.Errorf("failed to connect pipeline at %s: %w", cmds[i].Name, err)
		}
		procs[i+1].Stdin = pipe
	}

	for i, p := range procs {
		if err := p.Start(); err != nil {
			closeAll()
			return "", commandError(cmds[i], err, stderrs[i].Bytes())
		}
	}
	var firstErr error
	for i, p := range procs {
		if err := p.Wait(); err != nil && firstErr == nil {
			firstErr = commandError(cmds[i], err, stderrs[i].Bytes())
		}
	}
	closeAll()
	if firstErr != nil {
		return "", firstErr
	}
	return stdout.String(), nil
}

func commandError(cmd Cmd, err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg != "" {
		return fmt.Errorf("%s failed: %w: %s", cmd.Name, err, msg)
	}
	return fmt.Errorf("%s failed: %w", cmd.Name, err)
}
