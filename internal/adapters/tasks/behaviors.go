package tasks

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Built-in task type tags.
const (
	TypeNoop     = "noop"
	TypeTouch    = "touch"
	TypeShell    = "shell"
	TypeReRename = "re_rename"
)

func newNoop(*domain.TaskDescriptor) (Behavior, error) {
	return BehaviorFunc(func(context.Context, *domain.TaskDescriptor) error {
		return nil
	}), nil
}

type touch struct {
	path string
}

func newTouch(desc *domain.TaskDescriptor) (Behavior, error) {
	path, ok := desc.Outputs[domain.BindingFile]
	if !ok || path == "" {
		return nil, paramError(desc, "outputs.file", "touch requires a file output")
	}
	return &touch{path: path}, nil
}

// Run creates the output file, or updates its modification time.
func (t *touch) Run(_ context.Context, desc *domain.TaskDescriptor) error {
	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
		}
	}
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // path comes from pipeline config
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", t.path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", t.path)
	}
	now := time.Now()
	if err := os.Chtimes(t.path, now, now); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to touch file"), "path", t.path)
	}
	return nil
}

type shellCmd struct {
	executor ports.Executor
	argv     []string
	env      map[string]string
	dir      string
}

func newShell(desc *domain.TaskDescriptor, executor ports.Executor) (Behavior, error) {
	argv, err := stringListParam(desc, "cmd")
	if err != nil {
		// A single string runs through the shell.
		line, strErr := stringParam(desc, "cmd", true)
		if strErr != nil {
			return nil, err
		}
		argv = []string{"sh", "-c", line}
	}
	if len(argv) == 0 {
		return nil, paramError(desc, "cmd", "missing required parameter")
	}
	env, err := stringMapParam(desc, "env")
	if err != nil {
		return nil, err
	}
	dir, err := stringParam(desc, "dir", false)
	if err != nil {
		return nil, err
	}
	return &shellCmd{executor: executor, argv: argv, env: env, dir: dir}, nil
}

// Run executes the configured command.
func (s *shellCmd) Run(ctx context.Context, desc *domain.TaskDescriptor) error {
	return s.executor.Execute(ctx, ports.Command{
		TaskID: desc.ID,
		Argv:   s.argv,
		Env:    s.env,
		Dir:    s.dir,
	})
}

type reRename struct {
	logger  ports.Logger
	pattern string
	match   *regexp.Regexp
	repl    string
	dryRun  bool
}

func newReRename(desc *domain.TaskDescriptor, logger ports.Logger) (Behavior, error) {
	pattern, ok := desc.Inputs[domain.BindingFile]
	if !ok || pattern == "" {
		return nil, paramError(desc, "inputs.file", "re_rename requires a file input")
	}
	repl, ok := desc.Outputs[domain.BindingFile]
	if !ok {
		return nil, paramError(desc, "outputs.file", "re_rename requires a file output")
	}
	expr, err := stringParam(desc, "match", true)
	if err != nil {
		return nil, err
	}
	match, err := regexp.Compile(expr)
	if err != nil {
		return nil, zerr.With(paramError(desc, "match", "invalid regular expression"), "cause", err.Error())
	}
	dryRun, err := boolParam(desc, "dry_run")
	if err != nil {
		return nil, err
	}
	return &reRename{
		logger:  logger,
		pattern: pattern,
		match:   match,
		repl:    expandTemplate(repl),
		dryRun:  dryRun,
	}, nil
}

// Run renames every file matching the input pattern.
func (r *reRename) Run(ctx context.Context, _ *domain.TaskDescriptor) error {
	files, err := filepath.Glob(r.pattern)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid file pattern"), "pattern", r.pattern)
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := r.match.ReplaceAllString(file, r.repl)
		if target == file {
			continue
		}
		r.logger.Info("Renaming " + file + " to " + target)
		if r.dryRun {
			continue
		}
		if err := os.Rename(file, target); err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to rename file"), "from", file)
			return zerr.With(err, "to", target)
		}
	}
	return nil
}

// expandTemplate converts a backslash replacement template (\1, \g<name>)
// into regexp expansion syntax. Literal dollar signs are escaped.
func expandTemplate(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '$':
			b.WriteString("$$")
		case c == '\\' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9':
			j := i + 1
			for j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}
			b.WriteString("${" + repl[i+1:j] + "}")
			i = j - 1
		case c == '\\' && strings.HasPrefix(repl[i+1:], "g<"):
			end := strings.IndexByte(repl[i+3:], '>')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("${" + repl[i+3:i+3+end] + "}")
			i += 3 + end
		case c == '\\' && i+1 < len(repl) && repl[i+1] == '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
