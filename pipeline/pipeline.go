package pipeline

import (
	"github.com/google/uuid"

	"github.com/kbukum/subprocess/config"
	"github.com/kbukum/subprocess/descriptor"
	"github.com/kbukum/subprocess/errors"
	"github.com/kbukum/subprocess/logger"
	"github.com/kbukum/subprocess/process"
)

// capture binds the read end of a pipe to the string that will receive the
// stream's output after Run drains it.
type capture struct {
	rd  *descriptor.Descriptor
	buf *string
}

// Command is an ordered chain of processes wired together by descriptors.
// All composition methods return the receiver for fluent chaining; the
// first build error sticks and is surfaced by Run or Status.
type Command struct {
	procs  []*process.Process
	id     string
	log    *logger.Logger
	dir    string
	env    []string
	outCap *capture
	errCap *capture
	err    error
}

// Option configures a Command at construction time.
type Option func(*Command)

// WithLogger sets the logger used for spawn/wait/capture events.
func WithLogger(l *logger.Logger) Option {
	return func(c *Command) { c.log = l }
}

// WithDir sets the working directory for every process in the pipeline.
func WithDir(dir string) Option {
	return func(c *Command) { c.dir = dir }
}

// WithEnv sets additional environment variables (key=value) for every
// process in the pipeline.
func WithEnv(env []string) Option {
	return func(c *Command) { c.env = env }
}

// FromConfig derives options from a loaded library config: working
// directory, extra environment, and a logger built from the logging
// section.
func FromConfig(cfg config.Config) Option {
	return func(c *Command) {
		c.dir = cfg.Dir
		c.env = cfg.ExtraEnv()
		c.log = logger.New(&cfg.Logging, "subprocess")
	}
}

// New creates a single-command pipeline by tokenizing a raw command line.
func New(cmdline string, opts ...Option) *Command {
	c := newCommand(opts)
	p, err := process.Parse(cmdline)
	if err != nil {
		c.err = err
		return c
	}
	c.adopt(p)
	return c
}

// NewArgv creates a single-command pipeline from an argument vector,
// bypassing tokenization.
func NewArgv(argv []string, opts ...Option) *Command {
	c := newCommand(opts)
	if len(argv) == 0 {
		c.err = errors.Usage("empty argument vector")
		return c
	}
	c.adopt(process.New(argv...))
	return c
}

func newCommand(opts []Option) *Command {
	c := &Command{
		id:  uuid.NewString(),
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// adopt appends a process and applies pipeline-wide settings to it.
func (c *Command) adopt(p *process.Process) {
	if c.dir != "" {
		p.SetDir(c.dir)
	}
	if len(c.env) > 0 {
		p.SetEnv(c.env)
	}
	c.procs = append(c.procs, p)
}

// ID returns the pipeline's run correlation id.
func (c *Command) ID() string { return c.id }

// BuildErr returns the first build error, if any.
func (c *Command) BuildErr() error { return c.err }

// Processes returns the pipeline's process chain.
func (c *Command) Processes() []*process.Process { return c.procs }

// fail records the first build error and keeps the chain fluent.
func (c *Command) fail(err error) *Command {
	if c.err == nil {
		c.err = err
	}
	return c
}

// check reports whether the pipeline can accept another operator. A chain
// that already failed or was consumed by a pipe records a usage error and
// turns every later operator into a no-op.
func (c *Command) check() bool {
	if c.err != nil {
		return false
	}
	if len(c.procs) == 0 {
		c.err = errors.Usage("pipeline has no processes (already consumed by a pipe?)")
		return false
	}
	return true
}

func (c *Command) first() *process.Process { return c.procs[0] }

func (c *Command) last() *process.Process { return c.procs[len(c.procs)-1] }

// setOutCapture replaces the stdout capture registration, closing the read
// end of a capture it cancels.
func (c *Command) setOutCapture(cp *capture) {
	if c.outCap != nil {
		_ = c.outCap.rd.Close()
	}
	c.outCap = cp
}

// setErrCapture replaces the stderr capture registration, closing the read
// end of a capture it cancels.
func (c *Command) setErrCapture(cp *capture) {
	if c.errCap != nil {
		_ = c.errCap.rd.Close()
	}
	c.errCap = cp
}
