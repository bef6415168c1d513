package process

import (
	"os"
	"os/exec"
	"time"

	"github.com/kbukum/subprocess/descriptor"
	"github.com/kbukum/subprocess/errors"
)

// State tracks where a Process is in its lifecycle.
type State int

const (
	// StateBuilt means the process has been described but not spawned.
	StateBuilt State = iota
	// StateSpawned means the child is running and holds a handle.
	StateSpawned
	// StateWaited means the child has exited and been reaped.
	StateWaited
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateSpawned:
		return "spawned"
	case StateWaited:
		return "waited"
	default:
		return "unknown"
	}
}

// Process is one external program invocation. Its descriptor slots default
// to the standard streams and may be rewired freely until Execute.
type Process struct {
	argv    []string
	dir     string
	env     []string
	stdin   *descriptor.Descriptor
	stdout  *descriptor.Descriptor
	stderr  *descriptor.Descriptor
	handle  *os.Process
	state   State
	started time.Time
}

// New creates a Process from an argument vector.
func New(argv ...string) *Process {
	return &Process{
		argv:   argv,
		stdin:  descriptor.Stdin(),
		stdout: descriptor.Stdout(),
		stderr: descriptor.Stderr(),
	}
}

// Parse creates a Process by tokenizing a raw command line.
func Parse(cmdline string) (*Process, error) {
	argv, err := Tokenize(cmdline)
	if err != nil {
		return nil, err
	}
	return New(argv...), nil
}

// Argv returns the argument vector.
func (p *Process) Argv() []string { return p.argv }

// State returns the lifecycle state.
func (p *Process) State() State { return p.state }

// Pid returns the child's process id, or -1 before Execute.
func (p *Process) Pid() int {
	if p.handle == nil {
		return -1
	}
	return p.handle.Pid
}

// SetDir sets the child's working directory.
func (p *Process) SetDir(dir string) { p.dir = dir }

// SetEnv sets additional environment variables (key=value), merged with
// the parent environment at spawn time.
func (p *Process) SetEnv(env []string) { p.env = env }

// SetStdin rewires the stdin slot. The previously owned descriptor, if
// any, is closed.
func (p *Process) SetStdin(d *descriptor.Descriptor) { replaceSlot(&p.stdin, d) }

// SetStdout rewires the stdout slot. The previously owned descriptor, if
// any, is closed.
func (p *Process) SetStdout(d *descriptor.Descriptor) { replaceSlot(&p.stdout, d) }

// SetStderr rewires the stderr slot. The previously owned descriptor, if
// any, is closed.
func (p *Process) SetStderr(d *descriptor.Descriptor) { replaceSlot(&p.stderr, d) }

// Stdin returns the current stdin slot.
func (p *Process) Stdin() *descriptor.Descriptor { return p.stdin }

// Stdout returns the current stdout slot.
func (p *Process) Stdout() *descriptor.Descriptor { return p.stdout }

// Stderr returns the current stderr slot.
func (p *Process) Stderr() *descriptor.Descriptor { return p.stderr }

func replaceSlot(slot **descriptor.Descriptor, d *descriptor.Descriptor) {
	if *slot != d {
		_ = (*slot).Close()
	}
	*slot = d
}

// Execute transitions Built -> Spawned. The three slot descriptors are
// duplicated onto the child's standard streams during spawn; an exec
// failure in the child surfaces synchronously as an OS error here. After a
// successful spawn the parent closes every closable slot descriptor, since
// the child holds its own duplicates.
func (p *Process) Execute() error {
	if p.state != StateBuilt {
		return errors.Usage("execute called on a process in state " + p.state.String())
	}
	if len(p.argv) == 0 {
		return errors.Usage("process has an empty argument vector")
	}

	path, err := exec.LookPath(p.argv[0])
	if err != nil {
		return errors.OS("lookpath "+p.argv[0], err)
	}

	attr := &os.ProcAttr{
		Dir: p.dir,
		Env: mergeEnv(p.env),
		Files: []*os.File{
			p.stdin.File(), p.stdout.File(), p.stderr.File(),
		},
	}

	p.started = time.Now()
	handle, err := os.StartProcess(path, p.argv, attr)
	if err != nil {
		return errors.OS("spawn "+p.argv[0], err)
	}
	p.handle = handle
	p.state = StateSpawned

	// Drop the parent's copies. Close is idempotent, no-ops on the
	// standard streams, and on an aliased stdout/stderr pair the second
	// call does nothing. Pipe ends especially must go away here or the
	// other side never sees EOF.
	for _, d := range []*descriptor.Descriptor{p.stdin, p.stdout, p.stderr} {
		if err := d.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Wait transitions Spawned -> Waited. It blocks until the child exits and
// returns its normalized exit code. Calling Wait before Execute, or twice,
// is a usage error.
func (p *Process) Wait() (*Result, error) {
	if p.state != StateSpawned {
		return nil, errors.Usage("wait called on a process in state " + p.state.String())
	}
	st, err := p.handle.Wait()
	if err != nil {
		return nil, errors.OS("wait", err)
	}
	p.state = StateWaited
	return &Result{
		ExitCode: st.ExitCode(),
		Pid:      p.handle.Pid,
		Duration: time.Since(p.started),
	}, nil
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
