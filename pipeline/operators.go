package pipeline

import (
	"github.com/kbukum/subprocess/descriptor"
	"github.com/kbukum/subprocess/errors"
)

// Pipe connects other's first process to the receiver's last process with
// a fresh pipe and appends other's processes. The right-hand Command is
// consumed: its capture registrations move to the combined pipeline and
// override the receiver's. Interior slots must not be touched afterwards.
func (c *Command) Pipe(other *Command) *Command {
	if !c.check() {
		return c
	}
	if other == c {
		return c.fail(errors.Usage("cannot pipe a pipeline into itself"))
	}
	if other.err != nil {
		return c.fail(other.err)
	}
	if len(other.procs) == 0 {
		return c.fail(errors.Usage("pipeline has no processes (already consumed by a pipe?)"))
	}
	rd, wr, err := descriptor.NewPipe()
	if err != nil {
		return c.fail(err)
	}
	c.last().SetStdout(wr)
	other.first().SetStdin(rd)
	c.procs = append(c.procs, other.procs...)
	if other.outCap != nil {
		c.setOutCapture(other.outCap)
	}
	if other.errCap != nil {
		c.setErrCapture(other.errCap)
	}
	other.procs = nil
	other.outCap = nil
	other.errCap = nil
	return c
}

// PipeCmd is shorthand for Pipe(New(cmdline)).
func (c *Command) PipeCmd(cmdline string) *Command {
	if !c.check() {
		return c
	}
	return c.Pipe(New(cmdline))
}

// Out redirects the last process's stdout to the given descriptor,
// cancelling any registered stdout capture.
func (c *Command) Out(d *descriptor.Descriptor) *Command {
	if !c.check() {
		return c
	}
	c.setOutCapture(nil)
	c.last().SetStdout(d)
	return c
}

// OutFile redirects stdout to path, truncating or creating the file.
func (c *Command) OutFile(path string) *Command {
	if !c.check() {
		return c
	}
	d, err := descriptor.Create(path)
	if err != nil {
		return c.fail(err)
	}
	return c.Out(d)
}

// AppendFile redirects stdout to path in append mode, creating the file if
// needed.
func (c *Command) AppendFile(path string) *Command {
	if !c.check() {
		return c
	}
	d, err := descriptor.Append(path)
	if err != nil {
		return c.fail(err)
	}
	return c.Out(d)
}

// CaptureOut routes stdout through a pipe into buf. The buffer is filled
// during Run, after every process has been spawned. Capturing and
// redirecting the same stream are mutually exclusive; the last call wins.
func (c *Command) CaptureOut(buf *string) *Command {
	if !c.check() {
		return c
	}
	rd, wr, err := descriptor.NewPipe()
	if err != nil {
		return c.fail(err)
	}
	c.last().SetStdout(wr)
	c.setOutCapture(&capture{rd: rd, buf: buf})
	return c
}

// Err redirects the last process's stderr to the given descriptor,
// cancelling any registered stderr capture.
func (c *Command) Err(d *descriptor.Descriptor) *Command {
	if !c.check() {
		return c
	}
	c.setErrCapture(nil)
	c.last().SetStderr(d)
	return c
}

// ErrFile redirects stderr to path, truncating or creating the file.
func (c *Command) ErrFile(path string) *Command {
	if !c.check() {
		return c
	}
	d, err := descriptor.Create(path)
	if err != nil {
		return c.fail(err)
	}
	return c.Err(d)
}

// AppendErrFile redirects stderr to path in append mode, creating the file
// if needed.
func (c *Command) AppendErrFile(path string) *Command {
	if !c.check() {
		return c
	}
	d, err := descriptor.Append(path)
	if err != nil {
		return c.fail(err)
	}
	return c.Err(d)
}

// CaptureErr routes stderr through a pipe into buf, mirroring CaptureOut.
func (c *Command) CaptureErr(buf *string) *Command {
	if !c.check() {
		return c
	}
	rd, wr, err := descriptor.NewPipe()
	if err != nil {
		return c.fail(err)
	}
	c.last().SetStderr(wr)
	c.setErrCapture(&capture{rd: rd, buf: buf})
	return c
}

// In redirects the first process's stdin to the given descriptor.
func (c *Command) In(d *descriptor.Descriptor) *Command {
	if !c.check() {
		return c
	}
	c.first().SetStdin(d)
	return c
}

// InFile redirects stdin to read from path.
func (c *Command) InFile(path string) *Command {
	if !c.check() {
		return c
	}
	d, err := descriptor.Open(path)
	if err != nil {
		return c.fail(err)
	}
	return c.In(d)
}

// InString feeds s to the first process's stdin through a pipe. The whole
// string is written and the write end closed here, at build time, so the
// input must fit the OS pipe buffer; larger inputs would deadlock before
// the child ever starts reading.
func (c *Command) InString(s string) *Command {
	if !c.check() {
		return c
	}
	rd, wr, err := descriptor.NewPipe()
	if err != nil {
		return c.fail(err)
	}
	if err := wr.WriteString(s); err != nil {
		return c.fail(err)
	}
	if err := wr.Close(); err != nil {
		return c.fail(err)
	}
	return c.In(rd)
}

// ErrToOut points the last process's stderr at the same descriptor as its
// stdout. No pipe is created; the two slots intentionally alias, the one
// sanctioned exception to exclusive slot ownership.
func (c *Command) ErrToOut() *Command {
	if !c.check() {
		return c
	}
	c.setErrCapture(nil)
	c.last().SetStderr(c.last().Stdout())
	return c
}

// OutToErr points the last process's stdout at the same descriptor as its
// stderr, mirroring ErrToOut.
func (c *Command) OutToErr() *Command {
	if !c.check() {
		return c
	}
	c.setOutCapture(nil)
	c.last().SetStdout(c.last().Stderr())
	return c
}
