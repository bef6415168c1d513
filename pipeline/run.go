package pipeline

import (
	"context"
	"strings"

	"github.com/kbukum/subprocess/errors"
	"github.com/kbukum/subprocess/logger"
)

// Status runs the pipeline and returns the last process's exit code, the
// no-throw entry point. Spawn order is left to right; capture pipes are
// drained after every spawn and before any wait, so a writing child never
// blocks on a full pipe while the driver is stuck in an earlier wait.
//
// Only the last process's status is observed, mirroring shell $?. On a
// spawn failure mid-pipeline, already-spawned processes are left running;
// the error reports which stage failed.
func (c *Command) Status(ctx context.Context) (int, error) {
	if c.err != nil {
		return -1, c.err
	}
	if len(c.procs) == 0 {
		return -1, errors.Usage("pipeline has no processes (already consumed by a pipe?)")
	}
	if err := ctx.Err(); err != nil {
		return -1, errors.OS("run", err)
	}

	log := c.log.WithContext(ctx).WithComponent("pipeline").WithFields(map[string]interface{}{
		logger.FieldPipelineID: c.id,
	})

	for i, p := range c.procs {
		if err := p.Execute(); err != nil {
			log.Error("spawn failed", map[string]interface{}{
				logger.FieldArgv:  strings.Join(p.Argv(), " "),
				logger.FieldStage: i,
				logger.FieldError: err.Error(),
			})
			return -1, err
		}
		log.Debug("process spawned", map[string]interface{}{
			logger.FieldArgv: strings.Join(p.Argv(), " "),
			logger.FieldPid:  p.Pid(),
		})
	}

	for _, cp := range []struct {
		stream string
		c      *capture
	}{{"stdout", c.outCap}, {"stderr", c.errCap}} {
		if cp.c == nil {
			continue
		}
		out, err := cp.c.rd.ReadAll()
		if err != nil {
			return -1, err
		}
		*cp.c.buf = out
		if err := cp.c.rd.Close(); err != nil {
			return -1, err
		}
		log.Debug("capture drained", map[string]interface{}{
			logger.FieldStream: cp.stream,
			logger.FieldSize:   len(out),
		})
	}

	code := 0
	for _, p := range c.procs {
		res, err := p.Wait()
		if err != nil {
			return -1, err
		}
		code = res.ExitCode
		log.Debug("process exited", map[string]interface{}{
			logger.FieldPid:      res.Pid,
			logger.FieldExitCode: res.ExitCode,
			logger.FieldDuration: res.Duration.Milliseconds(),
		})
	}
	return code, nil
}

// Run runs the pipeline and fails fast: a non-zero final exit code becomes
// an errors.CommandExit error carrying that code.
func (c *Command) Run(ctx context.Context) error {
	code, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.CommandExit(code)
	}
	return nil
}
