package process

import "time"

// Result holds the status of a completed subprocess.
type Result struct {
	// ExitCode is the normalized process exit code.
	ExitCode int
	// Pid is the OS process id the child ran under.
	Pid int
	// Duration is how long the process ran.
	Duration time.Duration
}
