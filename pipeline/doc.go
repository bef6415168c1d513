// Package pipeline composes external processes into shell-style pipelines:
// cmd1 | cmd2 > file. A Command is built purely as a description: chaining
// and redirection only rewire descriptor slots, and nothing is spawned
// until Run or Status.
//
// The two entry points mirror shell semantics. Status returns the last
// process's exit code, like $?; earlier-stage failures are deliberately not
// observed, so "false | true" reports success. Run converts a non-zero
// final code into an errors.CommandExit error.
//
//	var out string
//	err := pipeline.New("ps aux").
//		PipeCmd("awk '{print $2}'").
//		PipeCmd("sort").
//		CaptureOut(&out).
//		Run(ctx)
package pipeline
