package descriptor

import "os"

// The standard stream singletons are constructed once at startup and handed
// out by reference. Close is a no-op on them.
var (
	stdin  = &Descriptor{file: os.Stdin, kind: Std}
	stdout = &Descriptor{file: os.Stdout, kind: Std}
	stderr = &Descriptor{file: os.Stderr, kind: Std}
)

// Stdin returns the process-wide standard input descriptor.
func Stdin() *Descriptor { return stdin }

// Stdout returns the process-wide standard output descriptor.
func Stdout() *Descriptor { return stdout }

// Stderr returns the process-wide standard error descriptor.
func Stderr() *Descriptor { return stderr }
