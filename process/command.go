package process

import (
	shellwords "github.com/mattn/go-shellwords"

	"github.com/kbukum/subprocess/errors"
)

// Tokenize splits a raw command line into an argument vector using
// shell-style word splitting. Quotes and escapes are honored; no variable
// expansion or globbing is performed.
func Tokenize(cmdline string) ([]string, error) {
	argv, err := shellwords.Parse(cmdline)
	if err != nil {
		return nil, errors.Usage("cannot tokenize command line").WithCause(err)
	}
	if len(argv) == 0 {
		return nil, errors.Usage("empty command line")
	}
	return argv, nil
}
