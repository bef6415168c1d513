package descriptor

import (
	"os"

	"github.com/kbukum/subprocess/errors"
)

// NewPipe creates an OS pipe and returns its read and write ends, already
// linked to each other. Both ends are close-on-exec, so a spawned child
// only ever inherits the end explicitly placed into one of its standard
// slots.
func NewPipe() (r, w *Descriptor, err error) {
	rf, wf, err := os.Pipe()
	if err != nil {
		return nil, nil, errors.OS("pipe", err)
	}
	r = &Descriptor{file: rf, kind: PipeRead}
	w = &Descriptor{file: wf, kind: PipeWrite}
	if err := Link(r, w); err != nil {
		return nil, nil, err
	}
	return r, w, nil
}
