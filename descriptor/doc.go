// Package descriptor models the I/O endpoints a pipeline wires between
// processes: standard streams, opened files, and the two ends of an OS pipe.
//
// A Descriptor owns its backing *os.File exclusively; assigning one into a
// process slot transfers that ownership. The two ends of a pipe are "linked"
// to each other so that consuming one end can also close the other without
// the caller tracking pairs by hand.
//
// The three standard streams are process-wide singletons and are never
// closed by pipeline machinery.
package descriptor
