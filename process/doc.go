// Package process models one external program invocation: an argument
// vector, three descriptor slots defaulting to the standard streams, and a
// Built -> Spawned -> Waited lifecycle.
//
// Execute is a one-way transition. After a successful spawn the parent
// closes its copies of any pipe ends wired into the slots, since the child
// now holds duplicates; without this, pipe readers would never see EOF.
package process
