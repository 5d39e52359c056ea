// Package um implements the UM-32 Universal Machine: a stack-less
// register virtual machine with a flat heap of dynamically allocated
// integer arrays.
//
// An Instance owns eight registers, an execution finger into array 0,
// and a heap of handle-addressed arrays. Load an initial program with
// Load, build an Instance with New, and drive it with Run.
//
// The VM is single-threaded: an Instance must not be shared across
// goroutines while Run is executing.
package um
