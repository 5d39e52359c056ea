// Command um32 is a reference runner for the package
// github.com/um32vm/um32/um.
//
// Usage:
//
//	um32 [flags] image
//
//	-cow
//	      use copy-on-write array storage
//	-trace path
//	      write one byte per executed opcode to path
//	-branch-predict
//	      enable speculative branch prediction (optimization only)
//	-debug
//	      dump registers and finger on fatal error
//
// image is the path to a UM-32 program image: a sequence of 32-bit
// big-endian words with no header. Exit code 0 on successful halt,
// nonzero on a malformed image or a runtime fatal error.
package main
