// Package observe provides observability primitives for HTTP request
// execution.
//
// It is a pure instrumentation library: no transport, no retry logic, no
// I/O beyond exporter setup. The execute package wires an Observer into its
// attempt loop; nothing here is required for correctness.
package observe
