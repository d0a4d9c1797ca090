// Package binfmt extracts the shared libraries a compiled binary requires at
// load time.
//
// Files are first classified by their leading magic bytes into a short tag
// (for example "ELF 64-bit LSB"). A Registry maps tag patterns to Inspector
// factories; the default registry knows ELF and Mach-O.
//
// # Usage
//
//	reg := binfmt.DefaultRegistry(nil)
//	libs, err := reg.ListRequiredLibraries("/usr/bin/curl")
//
// The registry itself implements Inspector, dispatching every path to the
// inspector registered for its format.
//
// # Errors
//
// ParseError is returned for files that look like a supported format but
// cannot be parsed (truncated, corrupt headers). UnsupportedFormatError is
// returned for files whose format has no registered inspector. A statically
// linked binary is not an error: it yields an empty list.
package binfmt
