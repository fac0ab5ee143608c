// Package deps reports whether the external tools the pipeline shells out to
// are installed and capable.
package deps
