// Package results loads model prediction files from disk.
package results
