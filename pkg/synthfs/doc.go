// Package synthfs executes planned filesystem operations through the
// synthfs library.
//
// Install plans are lists of types.Operation values (create directory,
// copy file, write file). The executor converts them into synthfs
// operations, validates that every target stays below an allowed root,
// and runs them as a pipeline. Phases group operations that must complete
// before the next group starts, such as backing up a config directory
// before overwriting it.
package synthfs
