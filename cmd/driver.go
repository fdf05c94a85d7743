// Package cmd is the top-level "driver" package for the falsec compiler: it
// contains the functionality for parsing command-line arguments, managing
// compiler state, and running the phases of the compiler.
package cmd

// RunCompiler is the main entry point for the falsec compiler.  This should be
// called directly from main.
func RunCompiler() int {
	c := NewCompilerFromArgs()

	if !c.Compile() {
		return 1
	}

	return 0
}
