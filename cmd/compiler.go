package cmd

import (
	"bufio"
	"os"

	"falsec/ast"
	"falsec/generate"
	"falsec/report"
	"falsec/syntax"
)

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// The path to the FALSE source file being compiled.
	inputPath string

	// The path to write the LLVM IR module to.
	outputPath string
}

// NewCompiler creates a new compiler for the given input and output paths.
func NewCompiler(inputPath, outputPath string) *Compiler {
	return &Compiler{
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

// Compile runs the compilation pipeline: parse, generate, output.  It returns
// whether compilation succeeded.
func (c *Compiler) Compile() bool {
	program, ok := c.parse()
	if !ok {
		return false
	}

	report.ReportInfo("Parsed AST")

	mod := generate.NewGenerator().Generate(program)

	if err := os.WriteFile(c.outputPath, []byte(mod.String()), 0644); err != nil {
		report.ReportFatal("failed to write output: %s", err)
	}

	report.ReportInfo("Compiled to %s", c.outputPath)
	return true
}

// parse reads and parses the input file into its top-level statement sequence.
func (c *Compiler) parse() ([]ast.Node, bool) {
	file, err := os.Open(c.inputPath)
	if err != nil {
		report.ReportFatal("failed to open input: %s", err)
	}
	defer file.Close()

	program, err := syntax.NewParser(bufio.NewReader(file)).Parse()
	if err != nil {
		if cerr, ok := err.(*report.LocalCompileError); ok {
			report.ReportCompileError(c.inputPath, cerr.Span, cerr.Message)
		} else {
			report.ReportStdError(c.inputPath, err)
		}

		return nil, false
	}

	return program, true
}
