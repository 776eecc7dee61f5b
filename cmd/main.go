package main

import (
	"flag"
	"fmt"
	"os"

	"minic/internal/compiler"
	"minic/internal/logger"
	"minic/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the minic toolchain.
func main() {
	options := compiler.Compiler{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.ShouldInterpret, "r", false, "Run with interpreter")
	flag.BoolVar(&options.ShouldCompile, "c", false, "Compile to Jasmin assembly")
	flag.BoolVar(&options.ShouldBuild, "b", false, "Compile and run the configured assembler")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.OutputDir, "o", "", "Output directory for .j files (default from config, else .)")
	flag.StringVar(&options.ClassName, "class", "", "Generated class name (default derived from the input file)")
	flag.StringVar(&options.ConfigFile, "config", "", "Path to a minic.yml config file")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <program.yml>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}
	if !options.ShouldInterpret && !options.ShouldCompile && !options.ShouldBuild {
		options.ShouldInterpret = true
	}

	options.SourceFile = args[0]

	err := options.Compile()
	if err != nil {
		log.Fatal("Compilation failed", "error", err)
	}
}
