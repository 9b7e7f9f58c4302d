package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"stackvm/internal/logger"
	"stackvm/internal/runner"
	"stackvm/pkg/color"
	"stackvm/pkg/samples"
)

// Main entry point for the stackvm interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode (logs every executed step)")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.ConfigFile, "c", "", "Configuration file (default: nearest stackvm.toml)")
	flag.BoolVar(&options.Trace, "t", false, "Print an execution trace")
	flag.BoolVar(&options.Listing, "l", false, "Print the loaded program")
	flag.StringVar(&options.Sample, "s", "", "Run a built-in sample ("+strings.Join(samples.Names(), ", ")+")")
	flag.BoolVar(&options.ImageInput, "i", false, "Input file is an encoded image")
	flag.StringVar(&options.OutputImage, "o", "", "Write the loaded program as an encoded image")
	flag.IntVar(&options.MaxSteps, "m", -1, "Maximum steps, 0 for unlimited (default: from configuration)")
	flag.BoolVar(&options.RequireExit, "x", false, "Fail when the program ends without EXIT")
	flag.BoolVar(&options.Alias, "alias", false, "Bind variables to stack slots instead of separate storage")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 && options.Sample == "" {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	if len(args) > 0 {
		options.SourceFile = args[0]
	}

	if err := options.Run(); err != nil {
		log.Fatal("Run failed", "error", err)
	}
}
