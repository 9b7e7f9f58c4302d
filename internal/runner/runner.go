package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"stackvm/internal/config"
	"stackvm/pkg/color"
	"stackvm/pkg/image"
	"stackvm/pkg/interpreter"
	"stackvm/pkg/isa"
	"stackvm/pkg/loader"
	"stackvm/pkg/samples"
	"stackvm/pkg/source"
)

type Runner struct {
	Help        bool      // Show help message
	Verbose     bool      // Enable debug logging, including every executed step
	NoColor     bool      // Disable colored output
	ConfigFile  string    // Path to stackvm.toml (searched for when empty)
	Trace       bool      // Print an execution trace table
	Listing     bool      // Print the loaded program before running it
	Sample      string    // Run a built-in sample instead of SourceFile
	SourceFile  string    // Path to the program (source text, or an image with ImageInput)
	ImageInput  bool      // SourceFile is an encoded image
	OutputImage string    // Write the loaded image to this path
	MaxSteps    int       // Step budget, negative to use the configured value
	RequireExit bool      // Fault when the program ends without EXIT
	Alias       bool      // Use stack-aliased variables
	Out         io.Writer // Report destination, stdout when nil
}

// Run loads the program, optionally lists or encodes it, executes it and reports the outcome.
func (r *Runner) Run() error {
	if r.Out == nil {
		r.Out = os.Stdout
	}

	cfg, err := r.config()
	if err != nil {
		return err
	}

	if !cfg.Output.Color {
		color.EnableColor(false)
	}

	img, err := r.load()
	if err != nil {
		return err
	}

	if cfg.Output.Listing {
		fmt.Fprintln(r.Out, color.GreenText("=== Program ==="))
		image.Listing(img, r.Out)
	}

	if r.OutputImage != "" {
		if err := writeImage(img, r.OutputImage); err != nil {
			return err
		}
		log.Info("Wrote image", "file", r.OutputImage, "instructions", img.Len())
	}

	opts := cfg.Options()

	var trace *interpreter.TraceTable
	var tracers []interpreter.Tracer
	if cfg.Output.Trace {
		trace = &interpreter.TraceTable{Limit: cfg.Output.TraceLimit}
		tracers = append(tracers, trace)
	}
	if r.Verbose {
		tracers = append(tracers, interpreter.LogTracer{})
	}
	if len(tracers) > 0 {
		opts = append(opts, interpreter.WithTracer(interpreter.TracerFunc(func(e interpreter.Event) {
			for _, t := range tracers {
				t.Trace(e)
			}
		})))
	}

	log.Debug("Executing program", "instructions", img.Len(), "variables", cfg.VM.Variables, "max_steps", cfg.VM.MaxSteps)
	res, runErr := interpreter.Exec(img, opts...)

	fmt.Fprintln(r.Out, color.GreenText("=== Program Output ==="))
	for _, v := range res.Values {
		fmt.Fprintf(r.Out, "Result: %s\n", color.CyanText(fmt.Sprintf("%d", v)))
	}

	if trace != nil && len(trace.Events()) > 0 {
		fmt.Fprintln(r.Out, color.GreenText("\n=== Trace ==="))
		trace.Render(r.Out)
	}

	if runErr != nil {
		fmt.Fprintln(r.Out, color.BrightRedText("\n=== Execution Fault ==="))
		fmt.Fprintln(r.Out, color.Error(runErr.Error()))
		if errors.Is(runErr, interpreter.ErrMaxStepsExceeded) {
			fmt.Fprintln(r.Out, color.GrayText("The program did not halt; raise max_steps (-m) if it is expected to run longer."))
		}
		return fmt.Errorf("execution failed: %w", runErr)
	}

	how := "ran off the end"
	if res.Exited {
		how = "exited"
	}
	fmt.Fprintln(r.Out, color.Success(fmt.Sprintf("program %s after %d steps", how, res.Steps)))
	return nil
}

// config reads the configuration file and applies flag overrides
func (r *Runner) config() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if r.ConfigFile != "" {
		cfg, err = config.Load(r.ConfigFile)
	} else {
		dir := "."
		if r.SourceFile != "" {
			dir = filepath.Dir(r.SourceFile)
		}
		cfg, err = config.FindAndLoad(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	if cfg.Path != "" {
		log.Info("Using configuration", "file", cfg.Path)
	}

	if r.MaxSteps >= 0 {
		cfg.VM.MaxSteps = r.MaxSteps
	}
	if r.RequireExit {
		cfg.VM.RequireExit = true
	}
	if r.Alias {
		cfg.VM.Variables = interpreter.StackAlias.String()
	}
	if r.Trace {
		cfg.Output.Trace = true
	}
	if r.Listing {
		cfg.Output.Listing = true
	}
	if r.NoColor {
		cfg.Output.Color = false
	}

	return cfg, cfg.Validate()
}

// load produces the program image from a sample, an image file or a source file
func (r *Runner) load() (*image.Image, error) {
	switch {
	case r.Sample != "":
		lines, ok := samples.Lookup(r.Sample)
		if !ok {
			return nil, fmt.Errorf("unknown sample %q (available: %s)", r.Sample, strings.Join(samples.Names(), ", "))
		}
		log.Info("Loading sample", "name", r.Sample)
		return r.loadLines(source.FromLines(lines))

	case r.SourceFile == "":
		return nil, errors.New("no input file provided")

	case r.ImageInput:
		log.Info("Loading image", "file", r.SourceFile)
		data, err := os.ReadFile(r.SourceFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", r.SourceFile, err)
		}
		img, err := image.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.SourceFile, err)
		}
		return img, nil

	default:
		log.Info("Loading program", "file", r.SourceFile)
		listing, err := source.ReadFile(r.SourceFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", r.SourceFile, err)
		}
		return r.loadLines(listing)
	}
}

func (r *Runner) loadLines(listing source.Listing) (*image.Image, error) {
	img, err := loader.Load(listing.Lines, isa.DefaultCatalog())
	if err == nil {
		return img, nil
	}

	fmt.Fprintln(r.Out, color.BrightRedText("=== Load Error ==="))

	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) && loadErr.Index >= 0 {
		fmt.Fprintln(r.Out, color.ErrorWithPosition(listing.SourceLine(loadErr.Index), loadErr.Err.Error(), loadErr.Text))
	} else {
		fmt.Fprintln(r.Out, color.Error(err.Error()))
	}

	return nil, fmt.Errorf("loading failed: %w", err)
}

func writeImage(img *image.Image, path string) error {
	data, err := image.Marshal(img)
	if err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
