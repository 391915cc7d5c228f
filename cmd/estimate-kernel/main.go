/*
This command-line tool estimates a blur kernel (and, optionally, a
sharp image) from a single blurry input, using multiscale L0-regularized
blind deconvolution.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/planetlabs/deblur/deblur"
	"github.com/planetlabs/deblur/imageio"
	"github.com/planetlabs/deblur/pyramid"
	"github.com/planetlabs/deblur/rimg"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, path.Base(os.Args[0]), "[flags] ks input output")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Estimates a blur kernel of size ks x ks from a blurry input image.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
}

var (
	lambda             = flag.Float64("lambda", 4e-3, "initial L0 weight")
	lambdaRatio        = flag.Float64("lambda-ratio", 0.909, "per-iteration lambda decay factor")
	lambdaMin          = flag.Float64("lambda-min", 1e-4, "floor for lambda")
	gamma              = flag.Float64("gamma", 20, "kernel Tikhonov weight")
	iterations         = flag.Int("iterations", 5, "outer iterations per scale")
	noMultiscale       = flag.Bool("no-multiscale", false, "disable the Gaussian pyramid, estimate at full resolution only")
	scaleFactor        = flag.Float64("scale-factor", 0.5, "downsampling ratio per pyramid level")
	kernelThresholdMax = flag.Float64("kernel-threshold-max", 0.05, "relative threshold applied to the kernel")
	removeIsolated     = flag.Bool("remove-isolated", true, "prune isolated connected components from the kernel")
	outputSharp        = flag.String("output-sharp", "", "also write the final sharp image to this path")
	debugDir           = flag.String("debug", "", "write per-iteration u/v/k debug TIFFs to this directory")
	verbose            = flag.Bool("verbose", false, "log progress to stderr")
)

func main() {
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}

	ks, err := strconv.Atoi(flag.Arg(0))
	if err != nil || ks < 3 || ks%2 == 0 {
		fmt.Fprintln(os.Stderr, "ks: must be an odd integer >= 3")
		os.Exit(1)
	}
	inputPath, outputPath := flag.Arg(1), flag.Arg(2)

	opts := deblur.Options{
		KS:                 ks,
		Lambda:             float32(*lambda),
		LambdaRatio:        float32(*lambdaRatio),
		LambdaMin:          float32(*lambdaMin),
		Gamma:              float32(*gamma),
		Iterations:         *iterations,
		Multiscale:         !*noMultiscale,
		ScaleFactor:        *scaleFactor,
		KernelThresholdMax: float32(*kernelThresholdMax),
		RemoveIsolated:     *removeIsolated,
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	resampleOpts := pyramid.DefaultResampleOptions()
	if v := os.Getenv("MAGIC_SIGMA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "MAGIC_SIGMA:", err)
			os.Exit(1)
		}
		resampleOpts.MagicSigma = f
	}
	if v := os.Getenv("PRESMOOTH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "PRESMOOTH:", err)
			os.Exit(1)
		}
		resampleOpts.Presmooth = f
	}

	if *verbose {
		log.Printf("reading %s", inputPath)
	}
	raw, err := imageio.ReadImage(inputPath)
	if err != nil {
		log.Fatal(err)
	}

	v, err := deblur.Preprocess(raw, ks)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("preprocessed to %dx%d", v.W, v.H)
	}

	var sink deblur.DebugSink
	if *debugDir != "" {
		if err := os.MkdirAll(*debugDir, 0o755); err != nil {
			log.Fatal(err)
		}
		sink = &tiffDebugSink{dir: *debugDir, verbose: *verbose}
	}

	k, u, err := pyramid.Run(v, &opts, sink, resampleOpts)
	if err != nil {
		log.Fatal(err)
	}

	if err := imageio.WriteKernelMatrix(outputPath, k); err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("wrote kernel to %s", outputPath)
	}

	if *outputSharp != "" {
		if err := imageio.WriteImage(*outputSharp, u); err != nil {
			log.Fatal(err)
		}
		if *verbose {
			log.Printf("wrote sharp image to %s", *outputSharp)
		}
	}
}

// tiffDebugSink is the --debug flag's DebugSink: it writes v, u and k
// as TIFFs named by the caller-supplied iteration counter, the
// filesystem concern deblur.DebugSink exists to keep out of the core.
type tiffDebugSink struct {
	dir     string
	verbose bool
}

func (s *tiffDebugSink) Dump(iteration int, v, u, k *rimg.Image[float32]) {
	for name, im := range map[string]*rimg.Image[float32]{"v": v, "u": u, "k": k} {
		path := filepath.Join(s.dir, fmt.Sprintf("%s_%03d.tiff", name, iteration))
		if err := imageio.WriteDebugTIFF(path, im); err != nil {
			log.Println(err)
			continue
		}
		if s.verbose {
			log.Printf("wrote %s", path)
		}
	}
}
