package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"voxform/pkg/affine"
	"voxform/pkg/config"
	"voxform/pkg/flirt"
	"voxform/pkg/volume"
)

const usageText = `voxform - affine transform calculator for volumetric images

Operations (-op):
  compose      Build an affine from -scales, -offsets, -rotations
  decompose    Split an affine into scales, offsets and rotations
  invert       Invert an affine
  concat       Multiply two or more affines left to right
  rmsdev       RMS deviation between two affines
  bounds       World-space bounds of a voxel grid (-shape) under an affine
  flirt2sform  Convert a FLIRT matrix to a source-voxel-to-ref-world affine
  sform2flirt  Convert shared-world sforms to a FLIRT matrix

Matrices are read from the positional arguments as FLIRT-format text files
(sixteen whitespace-separated numbers); "-" reads from standard input.
`

func main() {
	op := flag.String("op", "", "Operation to perform (see below)")
	configPath := flag.String("config", "voxform.yaml", "Path to YAML configuration file")
	scales := flag.String("scales", "1,1,1", "Scale factors, x,y,z (compose)")
	offsets := flag.String("offsets", "0,0,0", "Offsets, x,y,z (compose)")
	rotations := flag.String("rotations", "0,0,0", "Rotations about x,y,z in radians (compose)")
	rotOrigin := flag.String("rotation-origin", "", "Origin of rotation, x,y,z (compose; default 0,0,0)")
	shape := flag.String("shape", "", "Voxel grid shape, nx,ny,nz (bounds)")
	srcShape := flag.String("src-shape", "", "Source image shape, nx,ny,nz (flirt ops)")
	refShape := flag.String("ref-shape", "", "Reference image shape, nx,ny,nz (flirt ops)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText+"\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *op == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Output.Verbose {
		log.Printf("operation: %s", *op)
	}

	switch *op {
	case "compose":
		err = runCompose(cfg, *scales, *offsets, *rotations, *rotOrigin)
	case "decompose":
		err = runDecompose(cfg, flag.Args())
	case "invert":
		err = runInvert(cfg, flag.Args())
	case "concat":
		err = runConcat(cfg, flag.Args())
	case "rmsdev":
		err = runRMSDev(cfg, flag.Args())
	case "bounds":
		err = runBounds(cfg, *shape, flag.Args())
	case "flirt2sform":
		err = runFlirtToSform(cfg, *srcShape, *refShape, flag.Args())
	case "sform2flirt":
		err = runSformToFlirt(cfg, *srcShape, *refShape, flag.Args())
	default:
		log.Fatalf("Unknown operation: %s", *op)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", *op, err)
	}
}

func runCompose(cfg *config.Config, scales, offsets, rotations, rotOrigin string) error {
	s, err := parseTriple(scales)
	if err != nil {
		return fmt.Errorf("bad -scales: %w", err)
	}
	o, err := parseTriple(offsets)
	if err != nil {
		return fmt.Errorf("bad -offsets: %w", err)
	}
	r, err := parseTriple(rotations)
	if err != nil {
		return fmt.Errorf("bad -rotations: %w", err)
	}

	var origin *affine.Vec3
	if rotOrigin != "" {
		v, err := parseTriple(rotOrigin)
		if err != nil {
			return fmt.Errorf("bad -rotation-origin: %w", err)
		}
		origin = &v
	}

	printMatrix(cfg, affine.Compose(s, o, r, origin))
	return nil
}

func runDecompose(cfg *config.Config, args []string) error {
	xform, err := readOneMatrix(args)
	if err != nil {
		return err
	}

	scales, offsets, rots := affine.Decompose(xform)
	printTriple(cfg, "scales", scales)
	printTriple(cfg, "offsets", offsets)
	printTriple(cfg, "rotations", rots)
	return nil
}

func runInvert(cfg *config.Config, args []string) error {
	xform, err := readOneMatrix(args)
	if err != nil {
		return err
	}

	inv, err := affine.Invert(xform)
	if err != nil {
		return err
	}
	printMatrix(cfg, inv)
	return nil
}

func runConcat(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("concat requires at least two matrix files")
	}

	xforms := make([]*mat.Dense, len(args))
	for i, arg := range args {
		m, err := readMatrixArg(arg)
		if err != nil {
			return err
		}
		xforms[i] = m
	}

	printMatrix(cfg, affine.Concat(xforms...))
	return nil
}

func runRMSDev(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("rmsdev requires exactly two matrix files")
	}

	t1, err := readMatrixArg(args[0])
	if err != nil {
		return err
	}
	t2, err := readMatrixArg(args[1])
	if err != nil {
		return err
	}

	dev, err := affine.RMSDeviationAbout(t1, t2, cfg.RMS.Radius, cfg.RMS.Centre)
	if err != nil {
		return err
	}

	fmt.Printf("%.*f\n", cfg.Output.Precision, dev)
	return nil
}

func runBounds(cfg *config.Config, shapeArg string, args []string) error {
	shape, err := parseShape(shapeArg)
	if err != nil {
		return fmt.Errorf("bad -shape: %w", err)
	}

	xform, err := readOneMatrix(args)
	if err != nil {
		return err
	}

	opts := cfg.BoundsOptions()
	lo, hi, err := affine.AxisBounds(shape, xform, &opts)
	if err != nil {
		return err
	}

	for i := range lo {
		fmt.Printf("axis %d: %.*f %.*f\n",
			i, cfg.Output.Precision, lo[i], cfg.Output.Precision, hi[i])
	}
	return nil
}

func runFlirtToSform(cfg *config.Config, srcShape, refShape string, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("flirt2sform requires <srcSform> <refSform> <flirtMat>")
	}

	src, ref, err := readGeometries(srcShape, refShape, args[0], args[1])
	if err != nil {
		return err
	}
	flirtMat, err := readMatrixArg(args[2])
	if err != nil {
		return err
	}

	sform, err := flirt.MatrixToSform(flirtMat, src, ref)
	if err != nil {
		return err
	}
	printMatrix(cfg, sform)
	return nil
}

func runSformToFlirt(cfg *config.Config, srcShape, refShape string, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("sform2flirt requires <srcSform> <refSform> [srcSformOverride]")
	}

	src, ref, err := readGeometries(srcShape, refShape, args[0], args[1])
	if err != nil {
		return err
	}

	var override *mat.Dense
	if len(args) == 3 {
		override, err = readMatrixArg(args[2])
		if err != nil {
			return err
		}
	}

	flirtMat, err := flirt.SformToMatrix(src, ref, override)
	if err != nil {
		return err
	}
	printMatrix(cfg, flirtMat)
	return nil
}

func readGeometries(srcShape, refShape, srcPath, refPath string) (src, ref *volume.Geometry, err error) {
	srcDims, err := parseShape(srcShape)
	if err != nil {
		return nil, nil, fmt.Errorf("bad -src-shape: %w", err)
	}
	refDims, err := parseShape(refShape)
	if err != nil {
		return nil, nil, fmt.Errorf("bad -ref-shape: %w", err)
	}

	srcXform, err := readMatrixArg(srcPath)
	if err != nil {
		return nil, nil, err
	}
	refXform, err := readMatrixArg(refPath)
	if err != nil {
		return nil, nil, err
	}

	src, err = volume.New(srcDims, srcXform)
	if err != nil {
		return nil, nil, err
	}
	ref, err = volume.New(refDims, refXform)
	if err != nil {
		return nil, nil, err
	}
	return src, ref, nil
}

// readOneMatrix reads a single matrix from the positional arguments,
// defaulting to standard input when none are given.
func readOneMatrix(args []string) (*mat.Dense, error) {
	switch len(args) {
	case 0:
		return flirt.ReadMatrix(os.Stdin)
	case 1:
		return readMatrixArg(args[0])
	default:
		return nil, fmt.Errorf("expected one matrix file, got %d", len(args))
	}
}

func readMatrixArg(path string) (*mat.Dense, error) {
	if path == "-" {
		return flirt.ReadMatrix(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := flirt.ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func parseTriple(s string) (affine.Vec3, error) {
	var v affine.Vec3

	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return v, fmt.Errorf("expected three comma-separated values, got %q", s)
	}
	for i, field := range fields {
		val, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return v, fmt.Errorf("bad value %q", field)
		}
		v[i] = val
	}
	return v, nil
}

func parseShape(s string) ([3]int, error) {
	var shape [3]int

	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return shape, fmt.Errorf("expected three comma-separated extents, got %q", s)
	}
	for i, field := range fields {
		val, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || val <= 0 {
			return shape, fmt.Errorf("bad extent %q", field)
		}
		shape[i] = val
	}
	return shape, nil
}

func printMatrix(cfg *config.Config, m *mat.Dense) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sep := "  "
			if j == cols-1 {
				sep = "\n"
			}
			fmt.Printf("%.*f%s", cfg.Output.Precision, m.At(i, j), sep)
		}
	}
}

func printTriple(cfg *config.Config, name string, v affine.Vec3) {
	fmt.Printf("%-10s %.*f %.*f %.*f\n", name,
		cfg.Output.Precision, v[0],
		cfg.Output.Precision, v[1],
		cfg.Output.Precision, v[2])
}
