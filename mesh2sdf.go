package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mogaika/mesh2sdf/config"
	"github.com/mogaika/mesh2sdf/decomp"
	"github.com/mogaika/mesh2sdf/hull"
	"github.com/mogaika/mesh2sdf/mesh"
	"github.com/mogaika/mesh2sdf/sdf"
	"github.com/mogaika/mesh2sdf/utils"
	"github.com/mogaika/mesh2sdf/web"
)

func main() {
	defaults := config.Default()

	var outPath, paramsPath, vhacdPath, addr, webPath string
	var scale, density, minVolume, concavity, alpha, beta float64
	var resolution, maxHulls, maxVerts, planeDownsampling, hullDownsampling int
	var timeout time.Duration
	var pca, preview, dump bool

	flag.StringVar(&outPath, "o", "", "Output descriptor path (default: <mesh minus ext>.sdf next to the mesh)")
	flag.Float64Var(&scale, "scale", 1.0, "Scale factor converting mesh coordinates to meters")
	flag.Float64Var(&density, "density", 2000, "Assumed density in kg/m^3, for inertia calculation")
	flag.StringVar(&paramsPath, "params", "", "Yaml file with decomposition parameter overrides")
	flag.StringVar(&vhacdPath, "vhacd", decomp.DefaultExecutable, "Name or path of the vhacd executable")
	flag.DurationVar(&timeout, "timeout", decomp.DefaultTimeout, "Decomposition timeout")
	flag.IntVar(&resolution, "resolution", defaults.Resolution, "Voxel resolution")
	flag.IntVar(&maxHulls, "maxhulls", defaults.MaxHulls, "Max number of convex hulls")
	flag.IntVar(&maxVerts, "maxverts", defaults.MaxVertsPerHull, "Max vertices per convex hull")
	flag.Float64Var(&minVolume, "minvolume", defaults.MinVolumePerHull, "Min volume per convex hull")
	flag.Float64Var(&concavity, "concavity", defaults.Concavity, "Max allowed concavity")
	flag.IntVar(&planeDownsampling, "planedownsampling", defaults.PlaneDownsampling, "Plane downsampling")
	flag.IntVar(&hullDownsampling, "hulldownsampling", defaults.HullDownsampling, "Convex hull downsampling")
	flag.Float64Var(&alpha, "alpha", defaults.Alpha, "Symmetry plane clipping bias")
	flag.Float64Var(&beta, "beta", defaults.Beta, "Revolution axis clipping bias")
	flag.BoolVar(&pca, "pca", defaults.PCA, "Normalize mesh along principal axes")
	flag.BoolVar(&preview, "preview", false, "Open the inspection server after writing")
	flag.StringVar(&addr, "addr", ":8000", "Inspection server address (with -preview)")
	flag.StringVar(&webPath, "web", "web", "Path to web resources (with -preview)")
	flag.BoolVar(&dump, "dump", false, "Dump post-processed hulls to the log")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mesh file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	meshPath := flag.Arg(0)

	params := defaults
	if paramsPath != "" {
		var err error
		if params, err = config.LoadParams(paramsPath); err != nil {
			log.Fatal(err)
		}
	}
	// explicit flags win over the params file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "resolution":
			params.Resolution = resolution
		case "maxhulls":
			params.MaxHulls = maxHulls
		case "maxverts":
			params.MaxVertsPerHull = maxVerts
		case "minvolume":
			params.MinVolumePerHull = minVolume
		case "concavity":
			params.Concavity = concavity
		case "planedownsampling":
			params.PlaneDownsampling = planeDownsampling
		case "hulldownsampling":
			params.HullDownsampling = hullDownsampling
		case "alpha":
			params.Alpha = alpha
		case "beta":
			params.Beta = beta
		case "pca":
			params.PCA = pca
		}
	})
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	decomposer, err := decomp.FindVHACD(vhacdPath)
	if err != nil {
		log.Fatal(err)
	}
	decomposer.Timeout = timeout

	m, err := mesh.Load(meshPath, scale)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Loaded %q: %d vertices, %d faces, scale %g", meshPath, len(m.Vertices), len(m.Faces), scale)

	raw, err := decomposer.Decompose(context.Background(), m, params)
	if err != nil {
		log.Fatal(err)
	}

	hulls, err := hull.PostProcess(raw, m.BoundsVolume())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Kept %d of %d hulls after post-processing", len(hulls), len(raw))
	if dump {
		utils.LogDump(hulls)
	}

	descriptor, err := sdf.Assemble(m, hulls, density)
	if err != nil {
		log.Fatal(err)
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(meshPath, filepath.Ext(meshPath)) + ".sdf"
	}
	if err := descriptor.Write(outPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %q with %d collision pieces", outPath, len(descriptor.Parts))

	if preview {
		scene, err := web.LoadScene(outPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := web.StartServer(addr, scene, webPath); err != nil {
			log.Fatal(err)
		}
	}
}
