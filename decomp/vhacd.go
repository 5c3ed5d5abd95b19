package decomp

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/mesh2sdf/config"
	"github.com/mogaika/mesh2sdf/mesh"
)

const DefaultExecutable = "testVHACD"

const DefaultTimeout = 10 * time.Minute

// VHACD shells out to the testVHACD binary, exchanging meshes through
// wavefront obj files in a temporary directory.
type VHACD struct {
	// Absolute path of the executable, resolved once at startup.
	Path    string
	Timeout time.Duration
}

// FindVHACD resolves the decomposition executable on PATH. Call this
// once at startup; a missing tool is a setup problem, not a
// per-conversion one.
func FindVHACD(executable string) (*VHACD, error) {
	if executable == "" {
		executable = DefaultExecutable
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		return nil, &DependencyMissingError{Executable: executable}
	}
	return NewVHACD(path), nil
}

func NewVHACD(path string) *VHACD {
	return &VHACD{Path: path, Timeout: DefaultTimeout}
}

func (v *VHACD) Decompose(ctx context.Context, m *mesh.Mesh, params config.Params) ([][]mgl64.Vec3, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	dir, err := ioutil.TempDir("", "mesh2sdf-vhacd-")
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create work directory")
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input.obj")
	outPath := filepath.Join(dir, "decomp.obj")
	logPath := filepath.Join(dir, "vhacd.log")

	inFile, err := os.Create(inPath)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create interchange mesh")
	}
	if err := m.WriteObj(inFile); err != nil {
		inFile.Close()
		return nil, errors.Wrapf(err, "Failed to write interchange mesh")
	}
	if err := inFile.Close(); err != nil {
		return nil, errors.Wrapf(err, "Failed to write interchange mesh")
	}

	ctx, cancel := context.WithTimeout(ctx, v.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, v.Path, v.arguments(inPath, outPath, logPath, params)...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	log.Printf("[decomp] Running %v", cmd.Args)
	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &DecompositionError{
			Reason: fmt.Sprintf("timed out after %v", v.Timeout),
			Output: output.String(),
			Err:    ctx.Err(),
		}
	}
	if runErr != nil {
		return nil, &DecompositionError{
			Reason: "tool exited with error",
			Output: output.String(),
			Err:    runErr,
		}
	}

	outFile, err := os.Open(outPath)
	if err != nil {
		return nil, &DecompositionError{
			Reason: "tool produced no output mesh",
			Output: output.String(),
			Err:    err,
		}
	}
	defer outFile.Close()

	raw, err := ParseHullObj(outFile)
	if err != nil {
		return nil, &DecompositionError{
			Reason: "failed to parse output mesh",
			Output: output.String(),
			Err:    err,
		}
	}
	if len(raw) == 0 {
		return nil, &DecompositionError{
			Reason: "tool produced zero hulls",
			Output: output.String(),
		}
	}

	log.Printf("[decomp] Tool returned %d raw hulls", len(raw))
	return raw, nil
}

func (v *VHACD) arguments(inPath, outPath, logPath string, p config.Params) []string {
	pca := 0
	if p.PCA {
		pca = 1
	}
	return []string{
		"--input", inPath,
		"--output", outPath,
		"--log", logPath,
		"--resolution", fmt.Sprintf("%d", p.Resolution),
		"--maxhulls", fmt.Sprintf("%d", p.MaxHulls),
		"--maxNumVerticesPerCH", fmt.Sprintf("%d", p.MaxVertsPerHull),
		"--minVolumePerCH", fmt.Sprintf("%g", p.MinVolumePerHull),
		"--concavity", fmt.Sprintf("%g", p.Concavity),
		"--planeDownsampling", fmt.Sprintf("%d", p.PlaneDownsampling),
		"--convexhullDownsampling", fmt.Sprintf("%d", p.HullDownsampling),
		"--alpha", fmt.Sprintf("%g", p.Alpha),
		"--beta", fmt.Sprintf("%g", p.Beta),
		"--pca", fmt.Sprintf("%d", pca),
	}
}
