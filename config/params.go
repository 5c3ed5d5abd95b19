package config

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v3"

	"github.com/pkg/errors"
)

// Params mirrors the tunable options of the vhacd decomposition tool.
// Defaults are tuned for simple concave geometry; see Validate for
// the accepted range of every option.
type Params struct {
	// Voxelization resolution of the input mesh.
	Resolution int `yaml:"resolution"`
	// Upper bound on the number of output hulls.
	MaxHulls int `yaml:"max_hulls"`
	// Upper bound on vertices per output hull.
	MaxVertsPerHull int `yaml:"max_verts_per_hull"`
	// Minimum hull volume, as a fraction of the object volume.
	MinVolumePerHull float64 `yaml:"min_volume_per_hull"`
	// Maximum allowed concavity of a hull before it is split.
	Concavity float64 `yaml:"concavity"`
	// Downsampling applied during clipping plane search.
	PlaneDownsampling int `yaml:"plane_downsampling"`
	// Downsampling applied during hull generation.
	HullDownsampling int `yaml:"hull_downsampling"`
	// Bias toward clipping along symmetry planes.
	Alpha float64 `yaml:"alpha"`
	// Bias toward clipping along revolution axes.
	Beta float64 `yaml:"beta"`
	// Normalize the mesh along its principal axes first.
	PCA bool `yaml:"pca"`
}

func Default() Params {
	return Params{
		Resolution:        100000,
		MaxHulls:          12,
		MaxVertsPerHull:   12,
		MinVolumePerHull:  0.001,
		Concavity:         0.0025,
		PlaneDownsampling: 4,
		HullDownsampling:  4,
		Alpha:             0.05,
		Beta:              0.05,
		PCA:               true,
	}
}

type ParameterError struct {
	Option string
	Value  interface{}
	Range  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("Decomposition option %q = %v outside valid range %s", e.Option, e.Value, e.Range)
}

func (p Params) Validate() error {
	checks := []struct {
		ok     bool
		option string
		value  interface{}
		valid  string
	}{
		{p.Resolution >= 1000 && p.Resolution <= 64000000, "resolution", p.Resolution, "[1000, 64000000]"},
		{p.MaxHulls >= 1 && p.MaxHulls <= 1024, "max_hulls", p.MaxHulls, "[1, 1024]"},
		{p.MaxVertsPerHull >= 4 && p.MaxVertsPerHull <= 1024, "max_verts_per_hull", p.MaxVertsPerHull, "[4, 1024]"},
		{p.MinVolumePerHull >= 0 && p.MinVolumePerHull <= 0.5, "min_volume_per_hull", p.MinVolumePerHull, "[0.0, 0.5]"},
		{p.Concavity >= 0 && p.Concavity <= 1, "concavity", p.Concavity, "[0.0, 1.0]"},
		{p.PlaneDownsampling >= 1 && p.PlaneDownsampling <= 16, "plane_downsampling", p.PlaneDownsampling, "[1, 16]"},
		{p.HullDownsampling >= 1 && p.HullDownsampling <= 16, "hull_downsampling", p.HullDownsampling, "[1, 16]"},
		{p.Alpha >= 0 && p.Alpha <= 1, "alpha", p.Alpha, "[0.0, 1.0]"},
		{p.Beta >= 0 && p.Beta <= 1, "beta", p.Beta, "[0.0, 1.0]"},
	}
	for _, check := range checks {
		if !check.ok {
			return &ParameterError{Option: check.option, Value: check.value, Range: check.valid}
		}
	}
	return nil
}

// LoadParams overlays a yaml file onto the defaults. Options absent
// from the file keep their default values.
func LoadParams(path string) (Params, error) {
	p := Default()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return p, errors.Wrapf(err, "Failed to read params file %q", path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrapf(err, "Failed to parse params file %q", path)
	}
	return p, nil
}
