package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default params must validate, got %v", err)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		option string
		tweak  func(*Params)
	}{
		{"resolution", func(p *Params) { p.Resolution = -5 }},
		{"resolution", func(p *Params) { p.Resolution = 100000000 }},
		{"max_hulls", func(p *Params) { p.MaxHulls = 0 }},
		{"max_verts_per_hull", func(p *Params) { p.MaxVertsPerHull = 3 }},
		{"min_volume_per_hull", func(p *Params) { p.MinVolumePerHull = -0.1 }},
		{"concavity", func(p *Params) { p.Concavity = 1.5 }},
		{"plane_downsampling", func(p *Params) { p.PlaneDownsampling = 0 }},
		{"hull_downsampling", func(p *Params) { p.HullDownsampling = 100 }},
		{"alpha", func(p *Params) { p.Alpha = -1 }},
		{"beta", func(p *Params) { p.Beta = 2 }},
	}

	for _, test := range tests {
		p := Default()
		test.tweak(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error, got none", test.option)
			continue
		}
		perr, ok := err.(*ParameterError)
		if !ok {
			t.Errorf("%s: expected *ParameterError, got %T", test.option, err)
			continue
		}
		if perr.Option != test.option {
			t.Errorf("expected error about %q, got %q", test.option, perr.Option)
		}
	}
}

func TestLoadParamsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	content := "resolution: 50000\nmax_hulls: 4\npca: false\n"
	if err := ioutil.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(path)
	if err != nil {
		t.Fatal(err)
	}

	if p.Resolution != 50000 {
		t.Errorf("resolution = %d, expected 50000", p.Resolution)
	}
	if p.MaxHulls != 4 {
		t.Errorf("max_hulls = %d, expected 4", p.MaxHulls)
	}
	if p.PCA {
		t.Error("pca should be overridden to false")
	}
	// untouched options keep defaults
	if p.MaxVertsPerHull != Default().MaxVertsPerHull {
		t.Errorf("max_verts_per_hull = %d, expected default %d", p.MaxVertsPerHull, Default().MaxVertsPerHull)
	}
}

func TestLoadParamsMissingFile(t *testing.T) {
	if _, err := LoadParams(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing params file")
	}
}
