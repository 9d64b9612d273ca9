package scene

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/material"
	"github.com/oneweekend/pathtracer/pkg/renderer"
)

// File formats accepted by LoadFile
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// File is the on-disk description of a scene
type File struct {
	Name        string         `yaml:"name" toml:"name"`
	Description string         `yaml:"description" toml:"description"`
	Image       ImageSpec      `yaml:"image" toml:"image"`
	Camera      CameraSpec     `yaml:"camera" toml:"camera"`
	Materials   []MaterialSpec `yaml:"materials" toml:"materials"`
	Spheres     []SphereSpec   `yaml:"spheres" toml:"spheres"`
}

// ImageSpec holds output size and sampling settings
type ImageSpec struct {
	Width    int `yaml:"width" toml:"width"`   // Derived from the aspect ratio when only height is given
	Height   int `yaml:"height" toml:"height"` // Derived from the aspect ratio when omitted
	Samples  int `yaml:"samples" toml:"samples"`
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

// CameraSpec mirrors renderer.CameraConfig; omitted fields keep the default camera
type CameraSpec struct {
	LookFrom      []float64 `yaml:"look_from" toml:"look_from"`
	LookAt        []float64 `yaml:"look_at" toml:"look_at"`
	Up            []float64 `yaml:"up" toml:"up"`
	VFov          float64   `yaml:"vfov" toml:"vfov"`
	AspectRatio   float64   `yaml:"aspect_ratio" toml:"aspect_ratio"`
	Aperture      float64   `yaml:"aperture" toml:"aperture"`
	FocusDistance float64   `yaml:"focus_distance" toml:"focus_distance"`
}

// MaterialSpec is a named lambertian, metal or dielectric material
type MaterialSpec struct {
	Name   string    `yaml:"name" toml:"name"`
	Type   string    `yaml:"type" toml:"type"`
	Albedo []float64 `yaml:"albedo" toml:"albedo"`
	Fuzz   float64   `yaml:"fuzz" toml:"fuzz"`
	IR     float64   `yaml:"ir" toml:"ir"`
}

// SphereSpec places a sphere with a material referenced by name
type SphereSpec struct {
	Center   []float64 `yaml:"center" toml:"center"`
	Radius   float64   `yaml:"radius" toml:"radius"`
	Material string    `yaml:"material" toml:"material"`
}

// FormatFromPath returns the scene file format implied by the path's extension
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads, decodes and builds a scene file
func LoadFile(path string) (*Scene, error) {
	file, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := file.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadFile reads and decodes a scene file without building it
func ReadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	file, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return file, nil
}

// Decode parses a scene description in the given format
func Decode(data []byte, format string) (*File, error) {
	var file File

	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidSceneFile, err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &file)
		if err != nil {
			return nil, fmt.Errorf("%w: toml: %v", ErrInvalidSceneFile, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: toml: unknown key %q", ErrInvalidSceneFile, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return &file, nil
}

// Build validates the description and constructs the scene
func (f *File) Build() (*Scene, error) {
	cameraConfig, err := f.Camera.toConfig()
	if err != nil {
		return nil, err
	}

	if f.Image.Width < 0 || f.Image.Height < 0 || f.Image.Samples < 0 || f.Image.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: image settings %+v must not be negative", ErrInvalidSceneFile, f.Image)
	}

	sampling := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		Width:           f.Image.Width,
		SamplesPerPixel: f.Image.Samples,
		MaxDepth:        f.Image.MaxDepth,
	})
	sampling.Height = f.Image.Height
	switch {
	case f.Image.Width > 0 && f.Image.Height > 0 && f.Camera.AspectRatio == 0:
		cameraConfig.AspectRatio = float64(f.Image.Width) / float64(f.Image.Height)
	case f.Image.Width == 0 && f.Image.Height > 0:
		sampling.Width = widthForAspect(f.Image.Height, cameraConfig.AspectRatio)
	}

	s, err := newScene(f.Name, cameraConfig, sampling)
	if err != nil {
		return nil, err
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return nil, err
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for i, spec := range f.Materials {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: material %d has no name", ErrInvalidSceneFile, i)
		}
		if _, exists := materials[spec.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate material %q", ErrInvalidSceneFile, spec.Name)
		}
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", spec.Name, err)
		}
		materials[spec.Name] = mat
	}

	if len(f.Spheres) == 0 {
		return nil, fmt.Errorf("%w: no spheres", ErrInvalidSceneFile)
	}
	for i, spec := range f.Spheres {
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references unknown material %q", ErrInvalidSceneFile, i, spec.Material)
		}
		center, err := toVec3(spec.Center, "center")
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if err := s.AddSphere(center, spec.Radius, mat); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	return s, nil
}

func (c CameraSpec) toConfig() (renderer.CameraConfig, error) {
	override := renderer.CameraConfig{
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}

	vectors := []struct {
		name   string
		values []float64
		dst    *core.Vec3
	}{
		{"look_from", c.LookFrom, &override.LookFrom},
		{"look_at", c.LookAt, &override.LookAt},
		{"up", c.Up, &override.Up},
	}
	for _, v := range vectors {
		if v.values == nil {
			continue
		}
		vec, err := toVec3(v.values, v.name)
		if err != nil {
			return renderer.CameraConfig{}, fmt.Errorf("camera: %w", err)
		}
		*v.dst = vec
	}

	config := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), override)
	// A zero look-from is the origin, not "unset", once look_at was given
	if c.LookFrom != nil {
		config.LookFrom = override.LookFrom
	}
	if c.LookAt != nil {
		config.LookAt = override.LookAt
	}
	return config, nil
}

func (m MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		albedo, err := toVec3(m.Albedo, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo)
	case "metal":
		albedo, err := toVec3(m.Albedo, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, m.Fuzz)
	case "dielectric":
		return material.NewDielectric(m.IR)
	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidSceneFile, m.Type)
	}
}

func toVec3(values []float64, field string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidSceneFile, field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
