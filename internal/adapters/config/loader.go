// Package config loads pipeline definitions from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the pipeline file used when none is given.
const DefaultPath = "config/pipeline_config.yaml"

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new configuration loader reading from the operating system.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: OSFS{}}
}

// Load reads the pipeline file at path and returns its descriptors in declaration order.
func (l *Loader) Load(path string) (*domain.Pipeline, error) {
	if path == "" {
		return nil, zerr.Wrap(domain.ErrConfigNotFound, "no pipeline path")
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "pipeline file missing"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	file, err := parse(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	descs := make([]*domain.TaskDescriptor, 0, len(file.Tasks))
	for _, dto := range file.Tasks {
		descs = append(descs, dto.descriptor())
	}

	pipeline, err := domain.NewPipeline(descs...)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if pipeline.Len() == 0 {
		l.Logger.Warn(fmt.Sprintf("pipeline %s declares no tasks", path))
	}
	l.Logger.Debug(fmt.Sprintf("loaded %d tasks from %s", pipeline.Len(), path))

	return pipeline, nil
}

// parse decodes a pipeline file strictly. An empty document yields an empty file.
func parse(data []byte) (*PipelineFile, error) {
	var file PipelineFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, err
	}
	return &file, nil
}
