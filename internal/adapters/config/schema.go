package config

import "go.trai.ch/conduit/internal/core/domain"

// PipelineFile represents the structure of the pipeline configuration file.
type PipelineFile struct {
	Tasks []TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	ID         string            `yaml:"id"`
	Type       string            `yaml:"type"`
	Inputs     map[string]string `yaml:"inputs"`
	Outputs    map[string]string `yaml:"outputs"`
	Parameters map[string]any    `yaml:"parameters"`
}

func (dto TaskDTO) descriptor() *domain.TaskDescriptor {
	inputs := make(domain.Bindings, len(dto.Inputs))
	for k, v := range dto.Inputs {
		inputs[k] = v
	}
	outputs := make(domain.Bindings, len(dto.Outputs))
	for k, v := range dto.Outputs {
		outputs[k] = v
	}
	params := dto.Parameters
	if params == nil {
		params = map[string]any{}
	}
	return &domain.TaskDescriptor{
		ID:         dto.ID,
		Type:       dto.Type,
		Inputs:     inputs,
		Outputs:    outputs,
		Parameters: params,
	}
}
