package tasks

import (
	"fmt"

	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/zerr"
)

func paramError(desc *domain.TaskDescriptor, key, reason string) error {
	err := zerr.With(zerr.Wrap(domain.ErrInvalidTaskParameters, reason), "task_id", desc.ID)
	return zerr.With(err, "parameter", key)
}

func stringParam(desc *domain.TaskDescriptor, key string, required bool) (string, error) {
	raw, ok := desc.Parameters[key]
	if !ok || raw == nil {
		if required {
			return "", paramError(desc, key, "missing required parameter")
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", paramError(desc, key, "parameter must be a string")
	}
	return s, nil
}

func boolParam(desc *domain.TaskDescriptor, key string) (bool, error) {
	raw, ok := desc.Parameters[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, paramError(desc, key, "parameter must be a boolean")
	}
	return b, nil
}

// stringListParam accepts a list of scalars.
func stringListParam(desc *domain.TaskDescriptor, key string) ([]string, error) {
	raw, ok := desc.Parameters[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case string, int, int64, float64, bool:
				out = append(out, fmt.Sprint(item))
			default:
				return nil, paramError(desc, key, "list items must be scalars")
			}
		}
		return out, nil
	default:
		return nil, paramError(desc, key, "parameter must be a list")
	}
}

func stringMapParam(desc *domain.TaskDescriptor, key string) (map[string]string, error) {
	raw, ok := desc.Parameters[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			out[k] = fmt.Sprint(item)
		}
		return out, nil
	default:
		return nil, paramError(desc, key, "parameter must be a mapping")
	}
}
