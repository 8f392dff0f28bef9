package domain

import "go.trai.ch/zerr"

// Pipeline is the ordered set of task descriptors read from configuration.
type Pipeline struct {
	order []string
	tasks map[string]*TaskDescriptor
}

// NewPipeline builds a pipeline from descriptors in declaration order.
// It rejects empty and duplicate ids so that no task ever runs from an invalid set.
func NewPipeline(descs ...*TaskDescriptor) (*Pipeline, error) {
	p := &Pipeline{
		order: make([]string, 0, len(descs)),
		tasks: make(map[string]*TaskDescriptor, len(descs)),
	}
	for i, d := range descs {
		if d.ID == "" {
			return nil, zerr.With(zerr.Wrap(ErrEmptyTaskID, "invalid pipeline"), "index", i)
		}
		if _, exists := p.tasks[d.ID]; exists {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateTaskID, "invalid pipeline"), "task_id", d.ID)
		}
		p.order = append(p.order, d.ID)
		p.tasks[d.ID] = d
	}
	return p, nil
}

// Get returns the descriptor with the given id.
func (p *Pipeline) Get(id string) (*TaskDescriptor, bool) {
	d, ok := p.tasks[id]
	return d, ok
}

// Descriptors returns the descriptors in declaration order.
func (p *Pipeline) Descriptors() []*TaskDescriptor {
	out := make([]*TaskDescriptor, len(p.order))
	for i, id := range p.order {
		out[i] = p.tasks[id]
	}
	return out
}

// Len returns the number of descriptors.
func (p *Pipeline) Len() int {
	return len(p.order)
}
