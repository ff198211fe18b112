package serial

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps type tags to record constructors so that records can be
// decoded when their type is only known by name.
type Registry struct {
	mu   sync.RWMutex
	ctor map[string]func() Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctor: make(map[string]func() Record)}
}

// Register adds a constructor for tag. It panics if tag is empty, the
// constructor is nil or tag is already registered.
func (r *Registry) Register(tag string, ctor func() Record) {
	if tag == "" {
		panic("serial: register with empty tag")
	}
	if ctor == nil {
		panic("serial: register " + tag + " with nil constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ctor[tag]; dup {
		panic("serial: tag registered twice: " + tag)
	}
	r.ctor[tag] = ctor
}

// New returns a new zero record for tag.
func (r *Registry) New(tag string) (Record, error) {
	r.mu.RLock()
	ctor, ok := r.ctor[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConstructionError{Type: tag, Err: fmt.Errorf("unknown type tag")}
	}
	rec := ctor()
	if rec == nil {
		return nil, &ConstructionError{Type: tag, Err: fmt.Errorf("constructor returned nil")}
	}
	return rec, nil
}

// Decode reads an object envelope as a record of type tag. It returns a nil
// Record for an envelope around the Null sentinel.
func (r *Registry) Decode(tag, text string) (Record, error) {
	inner, err := unwrap("decode object", text)
	if err != nil {
		return nil, err
	}
	if inner == Null {
		return nil, nil
	}
	return r.DecodeFields(tag, inner)
}

// DecodeFields populates a new record of type tag from the output of its
// FieldString method.
func (r *Registry) DecodeFields(tag, fields string) (Record, error) {
	rec, err := r.New(tag)
	if err != nil {
		return nil, err
	}
	if err := rec.FromFieldString(fields); err != nil {
		return nil, &ConstructionError{Type: tag, Err: err}
	}
	return rec, nil
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.ctor))
	for tag := range r.ctor {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
