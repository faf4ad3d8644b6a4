package qservice

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/ftcompile/qc/circuit"
)

type (
	// ProgramStore holds compiled circuits keyed by an opaque id, for the
	// inspection API's POST /circuits -> POST /circuits/:id/run flow.
	ProgramStore interface {
		SaveProgram(c circuit.Circuit) (string, error)
		GetProgram(id string) (circuit.Circuit, error)
		// SaveProgramAt overwrites the circuit stored under an existing id,
		// used after running passes against it in place.
		SaveProgramAt(id string, c circuit.Circuit) (string, error)
	}

	programStore struct {
		programs map[string]circuit.Circuit
		sync.RWMutex
	}
)

// NewProgramStore creates a new in-memory program store.
func NewProgramStore() ProgramStore {
	return &programStore{
		programs: make(map[string]circuit.Circuit),
	}
}

func (ps *programStore) SaveProgram(c circuit.Circuit) (string, error) {
	if c == nil {
		return "", fmt.Errorf("qservice: nil circuit")
	}
	id := uuid.New().String()
	ps.Lock()
	ps.programs[id] = c
	ps.Unlock()
	return id, nil
}

func (ps *programStore) SaveProgramAt(id string, c circuit.Circuit) (string, error) {
	if c == nil {
		return "", fmt.Errorf("qservice: nil circuit")
	}
	ps.Lock()
	defer ps.Unlock()
	if _, ok := ps.programs[id]; !ok {
		return "", fmt.Errorf("qservice: circuit with id %s not found", id)
	}
	ps.programs[id] = c
	return id, nil
}

func (ps *programStore) GetProgram(id string) (circuit.Circuit, error) {
	ps.RLock()
	c, ok := ps.programs[id]
	ps.RUnlock()
	if !ok {
		return nil, fmt.Errorf("qservice: circuit with id %s not found", id)
	}
	return c, nil
}
