package http

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrDatasetNotLoaded is reported by /readyz until MarkLoaded is called.
var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// DatasetGate flips to ready once the dataset has been loaded.
// The zero value is not ready and safe for concurrent use.
type DatasetGate struct {
	status atomic.Pointer[DatasetStatus]
}

// MarkLoaded records the loaded dataset and makes the gate ready.
func (g *DatasetGate) MarkLoaded(status DatasetStatus) {
	g.status.Store(&status)
}

// CheckReadiness implements ReadinessChecker.
func (g *DatasetGate) CheckReadiness(_ context.Context) (DatasetStatus, error) {
	s := g.status.Load()
	if s == nil {
		return DatasetStatus{}, ErrDatasetNotLoaded
	}
	return *s, nil
}
