// Package model provides run state management for boosters.
package model

import (
	"sync"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// RunState はブースターのライフサイクル上の状態
type RunState int

const (
	// Initialized は構築直後、または Preprocess 前の状態
	Initialized RunState = iota
	// Running は Preprocess 済みでラウンドを実行できる状態
	Running
	// Terminated は収束証明または反復上限により停止した状態
	Terminated
	// Failed は致命的エラーにより停止した状態（結合仮説は生成されない）
	Failed
)

func (s RunState) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateManager manages the run state of a booster in a thread-safe manner.
type StateManager struct {
	mu    sync.RWMutex
	state RunState

	// 終了したラウンド（未終了なら 0）
	terminatedAt int

	nFeatures int
	nSamples  int
}

// NewStateManager creates a new StateManager in the Initialized state.
func NewStateManager() *StateManager {
	return &StateManager{state: Initialized}
}

// State returns the current state.
func (s *StateManager) State() RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Start moves to Running from any state. Preprocess is allowed to restart a run.
func (s *StateManager) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Running
	s.terminatedAt = 0
}

// Terminate records the round at which the run stopped.
func (s *StateManager) Terminate(round int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return errors.NewStateError("terminate", s.state.String(), Running.String())
	}
	s.state = Terminated
	s.terminatedAt = round
	return nil
}

// Fail moves to Failed. It is valid from every state.
func (s *StateManager) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Failed
}

// TerminatedAt returns the terminating round, or 0 when the run has not terminated.
func (s *StateManager) TerminatedAt() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terminatedAt
}

// Require returns a StateError unless the current state is one of allowed.
func (s *StateManager) Require(op string, allowed ...RunState) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range allowed {
		if s.state == a {
			return nil
		}
	}
	expected := ""
	for i, a := range allowed {
		if i > 0 {
			expected += " or "
		}
		expected += a.String()
	}
	return errors.NewStateError(op, s.state.String(), expected)
}

// Reset returns to Initialized.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Initialized
	s.terminatedAt = 0
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions sets the sample shape seen during preprocess.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// GetDimensions returns the sample shape seen during preprocess.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RunSnapshot represents the state of a run for serialization and debugging.
type RunSnapshot struct {
	State        string `json:"state"`
	TerminatedAt int    `json:"terminated_at,omitempty"`
	NFeatures    int    `json:"n_features,omitempty"`
	NSamples     int    `json:"n_samples,omitempty"`
}

// GetState returns the current state as a RunSnapshot.
func (s *StateManager) GetState() RunSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RunSnapshot{
		State:        s.state.String(),
		TerminatedAt: s.terminatedAt,
		NFeatures:    s.nFeatures,
		NSamples:     s.nSamples,
	}
}
