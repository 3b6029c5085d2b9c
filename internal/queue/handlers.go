package queue

import "github.com/hibiken/asynq"

// NewMux wires the worker's task handlers. Synthesis is the only task
// type today; new ones register here.
func NewMux(synthesis asynq.Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeSynthesisRun, synthesis)
	return mux
}
