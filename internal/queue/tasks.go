package queue

import "github.com/nikhilbhutani/ttshub/internal/backend"

const TypeSynthesisRun = "synthesis:run"

type SynthesisRunPayload struct {
	JobID   string          `json:"job_id"`
	Request backend.Request `json:"request"`
}
