package generation

// Operation names one content-generation pipeline run.
type Operation string

const (
	OpSummary   Operation = "summary"
	OpKeyPoints Operation = "keypoints"
	OpQuiz      Operation = "quiz"
)

// ProgressEvent is forwarded to the UI sink as a generation advances:
// one event per streamed fragment, then a terminal Done or Err event.
type ProgressEvent struct {
	DocumentID string
	Operation  Operation
	Chunk      string
	Done       bool
	Err        error
}

// Sink consumes progress events. Implementations must be safe for use
// from a single generation at a time; independent generations may emit
// concurrently.
type Sink interface {
	Emit(ProgressEvent)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ProgressEvent)

func (f SinkFunc) Emit(ev ProgressEvent) { f(ev) }

// discardSink drops all events; used when no sink is configured.
type discardSink struct{}

func (discardSink) Emit(ProgressEvent) {}
