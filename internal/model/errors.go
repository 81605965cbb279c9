package model

import "fmt"

// ValidationError reports a malformed or out-of-range request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExternalServiceError reports a transport, HTTP, or timeout failure from an
// upstream service (LLM or recipe API). Retryable in principle, never retried
// by the pipeline.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// EmptyExtractionError means the extractor produced no usable ingredients
// after filtering. Terminal for the request; no search call is made.
type EmptyExtractionError struct {
	Raw string
}

func (e *EmptyExtractionError) Error() string {
	return "no usable ingredients could be extracted from the provided input"
}

// PipelineStage identifies where in the recommendation pipeline a request is,
// or where it failed.
type PipelineStage string

const (
	StageValidating       PipelineStage = "validating"
	StageComputingMetrics PipelineStage = "computing_metrics"
	StageExtracting       PipelineStage = "extracting"
	StageSearching        PipelineStage = "searching"
	StageEnriching        PipelineStage = "enriching"
	StageFiltering        PipelineStage = "filtering"
	StageRanking          PipelineStage = "ranking"
	StageDone             PipelineStage = "done"
)

// PipelineError wraps any failure from the recommendation pipeline with the
// stage it originated from. No partial recipe list accompanies it.
type PipelineError struct {
	Stage PipelineStage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed during %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
