package artifacts

import "fmt"

// MissingFileError indicates an expected artifact is not a readable file.
type MissingFileError struct {
	Artifact string
	Path     string
}

func (e *MissingFileError) Error() string {
	if e == nil {
		return "file not found"
	}
	if e.Artifact != "" {
		return fmt.Sprintf("%s file not found: %s", e.Artifact, e.Path)
	}
	return fmt.Sprintf("file not found: %s", e.Path)
}

// MalformedMetricsError indicates the metrics file exists but does not hold
// the expected record.
type MalformedMetricsError struct {
	Path string
	Err  error
}

func (e *MalformedMetricsError) Error() string {
	if e == nil {
		return "malformed metrics"
	}
	return fmt.Sprintf("malformed metrics %s: %v", e.Path, e.Err)
}

func (e *MalformedMetricsError) Unwrap() error { return e.Err }
