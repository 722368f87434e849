package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Metrics are the offline regression scores of the price model.
type Metrics struct {
	RMSE float64
	MAE  float64
	R2   float64
}

// ReadMetrics loads the metrics record at path. A missing file yields
// *MissingFileError; anything present but unusable yields
// *MalformedMetricsError. Absent fields default to 0.
func ReadMetrics(path string) (*Metrics, error) {
	if !Exists(path) {
		return nil, &MissingFileError{Artifact: "metrics", Path: path}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedMetricsError{Path: path, Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &MalformedMetricsError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedMetricsError{Path: path, Err: errors.New("trailing data after JSON value")}
	}
	if raw == nil {
		return nil, &MalformedMetricsError{Path: path, Err: errors.New("expected a JSON object")}
	}
	var m Metrics
	for _, f := range []struct {
		key string
		dst *float64
	}{{"rmse", &m.RMSE}, {"mae", &m.MAE}, {"r2", &m.R2}} {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		x, err := toFloat(v)
		if err != nil {
			return nil, &MalformedMetricsError{Path: path, Err: fmt.Errorf("field %s: %w", f.key, err)}
		}
		*f.dst = x
	}
	return &m, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		return f, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("unsupported value of type %T", v)
	}
}

// ReadMap returns the pre-rendered map page verbatim.
func ReadMap(path string) (string, error) {
	if !Exists(path) {
		return "", &MissingFileError{Artifact: "map", Path: path}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read map: %w", err)
	}
	return string(b), nil
}
