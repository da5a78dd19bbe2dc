package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ErrProbeUnavailable means the probe binary is missing from the host, a
// deployment fault rather than a bad input.
var ErrProbeUnavailable = errors.New("audio: probe binary unavailable")

// Prober reports the exact duration of an audio byte stream.
type Prober interface {
	Duration(ctx context.Context, data []byte) (float64, error)
}

// FFProbe probes audio by decoding it with ffprobe. Any container or codec
// ffmpeg understands is accepted; anything else is a decode failure.
type FFProbe struct {
	cmd string
}

func NewFFProbe() *FFProbe {
	return &FFProbe{cmd: "ffprobe"}
}

func (f *FFProbe) Duration(ctx context.Context, data []byte) (float64, error) {
	tmp, err := os.CreateTemp("", "audio-probe-*")
	if err != nil {
		return 0, fmt.Errorf("audio: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("audio: temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("audio: temp file: %w", err)
	}

	cmdPath, err := exec.LookPath(f.cmd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	cmd := exec.CommandContext(ctx, cmdPath, probeArgs(tmp.Name())...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("audio: cannot decode input: %w", err)
	}

	return parseDuration(output)
}

func probeArgs(path string) []string {
	return []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	}
}

func parseDuration(output []byte) (float64, error) {
	var probeResult struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probeResult); err != nil {
		return 0, fmt.Errorf("audio: parse probe output: %w", err)
	}
	if probeResult.Format.Duration == "" {
		return 0, fmt.Errorf("audio: no duration in probe output")
	}
	seconds, err := strconv.ParseFloat(probeResult.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("audio: parse duration: %w", err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("audio: non-positive duration %f", seconds)
	}
	return seconds, nil
}
