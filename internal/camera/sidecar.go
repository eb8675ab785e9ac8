package camera

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// sidecarVersion is written into every sidecar file
const sidecarVersion = "1.0"

// SidecarData is the JSON structure of a saved camera pose
type SidecarData struct {
	Version string `json:"version"`
	Camera  Pose   `json:"camera"`
}

// SidecarPath returns the pose file stored next to a parameter file
func SidecarPath(paramsPath string) string {
	return paramsPath + ".gopipe.json"
}

// LoadSidecar reads a saved pose. A missing file yields nil without error.
func LoadSidecar(path string) (*Pose, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read camera file: %w", err)
	}

	var sidecar SidecarData
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return nil, fmt.Errorf("failed to parse camera file %s: %w", path, err)
	}
	if !sidecar.Camera.IsFinite() {
		return nil, fmt.Errorf("camera file %s holds a non-finite pose", path)
	}
	return &sidecar.Camera, nil
}

// SaveSidecar writes the pose as indented JSON
func SaveSidecar(path string, pose Pose) error {
	data, err := json.MarshalIndent(SidecarData{Version: sidecarVersion, Camera: pose}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal camera pose: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write camera file: %w", err)
	}
	return nil
}
