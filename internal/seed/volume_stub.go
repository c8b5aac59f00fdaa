//go:build !linux

package seed

import (
	"fmt"

	"github.com/seedwire/netseed/internal/logging"
)

// VolumeSource is only available on Linux; other platforms must use a
// FileSource.
type VolumeSource struct {
	Label string
}

func NewVolumeSource(label string, devices []string, log *logging.Logger) *VolumeSource {
	return &VolumeSource{Label: label}
}

func (s *VolumeSource) Describe() string {
	return "volume:" + s.Label
}

func (s *VolumeSource) Fetch() (*Payload, error) {
	return nil, fmt.Errorf("seed volume discovery is only supported on linux")
}
