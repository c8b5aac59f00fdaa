//go:build linux

package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/seedwire/netseed/internal/logging"
)

// seedFilesystems are tried in order when mounting a candidate device.
// NoCloud seeds are usually ISO9660 images; vfat covers FAT-formatted ones.
var seedFilesystems = []string{"iso9660", "vfat"}

// defaultCandidateDevices are probed when the by-label symlink is absent.
var defaultCandidateDevices = []string{"/dev/sr0", "/dev/sr1", "/dev/vdb", "/dev/vdc"}

// Mounter abstracts the mount syscalls so discovery can be tested without
// root or real block devices.
type Mounter interface {
	Mount(device, target, fstype string) error
	Unmount(target string) error
}

// RealMounter mounts read-only via the kernel.
type RealMounter struct{}

func (RealMounter) Mount(device, target, fstype string) error {
	return unix.Mount(device, target, fstype, unix.MS_RDONLY, "")
}

func (RealMounter) Unmount(target string) error {
	return unix.Unmount(target, 0)
}

// VolumeSource discovers the labeled seed volume, mounts it read-only, and
// reads the document files off it.
type VolumeSource struct {
	Label   string
	Devices []string

	mounter Mounter
	log     *logging.Logger

	// byLabelDir is /dev/disk/by-label outside of tests.
	byLabelDir string
}

// NewVolumeSource returns a source that discovers the seed volume by label,
// falling back to the candidate devices. Empty devices means the defaults.
func NewVolumeSource(label string, devices []string, log *logging.Logger) *VolumeSource {
	if log == nil {
		log = logging.Default()
	}
	if len(devices) == 0 {
		devices = defaultCandidateDevices
	}
	return &VolumeSource{
		Label:      label,
		Devices:    devices,
		mounter:    RealMounter{},
		log:        log.WithComponent("seed"),
		byLabelDir: "/dev/disk/by-label",
	}
}

func (s *VolumeSource) Describe() string {
	return "volume:" + s.Label
}

// candidates returns the devices to try, the by-label symlink first when it
// resolves.
func (s *VolumeSource) candidates() []string {
	var out []string
	labelPath := filepath.Join(s.byLabelDir, s.Label)
	if resolved, err := filepath.EvalSymlinks(labelPath); err == nil {
		out = append(out, resolved)
	}
	for _, dev := range s.Devices {
		if _, err := os.Stat(dev); err == nil {
			out = append(out, dev)
		}
	}
	return out
}

func (s *VolumeSource) Fetch() (*Payload, error) {
	candidates := s.candidates()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no seed volume found: label %q not present and no candidate device exists", s.Label)
	}

	var lastErr error
	for _, dev := range candidates {
		payload, err := s.readDevice(dev)
		if err != nil {
			s.log.Debug("candidate device rejected", "device", dev, "error", err)
			lastErr = err
			continue
		}
		s.log.Info("loaded network-config", "source", s.Describe(), "device", dev,
			"bytes", len(payload.NetworkConfig))
		return payload, nil
	}
	return nil, fmt.Errorf("no candidate device yielded a network-config: %w", lastErr)
}

// readDevice mounts dev read-only, reads network-config (and meta-data when
// present), and always unmounts before returning.
func (s *VolumeSource) readDevice(dev string) (*Payload, error) {
	mountPoint, err := os.MkdirTemp("", "netseed-seed-")
	if err != nil {
		return nil, fmt.Errorf("failed to create mount point: %w", err)
	}
	defer os.Remove(mountPoint)

	var mountErr error
	mounted := false
	for _, fstype := range seedFilesystems {
		if mountErr = s.mounter.Mount(dev, mountPoint, fstype); mountErr == nil {
			mounted = true
			break
		}
	}
	if !mounted {
		return nil, fmt.Errorf("failed to mount %s: %w", dev, mountErr)
	}
	defer func() {
		if err := s.mounter.Unmount(mountPoint); err != nil {
			s.log.Warn("failed to unmount seed volume", "mount_point", mountPoint, "error", err)
		}
	}()

	data, err := os.ReadFile(filepath.Join(mountPoint, "network-config"))
	if err != nil {
		return nil, fmt.Errorf("no network-config on %s: %w", dev, err)
	}
	payload := &Payload{NetworkConfig: string(data)}

	if metaBytes, err := os.ReadFile(filepath.Join(mountPoint, "meta-data")); err == nil {
		meta, err := ParseMetaData(metaBytes)
		if err != nil {
			s.log.Warn("ignoring malformed meta-data", "device", dev, "error", err)
		} else {
			payload.Meta = meta
		}
	}
	return payload, nil
}
