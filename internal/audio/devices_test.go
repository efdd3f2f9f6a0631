// SPDX-License-Identifier: MIT
package audio

import "testing"

// These tests exercise the device-enumeration API against whatever
// PortAudio host is actually available in the environment. On a machine
// with no audio hardware (most CI runners) Initialize or HostDevices can
// legitimately fail; we log and skip rather than fail the build.

func TestHostDevicesReportsNonNegativeIDs(t *testing.T) {
	devices, err := HostDevices()
	if err != nil {
		t.Skipf("no PortAudio host available: %v", err)
	}

	for _, d := range devices {
		if d.ID < 0 {
			t.Errorf("device %q has negative ID %d", d.Name, d.ID)
		}
	}
}

func TestInputDeviceDefault(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Skipf("no PortAudio host available: %v", err)
	}
	defer Terminate()

	info, err := InputDevice(DefaultDeviceID)
	if err != nil {
		t.Skipf("no default input device: %v", err)
	}
	if info.MaxInputChannels == 0 {
		t.Error("default input device reports zero input channels")
	}
}

func TestInputDeviceRejectsOutOfRangeID(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Skipf("no PortAudio host available: %v", err)
	}
	defer Terminate()

	if _, err := InputDevice(1 << 20); err == nil {
		t.Error("expected an error for an out-of-range device ID")
	}
}
