// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicochatzi/rume/internal/audio"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available audio devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := audio.HostDevices()
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			if len(devices) == 0 {
				fmt.Println("No audio devices found.")
				return nil
			}

			fmt.Printf("\nAvailable Audio Devices (%d found)\n\n", len(devices))
			for _, device := range devices {
				printDevice(device)
			}
			return nil
		},
	}
}

func printDevice(d audio.Device) {
	deviceType := "Unknown"
	switch {
	case d.MaxInputChannels > 0 && d.MaxOutputChannels > 0:
		deviceType = "Input/Output"
	case d.MaxInputChannels > 0:
		deviceType = "Input"
	case d.MaxOutputChannels > 0:
		deviceType = "Output"
	}

	marker := ""
	switch {
	case d.IsDefaultInput && d.IsDefaultOutput:
		marker = " (Default Input & Output)"
	case d.IsDefaultInput:
		marker = " (Default Input)"
	case d.IsDefaultOutput:
		marker = " (Default Output)"
	}

	fmt.Printf("[%d] %s%s\n", d.ID, d.Name, marker)
	fmt.Printf("    Type: %s, Host API: %s\n", deviceType, d.HostApiName)
	fmt.Printf("    Channels: Input=%d, Output=%d\n", d.MaxInputChannels, d.MaxOutputChannels)
	fmt.Printf("    Default Sample Rate: %.0f Hz\n\n", d.DefaultSampleRate)
}
