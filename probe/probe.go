// Package probe reports the GPUs visible through the Vulkan loader. The drawing
// path itself runs on OpenGL; the report helps telling a missing driver apart
// from a broken GL setup.
package probe

import (
	"fmt"
	"io"
	"log"
	"strings"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const applicationName = "Linear Perspective Tool"

type QueueFamily struct {
	Count uint32
	Flags []string
}

type Device struct {
	Name          string
	Type          string
	Vendor        string
	API           string
	Driver        string
	QueueFamilies []QueueFamily
}

func newDevice(props vk.PhysicalDeviceProperties, families []vk.QueueFamilyProperties) Device {
	d := Device{
		Name:   vk.ToString(props.DeviceName[:]),
		Type:   toStringDeviceType(props.DeviceType),
		Vendor: asVendorName(props.VendorID),
		API:    vk.Version(props.ApiVersion).String(),
		Driver: asDriverVersion(props.VendorID, props.DriverVersion),
	}
	for _, q := range families {
		d.QueueFamilies = append(d.QueueFamilies, QueueFamily{
			Count: q.QueueCount,
			Flags: toStringQueueFlags(q.QueueFlags),
		})
	}
	return d
}

// ListDevices loads the Vulkan library through SDL, creates a bare instance
// and describes every physical device it enumerates.
func ListDevices() ([]Device, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initialize SDL: %w", err)
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return nil, fmt.Errorf("load Vulkan library: %w", err)
	}
	defer sdl.VulkanUnloadLibrary()

	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("initialize Vulkan API: %w", err)
	}

	instance, err := createInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:            vk.StructureTypeApplicationInfo,
			PApplicationName: applicationName + "\x00",
			PEngineName:      "No Engine\x00",
			ApiVersion:       vk.MakeVersion(1, 0, 0),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create Vulkan instance: %w", err)
	}
	defer vk.DestroyInstance(instance, nil)

	physDevices, err := readPhysicalDevices(instance)
	if err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(physDevices))
	for _, pd := range physDevices {
		devices = append(devices, newDevice(readPhysicalDeviceProperties(pd), readQueueFamilies(pd)))
	}
	log.Printf("Found %d physical devices", len(devices))
	return devices, nil
}

// Report writes one block per device in the tree layout the logs use.
func Report(w io.Writer, devices []Device) error {
	b := strings.Builder{}
	for _, d := range devices {
		b.WriteString(fmt.Sprintf("%s:\n", d.Name))
		b.WriteString(fmt.Sprintf("| type: %s, vendor: %s, api: %s, driver: %s\n", d.Type, d.Vendor, d.API, d.Driver))
		for i, q := range d.QueueFamilies {
			prefix := "| "
			if i == len(d.QueueFamilies)-1 {
				prefix = "|_"
			}
			b.WriteString(fmt.Sprintf("%sQfamily[%d] count: %2d, flags: %s\n", prefix, i, q.Count, strings.Join(q.Flags, ", ")))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
