package probe

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

func asVendorName(v uint32) string {
	// The registered PCI vendor ids of the usual suspects.
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

func asDriverVersion(vendor uint32, raw uint32) string {
	// NVIDIA packs its driver version differently.
	if vendor == 0x10DE {
		return nvidiaVer(raw)
	}
	return vk.Version(raw).String()
}

func nvidiaVer(i uint32) string {
	return fmt.Sprintf(
		"%d.%d.%d.%d",
		(i>>22)&0x3ff,
		(i>>14)&0x0ff,
		(i>>6)&0x0ff,
		i&0x003f,
	)
}

func toStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func toStringQueueFlags(bits vk.QueueFlags) []string {
	var properties []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		properties = append(properties, "graphics")
	}
	if flags&vk.QueueComputeBit > 0 {
		properties = append(properties, "compute")
	}
	if flags&vk.QueueTransferBit > 0 {
		properties = append(properties, "transfer")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		properties = append(properties, "sparse binding")
	}
	if flags&vk.QueueProtectedBit > 0 {
		properties = append(properties, "protected")
	}
	return properties
}
