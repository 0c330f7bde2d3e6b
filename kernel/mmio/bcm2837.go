package mmio

// IOBase is the physical base address of the BCM2837 peripheral block on
// the Raspberry Pi 3, as seen from the ARM core with the low-peripheral
// mode the CS140e-style bring-up code in this kernel's lineage assumes.
const IOBase uintptr = 0x3F000000
