// Package memory implements the flat 64 KiB address space shared by the
// CPU and the host. It owns the bytes and is the sole mutator of backing
// storage; everything else (input latches, the framebuffer, ROM images)
// goes through its Read/Write/Modify primitives.
package memory

// Size is the number of addressable bytes. Every address is in-bounds by
// construction: addr is always a uint16.
const Size = 1 << 16

// StackBase is the fixed high byte of the stack page; the effective
// stack address is always StackBase | SP.
const StackBase uint16 = 0x0100

// ResetVectorLow and ResetVectorHigh hold the little-endian target PC
// consulted on reset.
const (
	ResetVectorLow  uint16 = 0xFFFC
	ResetVectorHigh uint16 = 0xFFFD
)

// IRQVectorLow and IRQVectorHigh hold the little-endian target PC consulted
// on BRK and on a hardware IRQ. The 6502 shares one vector for both.
const (
	IRQVectorLow  uint16 = 0xFFFE
	IRQVectorHigh uint16 = 0xFFFF
)

// Memory is a flat, byte-addressable 64 KiB array. There are no protected
// regions and no failure modes: every Read/Write is total.
type Memory struct {
	data [Size]byte
}

// New returns a zeroed 64 KiB memory image.
func New() *Memory {
	return &Memory{}
}

// ReadByte returns the byte at addr.
func (m *Memory) ReadByte(addr uint16) byte {
	return m.data[addr]
}

// ReadWord returns the 16-bit little-endian word at addr. The high-byte
// fetch wraps per ordinary 16-bit arithmetic, so ReadWord(0xFFFF) reads its
// high byte from address 0x0000.
func (m *Memory) ReadWord(addr uint16) uint16 {
	lo := uint16(m.ReadByte(addr))
	hi := uint16(m.ReadByte(addr + 1))
	return hi<<8 | lo
}

// ReadWordZeroPage returns the 16-bit little-endian word whose two bytes
// both live in the zero page. The high-byte fetch wraps within the zero
// page (0xFF pairs with 0x00, never 0x100) — the documented 6502 hardware
// quirk that ReadWord must not reproduce.
func (m *Memory) ReadWordZeroPage(zpAddr byte) uint16 {
	lo := uint16(m.ReadByte(uint16(zpAddr)))
	hi := uint16(m.ReadByte(uint16(zpAddr + 1)))
	return hi<<8 | lo
}

// WriteByte stores value at addr.
func (m *Memory) WriteByte(addr uint16, value byte) {
	m.data[addr] = value
}

// Modify is a read-modify-write helper equivalent to
// WriteByte(addr, f(ReadByte(addr))).
func (m *Memory) Modify(addr uint16, f func(byte) byte) {
	m.WriteByte(addr, f(m.ReadByte(addr)))
}

// LoadImage copies data verbatim into memory starting at address 0. It is
// the caller's responsibility (romimage.Load) to enforce the exact-65536
// size rule from spec.md §6; LoadImage itself just copies whatever fits.
func (m *Memory) LoadImage(data []byte) {
	copy(m.data[:], data)
}

// Slice returns the backing array as a read-only-by-convention borrow, for
// external collaborators (the framebuffer renderer, the memory-dump panel)
// that need direct byte-level access to a region rather than one address
// at a time. Callers must not retain it across a Reset/LoadImage.
func (m *Memory) Slice() []byte {
	return m.data[:]
}
