package can

import (
	"errors"
	"math"
)

// ByteOrder is the DBC byte order digit of a signal.
type ByteOrder int

// byte order
const (
	Motorola ByteOrder = iota // big endian, '@0'
	Intel                     // little endian, '@1'
)

func (o ByteOrder) String() string {
	switch o {
	case Motorola:
		return "big_endian"
	case Intel:
		return "little_endian"
	default:
		return "unknown"
	}
}

// ValueKind says how the raw bits of a signal are interpreted.
type ValueKind int

const (
	Unsigned ValueKind = iota
	Signed
	Float
)

func (k ValueKind) String() string {
	switch k {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

const (
	MaxClassicLength = 8
	MaxFDLength      = 64
	MaxBitLength     = 64
)

var (
	ErrBufferTooShort = errors.New("buffer too short")
	ErrInvalidField   = errors.New("invalid signal field")
)

// Field is everything the codec needs to know about a signal.
type Field struct {
	StartBit  int
	Length    int
	ByteOrder ByteOrder
	Kind      ValueKind
	Factor    float64
	Offset    float64
}

func (f Field) valid() bool {
	if f.StartBit < 0 || f.Length < 1 || f.Length > MaxBitLength {
		return false
	}
	if f.Kind == Float && f.Length != 32 && f.Length != 64 {
		return false
	}
	return true
}

// next returns the absolute position of the bit following pos when
// walking the field from its first stored bit. For Intel that is the
// raw LSB upwards, for Motorola the raw MSB downwards through the
// sawtooth numbering (bit 7..0 of byte n, then bit 7 of byte n+1).
func (f Field) next(pos int) int {
	if f.ByteOrder == Intel {
		return pos + 1
	}
	if pos%8 == 0 {
		return pos + 15
	}
	return pos - 1
}

// Bits returns the absolute bit positions of the field, indexed by raw
// bit number (index 0 is the least significant bit of the raw value).
// Bit n of a frame is bit n%8 of byte n/8.
func (f Field) Bits() []int {
	if !f.valid() {
		return nil
	}
	bits := make([]int, f.Length)
	pos := f.StartBit
	for i := 0; i < f.Length; i++ {
		if f.ByteOrder == Intel {
			bits[i] = pos
		} else {
			bits[f.Length-1-i] = pos
		}
		pos = f.next(pos)
	}
	return bits
}

// Span returns the lowest and highest absolute bit touched by the field.
func (f Field) Span() (lo, hi int) {
	lo, hi = math.MaxInt, -1
	pos := f.StartBit
	for i := 0; i < f.Length; i++ {
		if pos < lo {
			lo = pos
		}
		if pos > hi {
			hi = pos
		}
		pos = f.next(pos)
	}
	return lo, hi
}

// MinFrameLength is the smallest payload, in bytes, holding the field.
func (f Field) MinFrameLength() int {
	if !f.valid() {
		return 0
	}
	_, hi := f.Span()
	return hi/8 + 1
}

// FitsIn reports whether every bit of the field lies inside a frame of
// frameLength bytes.
func (f Field) FitsIn(frameLength int) bool {
	if !f.valid() {
		return false
	}
	return f.MinFrameLength() <= frameLength
}

func (f Field) check(data []byte) error {
	if !f.valid() {
		return ErrInvalidField
	}
	if len(data) < f.MinFrameLength() {
		return ErrBufferTooShort
	}
	return nil
}

// Extract gathers the bits of the field into an unsigned accumulator,
// raw bit 0 in the least significant position.
func Extract(data []byte, f Field) (uint64, error) {
	if err := f.check(data); err != nil {
		return 0, err
	}

	var raw uint64
	pos := f.StartBit
	for i := 0; i < f.Length; i++ {
		bit := uint64(data[pos/8]>>(pos%8)) & 0x01
		if f.ByteOrder == Intel {
			raw |= bit << i
		} else {
			raw |= bit << (f.Length - i - 1)
		}
		pos = f.next(pos)
	}
	return raw, nil
}

// Insert scatters the low Length bits of raw into data. Bits outside the
// field are left as they were.
func Insert(data []byte, f Field, raw uint64) error {
	if err := f.check(data); err != nil {
		return err
	}

	pos := f.StartBit
	for i := 0; i < f.Length; i++ {
		var bit uint64
		if f.ByteOrder == Intel {
			bit = (raw >> i) & 0x01
		} else {
			bit = (raw >> (f.Length - i - 1)) & 0x01
		}
		mask := byte(1) << (pos % 8)
		if bit == 1 {
			data[pos/8] |= mask
		} else {
			data[pos/8] &^= mask
		}
		pos = f.next(pos)
	}
	return nil
}

// Mask returns raw truncated to length bits.
func Mask(raw uint64, length int) uint64 {
	if length >= 64 {
		return raw
	}
	return raw & (uint64(1)<<length - 1)
}

// SignExtend interprets the low length bits of raw as a two's complement
// number.
func SignExtend(raw uint64, length int) int64 {
	if length >= 64 {
		return int64(raw)
	}
	raw = Mask(raw, length)
	if raw&(uint64(1)<<(length-1)) != 0 {
		raw |= ^(uint64(1)<<length - 1)
	}
	return int64(raw)
}

// Number converts the raw bit pattern to the unscaled number it encodes.
func (f Field) Number(raw uint64) float64 {
	switch f.Kind {
	case Signed:
		return float64(SignExtend(raw, f.Length))
	case Float:
		if f.Length == 32 {
			return float64(math.Float32frombits(uint32(raw)))
		}
		return math.Float64frombits(raw)
	default:
		return float64(Mask(raw, f.Length))
	}
}

// Physical returns raw * factor + offset.
func (f Field) Physical(raw uint64) float64 {
	return f.Number(raw)*f.Factor + f.Offset
}

// Raw converts a physical value back to the bit pattern of the field.
// Integer kinds round half away from zero and are truncated to Length
// bits in two's complement.
func (f Field) Raw(physical float64) uint64 {
	v := (physical - f.Offset) / f.Factor
	if f.Kind == Float {
		if f.Length == 32 {
			return uint64(math.Float32bits(float32(v)))
		}
		return math.Float64bits(v)
	}

	v = math.Round(v)
	var raw uint64
	switch {
	case math.IsNaN(v):
		raw = 0
	case v >= math.MaxUint64:
		raw = math.MaxUint64
	case v >= 1<<63:
		raw = uint64(v)
	case v <= math.MinInt64:
		raw = 1 << 63
	default:
		raw = uint64(int64(v))
	}
	return Mask(raw, f.Length)
}

// Decode extracts the field from data and scales it.
func Decode(data []byte, f Field) (raw uint64, physical float64, err error) {
	raw, err = Extract(data, f)
	if err != nil {
		return 0, 0, err
	}
	return raw, f.Physical(raw), nil
}

// Encode scales physical to raw and inserts it into data.
func Encode(data []byte, f Field, physical float64) (uint64, error) {
	if err := f.check(data); err != nil {
		return 0, err
	}
	raw := f.Raw(physical)
	return raw, Insert(data, f, raw)
}
