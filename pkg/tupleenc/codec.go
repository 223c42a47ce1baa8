package tupleenc

import (
	"encoding/binary"
	"errors"
	"math"
)

// Type-tag bytes. Ordering across families is the ordering of these tags,
// so the families are laid out in the declared scalar order: nil, byte
// string, string, integer, float, bool.
const (
	tagNil    byte = 0x00
	tagBytes  byte = 0x01
	tagString byte = 0x02
	tagInt    byte = 0x0c
	tagFloat  byte = 0x20
	tagFalse  byte = 0x26
	tagTrue   byte = 0x27

	escByte byte = 0x00
	escFF   byte = 0xff
	escEnd  byte = 0x00
)

var (
	// ErrKeyOutsideSubspace is returned by Unpack when a key does not
	// carry the expected subspace prefix.
	ErrKeyOutsideSubspace = errors.New("tupleenc: key outside subspace")
	// ErrMalformedTuple is returned by Unpack on invalid encoding.
	ErrMalformedTuple = errors.New("tupleenc: malformed tuple encoding")
)

// Pack encodes a tuple into a lexicographically-ordered byte string such
// that for any two tuples T1, T2, Pack(T1) < Pack(T2) (byte-lexicographic)
// iff T1 < T2 (component-wise, per the per-element ordering below).
//
// Variable-length string and byte-string elements use the classic
// order-preserving escape scheme: every literal 0x00 byte in the content is
// escaped as the two bytes 0x00 0xFF, and the element is terminated by the
// two bytes 0x00 0x00. This keeps a shorter string sorting before any
// string it is a strict prefix of, which plain prefix comparison would
// otherwise get backwards (e.g. "ab" vs "ab\x00c").
//
// Integers are encoded as a fixed 8-byte big-endian word with the sign bit
// flipped (i.e. biased by 2^63), so two's-complement ordering becomes
// unsigned byte-lexicographic ordering across the full int64 range.
// Floats flip the sign bit when non-negative and flip every bit when
// negative, the standard IEEE-754 order-preserving transform.
func Pack(t Tuple) []byte {
	var out []byte
	for _, e := range t {
		out = appendElement(out, e)
	}
	return out
}

func appendElement(out []byte, e TupleElement) []byte {
	switch e.kind {
	case KindNil:
		return append(out, tagNil)
	case KindBytes:
		out = append(out, tagBytes)
		return appendEscaped(out, e.raw)
	case KindString:
		out = append(out, tagString)
		return appendEscaped(out, []byte(e.s))
	case KindInt:
		out = append(out, tagInt)
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(e.i)^(uint64(1)<<63))
		return append(out, buf[:]...)
	case KindFloat:
		out = append(out, tagFloat)
		bits := math.Float64bits(e.f)
		if e.f >= 0 {
			bits |= uint64(1) << 63
		} else {
			bits = ^bits
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], bits)
		return append(out, buf[:]...)
	case KindBool:
		if e.b {
			return append(out, tagTrue)
		}
		return append(out, tagFalse)
	default:
		return append(out, tagNil)
	}
}

func appendEscaped(out []byte, raw []byte) []byte {
	for _, b := range raw {
		if b == escByte {
			out = append(out, escByte, escFF)
		} else {
			out = append(out, b)
		}
	}
	return append(out, escByte, escEnd)
}

// Unpack decodes a byte string produced by Pack back into a tuple.
func Unpack(data []byte) (Tuple, error) {
	var t Tuple
	for len(data) > 0 {
		tag := data[0]
		data = data[1:]
		switch tag {
		case tagNil:
			t = append(t, Nil())
		case tagBytes, tagString:
			raw, rest, err := readEscaped(data)
			if err != nil {
				return nil, err
			}
			if tag == tagBytes {
				t = append(t, Bytes(raw))
			} else {
				t = append(t, String(string(raw)))
			}
			data = rest
		case tagInt:
			if len(data) < 8 {
				return nil, ErrMalformedTuple
			}
			bits := binary.BigEndian.Uint64(data[:8])
			t = append(t, Int(int64(bits^(uint64(1)<<63))))
			data = data[8:]
		case tagFloat:
			if len(data) < 8 {
				return nil, ErrMalformedTuple
			}
			bits := binary.BigEndian.Uint64(data[:8])
			if bits&(uint64(1)<<63) != 0 {
				bits &^= uint64(1) << 63
			} else {
				bits = ^bits
			}
			t = append(t, Float(math.Float64frombits(bits)))
			data = data[8:]
		case tagTrue:
			t = append(t, Bool(true))
		case tagFalse:
			t = append(t, Bool(false))
		default:
			return nil, ErrMalformedTuple
		}
	}
	return t, nil
}

func readEscaped(data []byte) (raw []byte, rest []byte, err error) {
	for i := 0; i < len(data); i++ {
		if data[i] != escByte {
			continue
		}
		if i+1 >= len(data) {
			return nil, nil, ErrMalformedTuple
		}
		switch data[i+1] {
		case escFF:
			raw = append(raw, data[:i]...)
			raw = append(raw, escByte)
			data = data[i+2:]
			i = -1
			continue
		case escEnd:
			raw = append(raw, data[:i]...)
			return raw, data[i+2:], nil
		default:
			return nil, nil, ErrMalformedTuple
		}
	}
	return nil, nil, ErrMalformedTuple
}
