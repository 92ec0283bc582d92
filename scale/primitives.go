package scale

import (
	"encoding/binary"
	"io"
)

// EncodeBool writes v as a single 0x00/0x01 byte.
func EncodeBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// DecodeBool reads a single SCALE-encoded boolean.
func DecodeBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &DecodeError{Kind: LengthMismatch, Msg: "invalid bool tag"}
	}
}

// EncodeUint8 writes a single byte.
func EncodeUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

// DecodeUint8 reads a single byte.
func DecodeUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// EncodeUint16 writes v little-endian.
func EncodeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// DecodeUint16 reads a little-endian uint16.
func DecodeUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// EncodeUint32 writes v little-endian.
func EncodeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// DecodeUint32 reads a little-endian uint32.
func DecodeUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// EncodeUint64 writes v little-endian.
func EncodeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// DecodeUint64 reads a little-endian uint64.
func DecodeUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// EncodeFixedBytes writes b verbatim (used for fixed-size arrays such as
// 32-byte hashes and account ids).
func EncodeFixedBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// DecodeFixedBytes reads exactly len(b) bytes into b.
func DecodeFixedBytes(r io.Reader, b []byte) error {
	return ReadFull(r, b)
}

// EncodeBytes writes a compact-length-prefixed byte string (also used
// for Vec<u8>).
func EncodeBytes(w io.Writer, b []byte) error {
	if err := EncodeCompactUint64(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// DecodeBytes reads a compact-length-prefixed byte string.
func DecodeBytes(r io.Reader) ([]byte, error) {
	n, err := DecodeCompactUint64(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeString writes a UTF-8 string the same way as a byte vector.
func EncodeString(w io.Writer, s string) error {
	return EncodeBytes(w, []byte(s))
}

// DecodeString reads a UTF-8 string encoded as a byte vector.
func DecodeString(r io.Reader) (string, error) {
	b, err := DecodeBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeVec writes a compact length followed by each element encoded in
// turn via encodeElem.
func EncodeVec[T any](w io.Writer, elems []T, encodeElem func(io.Writer, T) error) error {
	if err := EncodeCompactUint64(w, uint64(len(elems))); err != nil {
		return err
	}
	for _, e := range elems {
		if err := encodeElem(w, e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeVec reads a compact length followed by that many elements via
// decodeElem.
func DecodeVec[T any](r io.Reader, decodeElem func(io.Reader) (T, error)) ([]T, error) {
	n, err := DecodeCompactUint64(r)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := uint64(0); i < n; i++ {
		e, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EncodeOption writes None as 0x00, or Some(v) as 0x01 followed by v's
// encoding.
func EncodeOption[T any](w io.Writer, v *T, encodeElem func(io.Writer, T) error) error {
	if v == nil {
		_, err := w.Write([]byte{0x00})
		return err
	}
	if _, err := w.Write([]byte{0x01}); err != nil {
		return err
	}
	return encodeElem(w, *v)
}

// DecodeOption reads a SCALE Option<T>.
func DecodeOption[T any](r io.Reader, decodeElem func(io.Reader) (T, error)) (*T, error) {
	tag, err := DecodeUint8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0x00:
		return nil, nil
	case 0x01:
		v, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, &DecodeError{Kind: UnknownVariant, Msg: "invalid Option tag"}
	}
}

// Result mirrors Rust's Result<T, E> for the handful of pallet
// responses that encode one.
type Result[T, E any] struct {
	Ok  *T
	Err *E
}

// EncodeResult writes a SCALE Result<T, E>.
func EncodeResult[T, E any](w io.Writer, res Result[T, E], encodeOk func(io.Writer, T) error, encodeErr func(io.Writer, E) error) error {
	if res.Ok != nil {
		if _, err := w.Write([]byte{0x00}); err != nil {
			return err
		}
		return encodeOk(w, *res.Ok)
	}
	if _, err := w.Write([]byte{0x01}); err != nil {
		return err
	}
	return encodeErr(w, *res.Err)
}

// DecodeResult reads a SCALE Result<T, E>.
func DecodeResult[T, E any](r io.Reader, decodeOk func(io.Reader) (T, error), decodeErr func(io.Reader) (E, error)) (Result[T, E], error) {
	tag, err := DecodeUint8(r)
	if err != nil {
		return Result[T, E]{}, err
	}
	switch tag {
	case 0x00:
		v, err := decodeOk(r)
		if err != nil {
			return Result[T, E]{}, err
		}
		return Result[T, E]{Ok: &v}, nil
	case 0x01:
		e, err := decodeErr(r)
		if err != nil {
			return Result[T, E]{}, err
		}
		return Result[T, E]{Err: &e}, nil
	default:
		return Result[T, E]{}, &DecodeError{Kind: UnknownVariant, Msg: "invalid Result tag"}
	}
}
