// Package scale implements the SCALE (Simple Concatenated Aggregate
// Little-Endian) binary codec used to encode and decode every type that
// crosses the wire with a Substrate-style chain: primitives, calls,
// extrinsics, events and storage entries.
//
// The package follows the encode-to/decode-from-stream shape used
// throughout this module's teacher lineage (wire.BtcEncode/BtcDecode):
// every encodable type implements Encode(io.Writer) error and
// Decode(io.Reader) error, and the free functions EncodeToBytes/DecodeFromBytes are
// thin convenience wrappers around a []byte buffer.
package scale

import (
	"bytes"
	"fmt"
	"io"
)

// Encodable is implemented by every type with a SCALE encoding.
type Encodable interface {
	Encode(w io.Writer) error
}

// Decodable is implemented by every type with a SCALE decoding.
type Decodable interface {
	Decode(r io.Reader) error
}

// Codec is the combination of Encodable and Decodable that every
// on-chain type in this module satisfies.
type Codec interface {
	Encodable
	Decodable
}

// EncodeToBytes runs v's Encode method against a fresh buffer and returns
// the resulting bytes.
func EncodeToBytes(v Encodable) []byte {
	var buf bytes.Buffer
	// Encode on an in-memory buffer never fails; bytes.Buffer.Write
	// never returns an error.
	if err := v.Encode(&buf); err != nil {
		panic(fmt.Sprintf("scale: in-memory encode failed: %v", err))
	}
	return buf.Bytes()
}

// DecodeFromBytes decodes v from b, returning an error if b contains
// trailing bytes that were not consumed by the decode.
func DecodeFromBytes(b []byte, v Decodable) error {
	r := bytes.NewReader(b)
	if err := v.Decode(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		return &DecodeError{Kind: LengthMismatch, Msg: fmt.Sprintf("%d trailing byte(s) after decode", r.Len())}
	}
	return nil
}

// DecodeErrorKind enumerates the ways a SCALE decode can fail, matching
// the codec failure conditions of the core transaction/extrinsic model.
type DecodeErrorKind int

const (
	// UnknownVariant is returned when a variant discriminant does not
	// match any of a tagged union's known tags.
	UnknownVariant DecodeErrorKind = iota
	// UnexpectedEOF is returned when the input is exhausted before a
	// value has been fully decoded.
	UnexpectedEOF
	// LengthMismatch is returned when a declared length prefix does not
	// match the number of bytes actually consumed (or left over).
	LengthMismatch
	// InvalidVersion is returned when an extrinsic's version byte, after
	// masking off the signed bit, is not 4.
	InvalidVersion
)

func (k DecodeErrorKind) String() string {
	switch k {
	case UnknownVariant:
		return "unknown variant"
	case UnexpectedEOF:
		return "unexpected eof"
	case LengthMismatch:
		return "length mismatch"
	case InvalidVersion:
		return "invalid version"
	default:
		return "unknown decode error"
	}
}

// DecodeError is the concrete error type returned by every Decode
// implementation in this module on failure.
type DecodeError struct {
	Kind DecodeErrorKind
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Msg == "" {
		return "scale: " + e.Kind.String()
	}
	return fmt.Sprintf("scale: %s: %s", e.Kind, e.Msg)
}

func wrapEOF(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &DecodeError{Kind: UnexpectedEOF, Msg: err.Error()}
	}
	return err
}

// ReadFull reads exactly len(buf) bytes from r, translating any
// end-of-stream error into the module's UnexpectedEOF decode error.
func ReadFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return wrapEOF(err)
}
