// Package common holds small helpers shared across the repo,
// mainly the pooled scratch buffers serialization and hashing run on.
package common

import (
	"encoding/binary"
	"io"
	"sync"
)

// FreeBytes is a reusable byte slice, recycled through a pool to
// relieve gc pressure on the hot hashing and serialization paths.
type FreeBytes struct {
	Bytes []byte
}

// Free resets the bytes and hands them back to the pool.
func (fb *FreeBytes) Free() {
	fb.Bytes = fb.Bytes[:0]
	freeBytesPool.Put(fb)
}

// NewFreeBytes returns a FreeBytes from the pool, allocating the
// backing array if the pool handed back a fresh one.
func NewFreeBytes() *FreeBytes {
	fb := freeBytesPool.Get().(*FreeBytes)
	if fb.Bytes == nil {
		// 64 is what hashing two children needs, and that's the most
		// frequent caller
		fb.Bytes = make([]byte, 0, 64)
	}
	return fb
}

var freeBytesPool = sync.Pool{
	New: func() interface{} { return new(FreeBytes) },
}

// Uint16 reads two bytes from r in the given byte order.
func (fb *FreeBytes) Uint16(r io.Reader, byteOrder binary.ByteOrder) (uint16, error) {
	buf := fb.Bytes[:2]
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return byteOrder.Uint16(buf), nil
}

// Uint32 reads four bytes from r in the given byte order.
func (fb *FreeBytes) Uint32(r io.Reader, byteOrder binary.ByteOrder) (uint32, error) {
	buf := fb.Bytes[:4]
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return byteOrder.Uint32(buf), nil
}

// Uint64 reads eight bytes from r in the given byte order.
func (fb *FreeBytes) Uint64(r io.Reader, byteOrder binary.ByteOrder) (uint64, error) {
	buf := fb.Bytes[:8]
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return byteOrder.Uint64(buf), nil
}

// PutUint16 writes val to w as two bytes in the given byte order.
func (fb *FreeBytes) PutUint16(w io.Writer, byteOrder binary.ByteOrder, val uint16) error {
	buf := fb.Bytes[:2]
	byteOrder.PutUint16(buf, val)
	_, err := w.Write(buf)
	return err
}

// PutUint32 writes val to w as four bytes in the given byte order.
func (fb *FreeBytes) PutUint32(w io.Writer, byteOrder binary.ByteOrder, val uint32) error {
	buf := fb.Bytes[:4]
	byteOrder.PutUint32(buf, val)
	_, err := w.Write(buf)
	return err
}

// PutUint64 writes val to w as eight bytes in the given byte order.
func (fb *FreeBytes) PutUint64(w io.Writer, byteOrder binary.ByteOrder, val uint64) error {
	buf := fb.Bytes[:8]
	byteOrder.PutUint64(buf, val)
	_, err := w.Write(buf)
	return err
}
