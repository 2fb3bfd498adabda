// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// matrixMagic opens every serialized feature matrix.
var matrixMagic = [4]byte{'F', 'C', 'M', 'X'}

// compressedSuffix marks a zstd-compressed matrix file.
const compressedSuffix = ".zst"

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix builds a matrix from rows of equal length.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	m := &Matrix{Rows: len(rows)}
	if len(rows) > 0 {
		m.Cols = len(rows[0])
	}
	m.Data = make([]float64, 0, m.Rows*m.Cols)
	for i, r := range rows {
		if len(r) != m.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidArtifact, i, len(r), m.Cols)
		}
		m.Data = append(m.Data, r...)
	}
	return m, nil
}

// Row returns a read-only view of row i.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols : (i+1)*m.Cols]
}

// checkFinite rejects NaN and infinite entries.
func (m *Matrix) checkFinite() error {
	for i, v := range m.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: matrix entry (%d,%d) is not finite", ErrInvalidArtifact, i/m.Cols, i%m.Cols)
		}
	}
	return nil
}

// EncodeMatrix serializes m. When name ends in ".zst" the payload is
// zstd-compressed.
func EncodeMatrix(m *Matrix, name string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(12 + 8*len(m.Data))
	buf.Write(matrixMagic[:])

	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(m.Rows)) //nolint:gosec // bounded by validation
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(m.Cols)) //nolint:gosec // bounded by validation
	buf.Write(hdr[:])

	var cell [8]byte
	for _, v := range m.Data {
		binary.LittleEndian.PutUint64(cell[:], math.Float64bits(v))
		buf.Write(cell[:])
	}

	if !strings.HasSuffix(name, compressedSuffix) {
		return buf.Bytes(), nil
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

// DecodeMatrix parses a serialized matrix, decompressing it first when
// name ends in ".zst".
func DecodeMatrix(data []byte, name string) (*Matrix, error) {
	if strings.HasSuffix(name, compressedSuffix) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: decompress matrix: %w", ErrInvalidArtifact, err)
		}
	}

	r := bytes.NewReader(data)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != matrixMagic {
		return nil, fmt.Errorf("%w: matrix header is not FCMX", ErrInvalidArtifact)
	}

	var rows, cols uint32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: matrix rows: %w", ErrInvalidArtifact, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, fmt.Errorf("%w: matrix cols: %w", ErrInvalidArtifact, err)
	}

	cells := uint64(rows) * uint64(cols)
	if r.Len()%8 != 0 || uint64(r.Len()/8) != cells {
		return nil, fmt.Errorf("%w: matrix payload is %d bytes for %dx%d", ErrInvalidArtifact, r.Len(), rows, cols)
	}

	m := &Matrix{Rows: int(rows), Cols: int(cols), Data: make([]float64, cells)}
	if err := binary.Read(r, binary.LittleEndian, m.Data); err != nil {
		return nil, fmt.Errorf("%w: matrix payload: %w", ErrInvalidArtifact, err)
	}
	return m, nil
}
