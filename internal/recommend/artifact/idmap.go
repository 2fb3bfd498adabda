// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package artifact

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// idColumn is the header of the id table.
const idColumn = "db_id"

// IDMap is the ordered mapping between catalog ids and matrix rows.
type IDMap struct {
	ids  []int64
	rows map[int64]int
}

// NewIDMap builds a mapping where ids[i] is the id of matrix row i.
func NewIDMap(ids []int64) (*IDMap, error) {
	m := &IDMap{
		ids:  make([]int64, len(ids)),
		rows: make(map[int64]int, len(ids)),
	}
	copy(m.ids, ids)
	for row, id := range ids {
		if prev, dup := m.rows[id]; dup {
			return nil, fmt.Errorf("%w: id %d maps to rows %d and %d", ErrInvalidArtifact, id, prev, row)
		}
		m.rows[id] = row
	}
	return m, nil
}

// Row returns the matrix row for id.
func (m *IDMap) Row(id int64) (int, bool) {
	row, ok := m.rows[id]
	return row, ok
}

// ID returns the id stored at row.
func (m *IDMap) ID(row int) (int64, bool) {
	if row < 0 || row >= len(m.ids) {
		return 0, false
	}
	return m.ids[row], true
}

// Len returns the number of mapped rows.
func (m *IDMap) Len() int {
	return len(m.ids)
}

// IDs returns the ids in row order. The slice is shared.
func (m *IDMap) IDs() []int64 {
	return m.ids
}

// ParseIDs reads a one-column CSV with a db_id header.
func ParseIDs(data []byte) (*IDMap, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: id table header: %w", ErrInvalidArtifact, err)
	}
	if strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff")) != idColumn {
		return nil, fmt.Errorf("%w: id table header is %q, want %q", ErrInvalidArtifact, header[0], idColumn)
	}

	var ids []int64
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: id table line %d: %w", ErrInvalidArtifact, line, err)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id table line %d: %w", ErrInvalidArtifact, line, err)
		}
		ids = append(ids, id)
	}
	return NewIDMap(ids)
}

// EncodeIDs writes ids as a db_id CSV.
func EncodeIDs(ids []int64) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{idColumn})
	for _, id := range ids {
		_ = w.Write([]string{strconv.FormatInt(id, 10)})
	}
	w.Flush()
	return buf.Bytes()
}
