package segment

import (
	"fmt"

	"github.com/renproject/surge"
)

// SizeHint implements the surge.SizeHinter interface.
func (node Node) SizeHint() int {
	return surge.SizeHintU64 + surge.SizeHintF64
}

// Marshal implements the surge.Marshaler interface.
func (node Node) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := surge.MarshalU64(uint64(node.ID), buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling id: %v", err)
	}
	buf, rem, err = surge.MarshalF64(node.Cap, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling cap: %v", err)
	}
	return buf, rem, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (node *Node) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	var id uint64
	buf, rem, err := surge.UnmarshalU64(&id, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling id: %v", err)
	}
	node.ID = NodeID(id)
	buf, rem, err = surge.UnmarshalF64(&node.Cap, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling cap: %v", err)
	}
	return buf, rem, nil
}

// SizeHint implements the surge.SizeHinter interface.
func (row Row) SizeHint() int {
	return surge.SizeHintU64 + surge.SizeHintU64 + surge.SizeHintF64
}

// Marshal implements the surge.Marshaler interface.
func (row Row) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := surge.MarshalU64(uint64(row.NodeID), buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling node id: %v", err)
	}
	buf, rem, err = surge.MarshalU64(row.L, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling slot: %v", err)
	}
	buf, rem, err = surge.MarshalF64(row.Len, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling length: %v", err)
	}
	return buf, rem, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (row *Row) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	var nodeID uint64
	buf, rem, err := surge.UnmarshalU64(&nodeID, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling node id: %v", err)
	}
	row.NodeID = NodeID(nodeID)
	buf, rem, err = surge.UnmarshalU64(&row.L, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling slot: %v", err)
	}
	buf, rem, err = surge.UnmarshalF64(&row.Len, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling length: %v", err)
	}
	return buf, rem, nil
}

// SizeHint implements the surge.SizeHinter interface.
func (table Table) SizeHint() int {
	return surge.SizeHintU32 + len(table.Rows)*Row{}.SizeHint()
}

// Marshal implements the surge.Marshaler interface.
func (table Table) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := surge.MarshalU32(uint32(len(table.Rows)), buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling row count: %v", err)
	}
	for _, row := range table.Rows {
		buf, rem, err = row.Marshal(buf, rem)
		if err != nil {
			return buf, rem, fmt.Errorf("marshaling row: %v", err)
		}
	}
	return buf, rem, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (table *Table) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	var numRows uint32
	buf, rem, err := surge.UnmarshalU32(&numRows, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling row count: %v", err)
	}
	if int(numRows)*(Row{}).SizeHint() > rem {
		return buf, rem, fmt.Errorf("unmarshaling rows: row count %v exceeds buffer", numRows)
	}
	table.Rows = make([]Row, 0, numRows)
	for i := uint32(0); i < numRows; i++ {
		row := Row{}
		buf, rem, err = row.Unmarshal(buf, rem)
		if err != nil {
			return buf, rem, fmt.Errorf("unmarshaling row: %v", err)
		}
		table.Rows = append(table.Rows, row)
	}
	return buf, rem, nil
}
