package goshape

import (
	"fmt"
	"strconv"
)

// OffsetCursor is used when an API requires page tokens but the data is paged
// with skip/take. The token encodes the number of elements already returned.
type OffsetCursor struct {
	offset int
}

func NewOffsetCursor(offset int) *OffsetCursor {
	return &OffsetCursor{
		offset: offset,
	}
}

// DecodeOffsetCursor attempts to parse a base64-encoded string into
// *OffsetCursor. An empty token yields a nil cursor.
func DecodeOffsetCursor(b64String string) (*OffsetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	offsetBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, invalidArgf("failed to decode base64 encoded offset cursor: %v", err)
	}

	offset, err := strconv.Atoi(string(offsetBytes))
	if err != nil {
		return nil, invalidArgf("failed to decode offset cursor value: %v", err)
	}

	return &OffsetCursor{
		offset: offset,
	}, nil
}

// String - implements fmt.Stringer.
func (p *OffsetCursor) String() string {
	if p.IsEmpty() {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(p.offset)))
}

// IsEmpty - implements Cursor.
func (p *OffsetCursor) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// GetOffset returns the numeric offset value.
func (p *OffsetCursor) GetOffset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

// WithOffset sets the numeric offset value and returns the cursor.
func (p *OffsetCursor) WithOffset(offset int) *OffsetCursor {
	if p == nil {
		p = new(OffsetCursor)
	}

	p.offset = offset

	return p
}

// validate - implements Cursor.
func (p *OffsetCursor) validate(_ OrderBy) error {
	if p.GetOffset() < 0 {
		return invalidArgf("negative cursor offset %d", p.offset)
	}

	return nil
}

var (
	_ Cursor       = (*OffsetCursor)(nil)
	_ fmt.Stringer = (*OffsetCursor)(nil)
)
