package widget

import "github.com/google/uuid"

// ValueKind tags the variants of a thumbnail value.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueString
	ValueAsset
)

// Value is what a thumbnail displays: an asset ID, the name of a registered
// UI image, or nothing. The zero value is the empty value.
type Value struct {
	kind  ValueKind
	str   string
	asset uuid.UUID
}

// EmptyValue returns the empty value.
func EmptyValue() Value {
	return Value{}
}

// StringValue returns a value naming a registered UI image.
// A string holding a canonical UUID literal is treated as an asset value.
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// AssetValue returns a value identifying a texture on the asset server.
func AssetValue(id uuid.UUID) Value {
	return Value{kind: ValueAsset, asset: id}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Str returns the image name for string values, else "".
func (v Value) Str() string {
	if v.kind != ValueString {
		return ""
	}
	return v.str
}

// Asset returns the asset ID for asset values, else uuid.Nil.
func (v Value) Asset() uuid.UUID {
	if v.kind != ValueAsset {
		return uuid.Nil
	}
	return v.asset
}

// normalized reinterprets string values holding a canonical 36 character
// UUID literal as asset values.
func (v Value) normalized() Value {
	if v.kind != ValueString || len(v.str) != 36 {
		return v
	}
	id, err := uuid.Parse(v.str)
	if err != nil {
		return v
	}
	return AssetValue(id)
}
