package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"tern/internal/source"
)

// FieldInfo describes one labelled constructor argument. Position is the
// argument's index within its constructor; labelled arguments may sit after
// unlabelled ones, so the position is stored explicitly rather than derived
// from the slice index.
type FieldInfo struct {
	Name     source.StringID
	Position uint32
	Type     TypeID
}

// VariantInfo describes a single constructor of a custom type.
// Field names are unique within a variant; the loader enforces this.
type VariantInfo struct {
	Name   source.StringID
	Fields []FieldInfo
}

// CustomInfo stores metadata for a custom type: its name, declaration site,
// and ordered, non-empty variant list.
type CustomInfo struct {
	Name     source.StringID
	Decl     source.Span
	Variants []VariantInfo
}

// RegisterCustom allocates a custom type slot and returns its TypeID.
func (in *Interner) RegisterCustom(name source.StringID, decl source.Span) TypeID {
	slot := in.appendCustomInfo(CustomInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindCustom, Payload: slot})
}

// SetVariants stores the resolved constructors for the custom type.
func (in *Interner) SetVariants(typeID TypeID, variants []VariantInfo) {
	info := in.customInfo(typeID)
	if info == nil {
		return
	}
	info.Variants = cloneVariants(variants)
}

// CustomInfo returns metadata for the provided custom TypeID.
func (in *Interner) CustomInfo(typeID TypeID) (*CustomInfo, bool) {
	info := in.customInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// VariantCount reports how many constructors the custom type has, or zero
// when typeID is not a custom type.
func (in *Interner) VariantCount(typeID TypeID) int {
	info := in.customInfo(typeID)
	if info == nil {
		return 0
	}
	return len(info.Variants)
}

func (in *Interner) customInfo(typeID TypeID) *CustomInfo {
	if typeID == NoTypeID {
		return nil
	}
	t, ok := in.Lookup(typeID)
	if !ok || t.Kind != KindCustom {
		return nil
	}
	if t.Payload == 0 || int(t.Payload) >= len(in.customs) {
		return nil
	}
	return &in.customs[t.Payload]
}

func (in *Interner) appendCustomInfo(info CustomInfo) uint32 {
	in.customs = append(in.customs, CustomInfo{
		Name:     info.Name,
		Decl:     info.Decl,
		Variants: cloneVariants(info.Variants),
	})
	slot, err := safecast.Conv[uint32](len(in.customs) - 1)
	if err != nil {
		panic(fmt.Errorf("custom info overflow: %w", err))
	}
	return slot
}

func cloneVariants(variants []VariantInfo) []VariantInfo {
	if len(variants) == 0 {
		return nil
	}
	out := make([]VariantInfo, len(variants))
	copy(out, variants)
	for i := range out {
		out[i].Fields = slices.Clone(out[i].Fields)
	}
	return out
}
