package diag

import "fmt"

// Code is a compact, stable identifier for a diagnostic kind.
type Code uint16

const (
	UnknownCode Code = 0

	// Definition validation (1000-series). These guard the preconditions the
	// resolver relies on: well-formed custom types and well-formed accesses.
	DefInfo              Code = 1000
	DefEmptyCustomType   Code = 1001
	DefDuplicateType     Code = 1002
	DefDuplicateVariant  Code = 1003
	DefDuplicateField    Code = 1004
	DefDuplicatePosition Code = 1005
	DefUnknownTypeName   Code = 1006
	DefUnknownReceiver   Code = 1007
	DefSpanOutOfRange    Code = 1008

	// Semantic checks (3000-series).
	SemaInfo               Code = 3000
	SemaUnknownRecordField Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	DefInfo:              "Definition information",
	DefEmptyCustomType:   "Custom type has no variants",
	DefDuplicateType:     "Duplicate type name",
	DefDuplicateVariant:  "Duplicate variant name",
	DefDuplicateField:    "Duplicate field in variant",
	DefDuplicatePosition: "Duplicate field position in variant",
	DefUnknownTypeName:   "Unknown type name",
	DefUnknownReceiver:   "Unknown receiver type",
	DefSpanOutOfRange:    "Span outside source excerpt",

	SemaInfo:               "Semantic information",
	SemaUnknownRecordField: "Unknown record field",
}

// ID renders the code in its stable prefixed form, e.g. SEM3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DEF%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
