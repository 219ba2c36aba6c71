package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID          = errors.New("record id is required")
	ErrEmptyType        = errors.New("record type is required")
	ErrInvalidScope     = errors.New("invalid scope")
	ErrZoneRequired     = errors.New("zoned record without a zone")
	ErrZoneNotAllowed   = errors.New("public record with a zone or share")
	ErrInvalidZone      = errors.New("zone needs a name and an owner")
	ErrEmptyPropertyKey = errors.New("property key is required")
	ErrInvalidReference = errors.New("invalid relationship reference")
	ErrSelfParent       = errors.New("record is its own parent")
)
