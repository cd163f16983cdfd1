package squelch

// Type selects the detector implementation for a receiver channel.
type Type string

const (
	TypeLevel Type = "level"
	TypeCTCSS Type = "ctcss"
	TypeOpen  Type = "open"
)
