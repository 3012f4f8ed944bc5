package wheel

// Prize is one wheel segment's payload
// Order in the prize list defines segment order
type Prize struct {
	Name  string
	Image string // Path to the prize image, loaded by the asset package
	Color string // Hex segment color, empty selects the default palette entry
}

// Result is emitted exactly once per completed spin
type Result struct {
	Prize Prize
	Index int
	Angle float64 // Final angle normalized to [0, 360)
}
