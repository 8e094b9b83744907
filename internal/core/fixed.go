package core

// 16.8 fixed point: the integer pixel lives in the high bits and the low
// 8 bits hold the sub-pixel fraction.
const (
	FixedShift = 8
	FixedOne   = 1 << FixedShift
	fixedMask  = FixedOne - 1
)

// Fixed represents a 16.8 fixed-point coordinate or velocity.
type Fixed int

// ToFixed promotes a pixel position plus sub-pixel fraction to fixed point.
func ToFixed(pixel int, subpixel uint8) Fixed {
	return Fixed(pixel<<FixedShift + int(subpixel))
}

// PixelsToFixed converts whole pixels (per tick) to fixed point.
func PixelsToFixed(pixels int) Fixed {
	return Fixed(pixels << FixedShift)
}

// Pixel returns the integer pixel part, rounding towards negative infinity.
func (f Fixed) Pixel() int {
	return int(f) >> FixedShift
}

// Subpixel returns the fractional part in 1/256 pixel units.
func (f Fixed) Subpixel() uint8 {
	return uint8(int(f) & fixedMask)
}

// Split demotes f back to its pixel and sub-pixel parts.
func (f Fixed) Split() (pixel int, subpixel uint8) {
	return f.Pixel(), f.Subpixel()
}
