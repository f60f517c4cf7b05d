package model

// RGB is a display colour shared by the rod canvas and the exporters.
type RGB struct {
	R, G, B uint8
}

// UncutColor is used for the rod before any piece is known.
var UncutColor = RGB{R: 203, G: 213, B: 225}

// RodColors is indexed by piece length - 1, wrapping for longer pieces.
var RodColors = []RGB{
	{59, 130, 246},  // blue
	{139, 92, 246},  // violet
	{16, 185, 129},  // emerald
	{245, 158, 11},  // amber
	{239, 68, 68},   // red
	{6, 182, 212},   // cyan
	{236, 72, 153},  // pink
	{132, 204, 22},  // lime
	{249, 115, 22},  // orange
	{99, 102, 241},  // indigo
	{20, 184, 166},  // teal
	{225, 29, 72},   // rose
	{124, 58, 237},  // purple
	{14, 165, 233},  // sky
	{168, 85, 247},  // fuchsia
}

// PieceColor returns the colour for a piece of the given length.
func PieceColor(length int) RGB {
	if length < 1 {
		return UncutColor
	}
	return RodColors[(length-1)%len(RodColors)]
}
