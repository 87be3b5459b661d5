package segment

// ClearBorder sets row 0, row H-1, column 0 and column W-1 to Black and
// returns how many foreground pixels (at threshold) it erased. Calling it
// again on the same image erases nothing.
func ClearBorder(img *Image, threshold uint8) int {
	if img.Empty() {
		return 0
	}

	erased := 0
	erase := func(x, y int) {
		if img.IsForeground(x, y, threshold) {
			erased++
		}
		img.Set(x, y, Black)
	}

	for x := 0; x < img.Width; x++ {
		erase(x, 0)
		erase(x, img.Height-1)
	}
	for y := 0; y < img.Height; y++ {
		erase(0, y)
		erase(img.Width-1, y)
	}
	return erased
}
