package segment

// Denoise erases every foreground pixel with fewer than minFriends foreground
// 8-neighbors and returns the number of pixels erased.
//
// The image is scanned once, column by column (x ascending, then y ascending
// within each column). An erased pixel never causes its neighbors to be
// re-evaluated, so the filter does not iterate to a fixed point.
//
// With DenoiseInPlace, neighbor counts are read from the image as it is being
// rewritten: a pixel erased earlier in the scan no longer counts as a friend
// for pixels visited after it. A diagonal chain can therefore be eaten from
// its first-scanned end. With DenoiseSnapshot, counts come from the mask as it
// was before the pass, and only pixels that were isolated on entry are erased.
func Denoise(img *Image, minFriends int, threshold uint8, mode DenoiseMode) int {
	if img.Empty() || minFriends <= 0 {
		return 0
	}

	src := img
	if mode == DenoiseSnapshot {
		src = img.Clone()
	}

	erased := 0
	for x := 0; x < img.Width; x++ {
		for y := 0; y < img.Height; y++ {
			if !src.IsForeground(x, y, threshold) {
				continue
			}
			if src.FriendCount(x, y, threshold) < minFriends {
				img.Set(x, y, Black)
				erased++
			}
		}
	}
	return erased
}
