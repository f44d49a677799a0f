package payment

// Split implements the MPP split rule (spec.md §4.C): splitting `amount`
// fails if it is already below the min-shard floor, if halving it would
// cross that floor, or if a shard of this size (or larger) has already
// failed — in which case a fresh attempt is known to be futile. On
// success left = ceil(amount/2), right = floor(amount/2); left+right ==
// amount always holds.
func Split(amount, minShardAmt int64, failedAmounts []int64) (left, right int64, ok bool) {
	if amount < minShardAmt {
		return 0, 0, false
	}
	half := amount / 2
	if half < minShardAmt {
		return 0, 0, false
	}
	if len(failedAmounts) > 0 {
		min := failedAmounts[0]
		for _, a := range failedAmounts[1:] {
			if a < min {
				min = a
			}
		}
		if amount >= min {
			return 0, 0, false
		}
	}

	left = amount - half // ceil(amount/2)
	right = half         // floor(amount/2)
	return left, right, true
}
