package layout

import "strings"

// TrimStatusSegments shrinks an over-wide right zone by discarding leading
// status segments. The status summary follows a bracketed segment
// convention (e.g. "[utf-8 unix]"), so the policy works in two steps: first
// drop everything before the first '[', then drop through the first ']'.
// Input without usable bracket boundaries is returned as-is and the caller
// falls through to its normal truncate/wrap handling.
func TrimStatusSegments(right string, frameWidth int) string {
	if Width(right) <= frameWidth {
		return right
	}
	if i := strings.IndexByte(right, '['); i > 0 {
		right = right[i:]
		if Width(right) <= frameWidth {
			return right
		}
	}
	if i := strings.IndexByte(right, ']'); i >= 0 && i+1 < len(right) {
		right = strings.TrimLeft(right[i+1:], " ")
	}
	return right
}
