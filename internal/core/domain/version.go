package domain

import (
	"strconv"
	"strings"
)

// VersionAtLeast compares dotted numeric versions such as "6.2" and "6.10".
// Missing components count as zero and non-numeric ones as zero.
func VersionAtLeast(have, want string) bool {
	h := strings.Split(have, ".")
	w := strings.Split(want, ".")
	for i := 0; i < max(len(h), len(w)); i++ {
		a, b := part(h, i), part(w, i)
		if a != b {
			return a > b
		}
	}
	return true
}

func part(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(strings.TrimSpace(parts[i]))
	return n
}
