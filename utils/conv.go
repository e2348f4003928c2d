package utils

import "strconv"

// AtoiOr 在 integer 为空或非法时返回 fallback
func AtoiOr(integer string, fallback int) int {
	if len(integer) == 0 {
		return fallback
	}

	ret, err := strconv.Atoi(integer)
	if err != nil {
		return fallback
	}

	return ret
}
