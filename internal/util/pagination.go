package util

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func Calculate(page, size int) (offset, limit int) {
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return (page - 1) * size, size
}
