package utils

import (
	"fmt"
)

func Get_size(data int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)
	switch {
	case data < KB:
		return fmt.Sprintf("%.2fB ", float64(data))
	case data < MB:
		return fmt.Sprintf("%.2fKB", float64(data)/KB)
	case data < GB:
		return fmt.Sprintf("%.2fMB", float64(data)/MB)
	case data < TB:
		return fmt.Sprintf("%.2fGB", float64(data)/GB)
	default:
		return fmt.Sprintf("%.2fTB", float64(data)/TB)
	}
}
