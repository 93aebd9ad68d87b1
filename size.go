package log

import (
	"strconv"
	"strings"
)

// ParseFileSize converts "<number>[unit]" to bytes. Units are KB, MB and GB with 1024-based
// multipliers, case-insensitive; spaces and underscores between number and unit are ignored.
// A bare number is bytes.
func ParseFileSize(sizeStr string) (uint64, error) {
	s := strings.TrimSpace(sizeStr)

	pos := 0
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		pos++
	}
	if pos == 0 {
		return 0, fmtErrorf("%w: no numeric part in '%s'", ErrInvalidFileSize, sizeStr)
	}

	value, err := strconv.ParseUint(s[:pos], 10, 64)
	if err != nil {
		return 0, fmtErrorf("%w: '%s': %v", ErrInvalidFileSize, sizeStr, err)
	}

	unit := strings.ToUpper(strings.NewReplacer("_", "", " ", "", "\t", "").Replace(s[pos:]))

	var mult uint64
	switch unit {
	case "":
		return value, nil
	case "KB":
		mult = sizeKB
	case "MB":
		mult = sizeMB
	case "GB":
		mult = sizeGB
	default:
		return 0, fmtErrorf("%w: unknown unit '%s' in '%s' (use KB, MB or GB)", ErrInvalidFileSize, unit, sizeStr)
	}

	if value > ^uint64(0)/mult {
		return 0, fmtErrorf("%w: '%s' overflows", ErrInvalidFileSize, sizeStr)
	}
	return value * mult, nil
}

// fileSizeValue accepts a decoded document value: an unsigned integer or a size string
func fileSizeValue(v any) (uint64, error) {
	switch n := v.(type) {
	case string:
		return ParseFileSize(n)
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, fmtErrorf("%w: %v is not an unsigned integer", ErrInvalidFileSize, n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmtErrorf("%w: %d is negative", ErrInvalidFileSize, n)
		}
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmtErrorf("%w: %d is negative", ErrInvalidFileSize, n)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	case interface{ Int64() (int64, error) }:
		// json.Number
		i, err := n.Int64()
		if err != nil || i < 0 {
			return 0, fmtErrorf("%w: %v is not an unsigned integer", ErrInvalidFileSize, v)
		}
		return uint64(i), nil
	default:
		return 0, fmtErrorf("%w: unsupported type %T", ErrInvalidFileSize, v)
	}
}
