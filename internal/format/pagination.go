package format

import "strconv"

// Ellipsis is the placeholder label between non-adjacent page numbers.
const Ellipsis = "..."

// Pagination returns the button labels for a pager: all pages when there are
// seven or fewer, otherwise a window around the current page with ellipsis
// gaps. current is clamped into [1, total].
func Pagination(current, total int) []string {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	if total <= 7 {
		return pages(1, total)
	}

	// Near the front: first three, gap, last two.
	if current <= 3 {
		out := pages(1, 3)
		return append(out, Ellipsis, itoa(total-1), itoa(total))
	}

	// Near the back: first two, gap, last three.
	if current >= total-2 {
		out := []string{"1", "2", Ellipsis}
		return append(out, pages(total-2, total)...)
	}

	// Middle: first, gap, neighbors, gap, last.
	return []string{
		"1", Ellipsis,
		itoa(current - 1), itoa(current), itoa(current + 1),
		Ellipsis, itoa(total),
	}
}

func pages(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, itoa(p))
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
