package layout

// Paginate splits total copies into pages of at most perPage copies and
// returns the number of copies on each page. Every page but the last is
// full. It returns nil when total or perPage is not positive.
func Paginate(total, perPage int) []int {
	if total <= 0 || perPage <= 0 {
		return nil
	}
	pages := make([]int, 0, (total+perPage-1)/perPage)
	for total > 0 {
		n := min(total, perPage)
		pages = append(pages, n)
		total -= n
	}
	return pages
}
