package core

// Paginate selects one page out of an ordered id sequence, reversed so the
// newest messages come first. It works on identifiers only, which lets the
// orchestrator run it before fetching any content and keep fetch cost bounded
// by perPage regardless of mailbox size.
//
// Callers guarantee page >= 1 and perPage >= 1; the HTTP boundary rejects
// anything else. An out-of-range page yields an empty selection, not an error.
func Paginate(ids []uint32, page, perPage int) ([]uint32, PageResult) {
	total := len(ids)

	result := PageResult{
		TotalItems:  total,
		CurrentPage: page,
		PerPage:     perPage,
	}
	if total == 0 {
		return nil, result
	}

	result.TotalPages = (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	end := start + perPage

	result.StartIndex = start + 1
	result.EndIndex = end
	if result.EndIndex > total {
		result.EndIndex = total
	}

	if start >= total {
		return nil, result
	}
	if end > total {
		end = total
	}

	reversed := make([]uint32, total)
	for i, id := range ids {
		reversed[total-1-i] = id
	}

	return reversed[start:end], result
}
