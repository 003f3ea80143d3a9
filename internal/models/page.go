package models

// BoundedPage timetoken-bounded page descriptor used by message history.
//
// Start is exclusive and End is inclusive. With Start > End (or only Start)
// the page covers End <= tt < Start, i.e. strictly older than Start. With
// Start < End it covers Start < tt <= End. Results are filled newest first.
type BoundedPage struct {
	Start *Timetoken
	End   *Timetoken
	Limit *int
}

// NewBoundedPage returns nil when no field is set, so "no pagination
// requested" never looks like a page with default values.
func NewBoundedPage(start, end *Timetoken, limit *int) *BoundedPage {
	if start == nil && end == nil && limit == nil {
		return nil
	}
	return &BoundedPage{Start: start, End: end, Limit: limit}
}

// Bounds возвращает окно страницы как полуинтервал (lower, upper] в терминах
// "старше lower, не новее upper". Флаги has* сообщают, задана ли граница.
//
// lower исключающая нижняя граница, upper включающая верхняя.
func (p *BoundedPage) Bounds() (lower Timetoken, hasLower bool, upper Timetoken, hasUpper bool) {
	if p == nil {
		return 0, false, 0, false
	}
	switch {
	case p.Start != nil && p.End != nil:
		start, end := *p.Start, *p.End
		switch {
		case start > end:
			// end <= tt < start
			if end > 0 {
				return end - 1, true, start - 1, true
			}
			return 0, false, start - 1, true
		case start < end:
			// start < tt <= end
			return start, true, end, true
		default:
			// единственный timetoken end
			if end > 0 {
				return end - 1, true, end, true
			}
			return 0, false, end, true
		}
	case p.Start != nil:
		if *p.Start == 0 {
			return 0, true, 0, true
		}
		return 0, false, *p.Start - 1, true
	case p.End != nil:
		if *p.End > 0 {
			return *p.End - 1, true, 0, false
		}
		return 0, false, 0, false
	}
	return 0, false, 0, false
}

// Contains сообщает, попадает ли timetoken в окно страницы
func (p *BoundedPage) Contains(tt Timetoken) bool {
	lower, hasLower, upper, hasUpper := p.Bounds()
	if hasLower && tt <= lower {
		return false
	}
	if hasUpper && tt > upper {
		return false
	}
	return true
}

// LimitOr возвращает лимит страницы или значение по умолчанию
func (p *BoundedPage) LimitOr(def int) int {
	if p == nil || p.Limit == nil || *p.Limit <= 0 {
		return def
	}
	return *p.Limit
}

// Next builds the page that continues backward from the oldest timetoken
// actually returned by the previous page. The requested bounds are not
// trusted: the server may have returned a narrower set than asked for.
// Returns nil when nothing older can remain inside the original window.
func (p *BoundedPage) Next(oldest Timetoken) *BoundedPage {
	lower, hasLower, _, _ := p.Bounds()
	if oldest == 0 || (hasLower && oldest <= lower+1) {
		return nil
	}

	next := &BoundedPage{Start: oldest.Ptr()}
	if hasLower {
		// нижняя граница исходного окна, записанная включающей
		next.End = (lower + 1).Ptr()
	}
	if p != nil && p.Limit != nil {
		limit := *p.Limit
		next.Limit = &limit
	}
	return next
}

// HashedPage opaque-token page descriptor used by object listings. Start and
// End are returned by the server as next/prev and must be passed back
// byte-for-byte.
type HashedPage struct {
	Start      *string
	End        *string
	TotalCount *int
}

// NewHashedPage returns nil when no field is set
func NewHashedPage(start, end *string, totalCount *int) *HashedPage {
	if start == nil && end == nil && totalCount == nil {
		return nil
	}
	return &HashedPage{Start: start, End: end, TotalCount: totalCount}
}

// NextHashedPage страница, следующая за ответом с токеном next
func NextHashedPage(next string, totalCount *int) *HashedPage {
	if next == "" {
		return nil
	}
	return &HashedPage{Start: &next, TotalCount: totalCount}
}

// PrevHashedPage страница, предшествующая ответу с токеном prev
func PrevHashedPage(prev string, totalCount *int) *HashedPage {
	if prev == "" {
		return nil
	}
	return &HashedPage{End: &prev, TotalCount: totalCount}
}
