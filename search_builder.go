package resources

import "context"

// SearchBuilder is a fluent builder for typed search queries.
type SearchBuilder[T any] struct {
	cat *Catalog

	term     string
	filters  []Filter
	page     int
	pageSize int
}

// Query sets the free-text search term. Required.
func (b *SearchBuilder[T]) Query(term string) *SearchBuilder[T] {
	b.term = term
	return b
}

// Where constrains a field to the given values (OR within the field,
// AND across Where calls). Repeating a field keeps the last values.
func (b *SearchBuilder[T]) Where(field string, values ...string) *SearchBuilder[T] {
	b.filters = append(b.filters, Filter{Field: field, Values: values})
	return b
}

// Page selects the 1-based result page.
func (b *SearchBuilder[T]) Page(n int) *SearchBuilder[T] {
	b.page = n
	return b
}

// PageSize sets the number of results per page.
func (b *SearchBuilder[T]) PageSize(n int) *SearchBuilder[T] {
	b.pageSize = n
	return b
}

// Do executes the search and decodes the hits into T.
func (b *SearchBuilder[T]) Do(ctx context.Context) ([]T, error) {
	records, err := b.cat.Search(ctx, b.term, &SearchOptions{
		Filters:  b.filters,
		Page:     b.page,
		PageSize: b.pageSize,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](records)
}
