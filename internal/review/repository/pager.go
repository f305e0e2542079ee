package repository

import "context"

// pageFunc fetches one page and returns its items and the next page number,
// zero when there are no more pages.
type pageFunc[T any] func(ctx context.Context, page int) ([]T, int, error)

// collectPages walks every page of a paginated endpoint, starting at page 1.
func collectPages[T any](ctx context.Context, fetch pageFunc[T]) ([]T, error) {
	var all []T
	for page := 1; page > 0; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, next, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next <= page {
			break
		}
		page = next
	}
	return all, nil
}
