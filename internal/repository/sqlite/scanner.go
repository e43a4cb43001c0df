package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanItem scans a single key/value item from a database row
func ScanItem(scanner Scanner) (*Item, error) {
	item := &Item{}
	var updatedAt string

	if err := scanner.Scan(&item.Key, &item.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt = t
	return item, nil
}

// ScanItems scans multiple key/value items from database rows
func ScanItems(rows Rows) ([]*Item, error) {
	return scanAll(rows, ScanItem)
}

// ScanCache scans a single cache row
func ScanCache(scanner Scanner) (*Cache, error) {
	cache := &Cache{}
	var createdAt string

	if err := scanner.Scan(&cache.Name, &createdAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	cache.CreatedAt = t
	return cache, nil
}

// ScanCaches scans multiple cache rows
func ScanCaches(rows Rows) ([]*Cache, error) {
	return scanAll(rows, ScanCache)
}

// ScanCacheEntry scans a single cached response
func ScanCacheEntry(scanner Scanner) (*CacheEntry, error) {
	entry := &CacheEntry{}
	var headerJSON, storedAt string

	err := scanner.Scan(
		&entry.CacheName,
		&entry.RequestKey,
		&entry.Status,
		&headerJSON,
		&entry.Body,
		&storedAt,
	)
	if err != nil {
		return nil, err
	}

	header, err := DecodeHeader(headerJSON)
	if err != nil {
		return nil, err
	}
	entry.Header = header

	t, err := ParseTimeFromDB(storedAt)
	if err != nil {
		return nil, err
	}
	entry.StoredAt = t
	return entry, nil
}

// ScanCacheEntries scans multiple cached responses
func ScanCacheEntries(rows Rows) ([]*CacheEntry, error) {
	return scanAll(rows, ScanCacheEntry)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
