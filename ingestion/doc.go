// Package ingestion turns scraped catalog exports into core items and moves
// them into a catalog store.
//
// A source file is a CSV export with one row per review:
//
//	Title,Price,Link,Image,Description,ReviewAuthor,ReviewRating,ReviewTitle,ReviewBody,ReviewDate
//
// Rows sharing a link are merged into a single item and every row with an
// author contributes a review. The item category is derived from the file
// name (see CategoryFromPath).
//
// Loader parses several files concurrently on a worker pool. Importer
// validates items and writes them to a storage.CatalogRepository in batches,
// reporting progress as it goes.
package ingestion
