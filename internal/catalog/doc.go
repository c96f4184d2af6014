// Package catalog owns storefront products and their URL slugs.
//
// The slug of a product is derived from its display name: the name is
// lower-cased, transliterated to Latin tokens (pinyin for Han characters),
// normalized to [a-z0-9-] and made unique by appending "-1", "-2", ... when
// the base is taken by another product. [SlugAssigner] implements that
// pipeline over a [SlugStore] and also backfills products created without a
// slug. [Service] is the creation path used by the HTTP handlers.
//
// Uniqueness is checked optimistically; the store must back it with a
// unique index and report violations as [ErrSlugConflict], in which case
// the assignment is recomputed and retried exactly once.
package catalog
