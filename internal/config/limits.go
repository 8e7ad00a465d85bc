package config

const (
	// MaxTitleLength is the maximum length for item titles.
	// Limited to 255 to fit comfortably in listings and breadcrumbs.
	MaxTitleLength = 255

	// MaxThumbnailLength caps thumbnail references (URLs or local paths).
	MaxThumbnailLength = 2048

	// MaxTagCount caps the number of tags per item.
	MaxTagCount = 32

	// MaxTagLength caps a single tag.
	MaxTagLength = 64

	// MaxBreadcrumbDepth bounds the parent-chain walk. Nesting depth is
	// not enforced at write time, so the walk needs a hard stop against
	// corrupted or cyclic parent references.
	MaxBreadcrumbDepth = 64
)
