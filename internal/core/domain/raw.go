package domain

// RawContent is one fetched response body before extraction.
type RawContent struct {
	// SourceName links to the definition that produced the fetch.
	SourceName string

	// URL is the final URL after redirects. Extractors resolve relative
	// event links against it.
	URL string

	// ContentType is the declared media type, when the server sent one.
	ContentType string

	// Body is the raw bytes.
	Body []byte
}

// RawEventRecord is one event as scraped, before normalisation.
// Records are owned by the extractor that produced them and are never
// shared across sources. Every field is free text and may be empty.
type RawEventRecord struct {
	// SourceName links to the definition the record came from.
	SourceName string

	// TitleText is the scraped title.
	TitleText string

	// DateText is the scraped date, in whatever form the source uses.
	DateText string

	// LocationText is the scraped place text.
	LocationText string

	// DescriptionText is the scraped description.
	DescriptionText string

	// CategoryText is the scraped category tag, when the source states one.
	CategoryText string

	// LinkURL is the scraped event link, absolute when the extractor could
	// resolve it.
	LinkURL string
}

// IsNoise reports whether the record carries neither a title nor a link.
// Extractors drop such records instead of emitting them.
func (r RawEventRecord) IsNoise() bool {
	return r.TitleText == "" && r.LinkURL == ""
}
