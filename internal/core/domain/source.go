package domain

// SourceFile is a local file offered for submission as text.
type SourceFile struct {
	// Name is the file name or path; its extension selects the extractor.
	Name string
	Data []byte
}

// ExtractedText is the readable text pulled out of a SourceFile.
type ExtractedText struct {
	// Title comes from document metadata, else from the file name.
	Title string
	Text  string

	// Format names the extractor that produced the text (e.g. "html").
	Format string
}
