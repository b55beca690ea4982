package core

const (
	placeholderTitle  = "Unknown Title"
	placeholderAuthor = "Unknown Author"
)

// BookSnapshot is the display data of a book, copied into the loan at request time.
type BookSnapshot struct {
	Title    string
	Authors  []string
	ImageURL string
}

// PlaceholderBookSnapshot is used when the catalog cannot describe the book.
func PlaceholderBookSnapshot() BookSnapshot {
	return BookSnapshot{
		Title:   placeholderTitle,
		Authors: []string{placeholderAuthor},
	}
}

// BuildBookSnapshot copies authors and fills an empty title or author list with placeholders.
func BuildBookSnapshot(title string, authors []string, imageURL string) BookSnapshot {
	snapshot := BookSnapshot{
		Title:    title,
		ImageURL: imageURL,
	}

	if snapshot.Title == "" {
		snapshot.Title = placeholderTitle
	}

	for _, author := range authors {
		if author != "" {
			snapshot.Authors = append(snapshot.Authors, author)
		}
	}

	if len(snapshot.Authors) == 0 {
		snapshot.Authors = []string{placeholderAuthor}
	}

	return snapshot
}

// IsPlaceholder reports whether the snapshot carries no catalog data at all.
func (s BookSnapshot) IsPlaceholder() bool {
	return s.Title == placeholderTitle &&
		len(s.Authors) == 1 && s.Authors[0] == placeholderAuthor &&
		s.ImageURL == ""
}
