package rostra

import "github.com/tsawler/rostra/geom"

// deckOptions holds configuration for deck assembly.
type deckOptions struct {
	// Canvas size; zero keeps the model default (13.33in × 7.5in)
	width  geom.EMU
	height geom.EMU

	// Document metadata
	title    string
	author   string
	subject  string
	company  string
	keywords []string
}

// defaultOptions returns the default deck options.
func defaultOptions() deckOptions {
	return deckOptions{
		width:  0, // zero means the default canvas
		height: 0,
	}
}

// clone creates a deep copy of deckOptions.
func (o deckOptions) clone() deckOptions {
	newOpts := deckOptions{
		width:   o.width,
		height:  o.height,
		title:   o.title,
		author:  o.author,
		subject: o.subject,
		company: o.company,
	}

	// Deep copy keywords slice
	if o.keywords != nil {
		newOpts.keywords = make([]string, len(o.keywords))
		copy(newOpts.keywords, o.keywords)
	}

	return newOpts
}
