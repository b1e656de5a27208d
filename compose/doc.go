// Package compose is the layout engine: it converts high-level widget
// descriptions into absolutely positioned primitives on a slide canvas.
//
// Every composition operation is a value implementing [Item]; applying an
// item places primitives on an explicit [model.Slide] handle:
//
//	deck := model.NewDeck()
//	slide := deck.AddSlide()
//	err := compose.TwoTone{
//	    Title: "Technology Operations",
//	    Left:  []string{"3Q24", "4Q24"},
//	    Right: []string{"YELLOW", "GREEN"},
//	}.Compose(slide)
//
// Positions and sizes are authored in inches and points and converted to
// EMUs at the boundary. Omitted positions center the element on the canvas;
// an explicit position always wins over centering.
//
// Composition fails fast: preconditions (non-empty titles, rects inside the
// canvas, grid shape matching the header count) are checked before any
// primitive is emitted, so a failed item leaves the slide untouched.
//
// Configs ([WidgetConfig], [TableConfig], ...) are value types constructed
// by their Default functions; start from the default and adjust fields
// rather than building one from zero.
package compose
