package ports

// PreviewOpener shows rendered HTML outside the terminal
type PreviewOpener interface {
	// Open writes html as a standalone page for the named note and opens it
	// with the system handler. It returns the path of the written page.
	Open(name, html string) (string, error)
}
