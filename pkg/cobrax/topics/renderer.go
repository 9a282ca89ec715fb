package topics

// Renderer formats topic content for the terminal. ext is the topic
// file extension, including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
