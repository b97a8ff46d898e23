package interview

// Track is one interview topic offered to the candidate.
type Track struct {
	Key         string
	Title       string
	Description string
}

var tracks = []Track{
	{Key: "mern", Title: "MERN Stack", Description: "Practice full-stack JavaScript (MongoDB, Express, React, Node)."},
	{Key: "node", Title: "Node.js", Description: "Server-side JavaScript, async patterns, streams, Express."},
	{Key: "cpp", Title: "C++", Description: "OOP, memory, pointers, STL, compile-time vs runtime concepts."},
	{Key: "dsa", Title: "Data Structures", Description: "Arrays, lists, trees, graphs, algorithms, and complexity."},
}

// Tracks returns the offered tracks in display order.
func Tracks() []Track {
	return append([]Track(nil), tracks...)
}
