package question

import "sync"

// shippedCatalog is the hand-curated catalog of last resort, one partition
// per UI track.
var shippedCatalog = []Question{
	// MERN stack
	{Question: "What is the MERN stack and what are its key components?", TechStack: "mern"},
	{Question: "How does data flow between React, Express, and MongoDB in a MERN application?", TechStack: "mern"},
	{Question: "Explain how to implement authentication in a MERN stack app.", TechStack: "mern"},
	{Question: "What are React Hooks and how do they simplify state management?", TechStack: "mern"},

	// Node.js
	{Question: "Explain the event-driven architecture of Node.js.", TechStack: "node"},
	{Question: "What are streams in Node.js and how are they used?", TechStack: "node"},
	{Question: "How do you handle asynchronous operations in Node.js?", TechStack: "node"},
	{Question: "What is middleware in Express.js and how is it used?", TechStack: "node"},

	// C++
	{Question: "What are the differences between compile-time and run-time polymorphism in C++?", TechStack: "cpp"},
	{Question: "Explain memory management and pointers in C++.", TechStack: "cpp"},
	{Question: "What is the difference between shallow copy and deep copy in C++?", TechStack: "cpp"},
	{Question: "Explain the concept of inheritance and virtual functions in C++.", TechStack: "cpp"},

	// Data structures
	{Question: "What is the difference between a stack and a queue?", TechStack: "dsa"},
	{Question: "How is a linked list different from an array?", TechStack: "dsa"},
	{Question: "Explain the time complexity of different tree traversals.", TechStack: "dsa"},
	{Question: "What are hash tables and how do they work internally?", TechStack: "dsa"},
}

// Catalog is the in-memory fallback question list. It serves reads when the
// durable store is empty or failing and absorbs writes the store rejected.
// It only grows.
type Catalog struct {
	mu        sync.RWMutex
	questions []Question
}

// NewCatalog creates a catalog seeded with the shipped questions.
func NewCatalog() *Catalog {
	return NewCatalogWith(shippedCatalog)
}

// NewCatalogWith creates a catalog seeded with the given questions.
func NewCatalogWith(seed []Question) *Catalog {
	return &Catalog{questions: append([]Question(nil), seed...)}
}

// Append adds q to the catalog.
func (c *Catalog) Append(q Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(c.questions, q)
}

// All returns a copy of every catalog entry in insertion order.
func (c *Catalog) All() []Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Question{}, c.questions...)
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.questions)
}

// Select returns the fallback result for trackKey: every entry when the key
// is empty, otherwise entries whose track is trackKey or DefaultTechStack.
func (c *Catalog) Select(trackKey string) []Question {
	trackKey = NormalizeTrack(trackKey)
	if trackKey == "" {
		return c.All()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []Question{}
	for _, q := range c.questions {
		k := q.TrackKey()
		if k == trackKey || k == DefaultTechStack {
			out = append(out, q)
		}
	}
	return out
}
