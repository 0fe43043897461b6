package server

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/ironsheep/layer-import-mcp/internal/layerstack"
)

// Document is an imported layer stack held by the server.
type Document struct {
	Handle string
	Source string
	Stack  *layerstack.Stack
}

// DocumentCache holds imported documents under generated handles ("doc-1",
// "doc-2", ...). Handles are never reused within a process.
//
// DocumentCache is safe for concurrent use. The stacks it holds are not; the
// server handles one request at a time.
type DocumentCache struct {
	mu   sync.RWMutex
	docs map[string]*Document
	next int
}

// NewDocumentCache creates an empty cache.
func NewDocumentCache() *DocumentCache {
	return &DocumentCache{
		docs: make(map[string]*Document),
	}
}

// Add stores ls and returns its document.
func (c *DocumentCache) Add(source string, ls *layerstack.Stack) *Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	doc := &Document{
		Handle: "doc-" + strconv.Itoa(c.next),
		Source: source,
		Stack:  ls,
	}
	c.docs[doc.Handle] = doc
	return doc
}

// Get returns the document with the given handle.
func (c *DocumentCache) Get(handle string) (*Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[handle]
	if !ok {
		return nil, fmt.Errorf("unknown document: %q", handle)
	}
	return doc, nil
}

// Remove drops the document with the given handle.
func (c *DocumentCache) Remove(handle string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[handle]; !ok {
		return fmt.Errorf("unknown document: %q", handle)
	}
	delete(c.docs, handle)
	return nil
}

// Handles returns the handles of all held documents in creation order.
func (c *DocumentCache) Handles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	handles := make([]string, 0, len(c.docs))
	for h := range c.docs {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool {
		a, _ := strconv.Atoi(handles[i][len("doc-"):])
		b, _ := strconv.Atoi(handles[j][len("doc-"):])
		return a < b
	})
	return handles
}
