package server

import (
	"slices"
	"sync"

	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/libdiff"
	"github.com/signadot/rwjson/rvalue"
)

// Doc is a stored document at some revision.
type Doc struct {
	Name  string
	Rev   int64
	Value rvalue.Owned
}

// Store holds named documents in memory. Every change takes the next
// revision of the store.
//
// Reading a document fills its child index cache, so documents are only
// read inside View and Update, which serialize access.
type Store struct {
	mu   sync.Mutex
	rev  int64
	docs map[string]*Doc
}

func NewStore() *Store {
	return &Store{docs: map[string]*Doc{}}
}

// Rev returns the revision of the last change.
func (s *Store) Rev() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Names returns the names of the stored documents in order.
func (s *Store) Names() []string {
	var res []string
	s.Each(func(d *Doc) error {
		res = append(res, d.Name)
		return nil
	})
	return res
}

// Each calls f with every document in name order, stopping at the first
// error.
func (s *Store) Each(f func(*Doc) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := f(s.docs[name]); err != nil {
			return err
		}
	}
	return nil
}

// View calls f with the document called name, or fails with ErrNotFound.
func (s *Store) View(name string, f func(*Doc) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.docs[name]
	if d == nil {
		return notFound(name)
	}
	return f(d)
}

// View2 calls f with the documents called a and b.
func (s *Store) View2(a, b string, f func(da, db *Doc) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	da, db := s.docs[a], s.docs[b]
	switch {
	case da == nil:
		return notFound(a)
	case db == nil:
		return notFound(b)
	}
	return f(da, db)
}

// Put stores v under name and returns the new document with the diff
// from the previous version, nil when the contents did not change.
func (s *Store) Put(name string, v rvalue.Owned) (*Doc, *ir.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(name, v)
}

// Update replaces the document called name by the result of f.
func (s *Store) Update(name string, f func(*Doc) (rvalue.Owned, error)) (*Doc, *ir.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.docs[name]
	if d == nil {
		return nil, nil, notFound(name)
	}
	v, err := f(d)
	if err != nil {
		return nil, nil, err
	}
	return s.putLocked(name, v)
}

func (s *Store) putLocked(name string, v rvalue.Owned) (*Doc, *ir.Node, error) {
	var (
		d   *ir.Node
		err error
	)
	if prev := s.docs[name]; prev != nil {
		d, err = libdiff.Diff(prev.Value, v)
	} else {
		var n *ir.Node
		n, err = ir.FromSource(v)
		if err == nil {
			d = libdiff.MakeDiff(nil, n)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	s.rev++
	doc := &Doc{Name: name, Rev: s.rev, Value: v}
	s.docs[name] = doc
	return doc, d, nil
}

// Delete removes the document called name and reports whether it existed.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return false
	}
	delete(s.docs, name)
	s.rev++
	return true
}
