package fields

// Entry is a named field inside a Set.
type Entry struct {
	Name  string
	Field Definition
}

// Set is an ordered mapping of field name to Definition. The zero value is
// ready to use.
type Set struct {
	entries []Entry
}

// NewSet builds a set from entries in order. Later duplicates replace
// earlier ones in place.
func NewSet(entries ...Entry) *Set {
	set := &Set{}
	for _, entry := range entries {
		set.Add(entry.Name, entry.Field)
	}
	return set
}

// Add appends a field, or replaces it in place when the name exists.
func (s *Set) Add(name string, field Definition) *Set {
	if idx := s.Index(name); idx >= 0 {
		s.entries[idx].Field = field
		return s
	}
	s.entries = append(s.entries, Entry{Name: name, Field: field})
	return s
}

// Insert places a field at pos, clamped to the set bounds. An existing
// field with the same name is removed first.
func (s *Set) Insert(pos int, name string, field Definition) {
	s.Remove(name)
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.entries) {
		pos = len(s.entries)
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = Entry{Name: name, Field: field}
}

// Remove deletes a field, reporting it and its former position.
func (s *Set) Remove(name string) (Definition, int, bool) {
	idx := s.Index(name)
	if idx < 0 {
		return nil, -1, false
	}
	field := s.entries[idx].Field
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return field, idx, true
}

// Get returns the named field.
func (s *Set) Get(name string) (Definition, bool) {
	if idx := s.Index(name); idx >= 0 {
		return s.entries[idx].Field, true
	}
	return nil, false
}

// Index returns the position of name or -1.
func (s *Set) Index(name string) int {
	if s == nil {
		return -1
	}
	for idx, entry := range s.entries {
		if entry.Name == name {
			return idx
		}
	}
	return -1
}

// Names returns field names in order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.entries))
	for idx, entry := range s.entries {
		names[idx] = entry.Name
	}
	return names
}

// Entries returns a copy of the entries in order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

// Len returns the number of fields.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Clone returns a shallow copy: the order is independent, the field values
// are shared.
func (s *Set) Clone() *Set {
	return &Set{entries: s.Entries()}
}
