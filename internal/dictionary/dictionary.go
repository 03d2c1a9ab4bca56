// Package dictionary implements string interning and categorical
// dictionary encoding shared by the SPARQL join path (string-typed
// join keys are cast to a categorical encoding on both sides before
// joining) and the property-path evaluator (both columns of a path
// step are cast to a shared categorical dictionary before matrix
// construction).
//
// Directly adapted from kortschak-smeargol/internal/owl/owl.go's
// `store` string interner and `Decoder.idFor` id assignment, just
// generalized from RDF term values to arbitrary column values.
package dictionary

// Dictionary assigns stable, densely-packed int32 ids to strings in
// first-seen order, and interns the strings themselves.
type Dictionary struct {
	ids    map[string]int32
	values []string
}

func New() *Dictionary {
	return &Dictionary{ids: map[string]int32{}}
}

// Intern returns the dictionary's canonical copy of s, assigning it a
// new id on first sight. Mirrors owl.go's store.intern.
func (d *Dictionary) Intern(s string) string {
	if id, ok := d.ids[s]; ok {
		return d.values[id]
	}
	d.add(s)
	return s
}

// ID returns s's categorical id, assigning one if s is new. Mirrors
// owl.go's Decoder.idFor, generalized beyond RDF term values.
func (d *Dictionary) ID(s string) int32 {
	if id, ok := d.ids[s]; ok {
		return id
	}
	return d.add(s)
}

func (d *Dictionary) add(s string) int32 {
	id := int32(len(d.values))
	d.ids[s] = id
	d.values = append(d.values, s)
	return id
}

// Value returns the string for a previously assigned id.
func (d *Dictionary) Value(id int32) (string, bool) {
	if id < 0 || int(id) >= len(d.values) {
		return "", false
	}
	return d.values[id], true
}

// Len is the number of distinct interned strings — the dimension `N`
// used to size property-path adjacency matrices.
func (d *Dictionary) Len() int { return len(d.values) }

// Lookup returns s's id without assigning a new one.
func (d *Dictionary) Lookup(s string) (int32, bool) {
	id, ok := d.ids[s]
	return id, ok
}
