package sparql

import (
	"fmt"
	"strings"
)

// Context is the structural query context: a path of enumerated tags
// used to synthesize unique internal column names so that multiple
// expressions in the same plan cannot collide.
type Context []string

func (c Context) Push(tag string) Context {
	out := make(Context, len(c)+1)
	copy(out, c)
	out[len(c)] = tag
	return out
}

func (c Context) PushIndexed(tag string, i int) Context {
	return c.Push(fmt.Sprintf("%s(%d)", tag, i))
}

// Column synthesizes a unique internal column name for base at this
// context path.
func (c Context) Column(base string) string {
	return "__" + strings.Join(append(append(Context{}, c...), base), "/")
}
