package flags

import "strings"

// LinkDirectives collects repeated -link flag values in order.
type LinkDirectives []string

func (l *LinkDirectives) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ", ")
}

func (l *LinkDirectives) Set(s string) error {
	*l = append(*l, s)
	return nil
}
