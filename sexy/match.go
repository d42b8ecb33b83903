package sexy

import (
	"fmt"
	"maps"
)

// Match checks actual against pattern.
//
// In a pattern, `_` matches any single datum and `...` inside a list matches
// any run of zero or more items. A labeled pattern `#x=p` binds x to the
// datum that p matched; a later `#x#` must then be structurally equal to
// that datum. Labels on actual are ignored.
//
// The returned error names the path to the first mismatch.
func Match(pattern, actual *Node) error {
	m := matcher{labels: map[string]*Node{}}
	return m.match(pattern, actual, "root")
}

type matcher struct {
	labels map[string]*Node
}

func (m *matcher) match(pattern, actual *Node, path string) error {
	if pattern == nil || actual == nil {
		if pattern == actual {
			return nil
		}
		return fmt.Errorf("at %s: expected %v, got %v", path, pattern, actual)
	}

	if err := m.matchUnlabeled(pattern, actual, path); err != nil {
		return err
	}
	if pattern.Label != "" {
		m.labels[pattern.Label] = actual
	}
	return nil
}

func (m *matcher) matchUnlabeled(pattern, actual *Node, path string) error {
	if pattern.IsWildcard() {
		return nil
	}

	switch pattern.Type {
	case NodeLabelRef:
		bound, ok := m.labels[pattern.Text]
		if !ok {
			return fmt.Errorf("at %s: label #%s# used before it was defined", path, pattern.Text)
		}
		if !Equal(bound, actual) {
			return fmt.Errorf("at %s: expected #%s# = %s, got %s", path, pattern.Text, bound, actual)
		}
		return nil

	case NodeEllipsis:
		return fmt.Errorf("at %s: ... is only allowed inside a list", path)

	case NodeList:
		if actual.Type != NodeList {
			return fmt.Errorf("at %s: expected list %s, got %s", path, pattern, actual)
		}
		return m.matchItems(pattern.Items, actual.Items, path, 0)

	default:
		if pattern.Type != actual.Type || pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}
}

// matchItems matches the remaining pattern items against the remaining
// actual items. index is the position of actual[0] in the enclosing list.
func (m *matcher) matchItems(pattern, actual []*Node, path string, index int) error {
	if len(pattern) == 0 {
		if len(actual) != 0 {
			return fmt.Errorf("at %s[%d]: unexpected extra item %s", path, index, actual[0])
		}
		return nil
	}

	head := pattern[0]
	if head.Type == NodeEllipsis {
		// Try the shortest run first. Bindings made by a failed attempt
		// must not leak into the next one.
		var lastErr error
		for skip := 0; skip <= len(actual); skip++ {
			saved := maps.Clone(m.labels)
			err := m.matchItems(pattern[1:], actual[skip:], path, index+skip)
			if err == nil {
				return nil
			}
			m.labels = saved
			lastErr = err
		}
		return lastErr
	}

	if len(actual) == 0 {
		return fmt.Errorf("at %s[%d]: missing item %s", path, index, head)
	}
	if err := m.match(head, actual[0], fmt.Sprintf("%s[%d]", path, index)); err != nil {
		return err
	}
	return m.matchItems(pattern[1:], actual[1:], path, index+1)
}

// Equal reports whether a and b are the same datum, ignoring labels.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Text != b.Text || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
