package htmldom

import "strings"

type declaration struct {
	name      string
	value     string
	important bool
}

func parseStyle(attr string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(attr, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		important := false
		if i := strings.Index(strings.ToLower(value), "!important"); i >= 0 {
			important = true
			value = strings.TrimSpace(value[:i])
		}
		decls = append(decls, declaration{name: name, value: value, important: important})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		s := d.name + ": " + d.value
		if d.important {
			s += " !important"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}

// Style is the inline style of an element, stored in its style attribute.
type Style struct {
	el *Element
}

func (s *Style) decls() []declaration {
	attr, _ := s.el.Attr("style")
	return parseStyle(attr)
}

// SetProperty sets or, for an empty value, removes a declaration.
func (s *Style) SetProperty(name, value, priority string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	decls := s.decls()
	important := strings.EqualFold(priority, "important")

	idx := -1
	for i, d := range decls {
		if d.name == name {
			idx = i
			break
		}
	}
	switch {
	case value == "" && idx >= 0:
		decls = append(decls[:idx], decls[idx+1:]...)
	case value == "":
		return
	case idx >= 0:
		decls[idx] = declaration{name: name, value: value, important: important}
	default:
		decls = append(decls, declaration{name: name, value: value, important: important})
	}
	_ = s.el.SetAttr("style", formatStyle(decls))
}

// Property returns a declaration's value or "".
func (s *Style) Property(name string) string {
	name = strings.ToLower(name)
	for _, d := range s.decls() {
		if d.name == name {
			return d.value
		}
	}
	return ""
}

// Priority returns "important" when the declaration carries !important.
func (s *Style) Priority(name string) string {
	name = strings.ToLower(name)
	for _, d := range s.decls() {
		if d.name == name && d.important {
			return "important"
		}
	}
	return ""
}
