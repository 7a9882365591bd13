package htmldom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
)

var errForeignElement = errors.New("element does not belong to this document")

// Method is a script-visible element method.
type Method func(args ...any) (any, error)

// Element wraps one html.Node. The same node always yields the same Element.
type Element struct {
	env       *Env
	node      *html.Node
	listeners map[string][]func()
	methods   map[string]Method
	rect      *entity.Rect
	media     *Media
	loaded    string
}

var _ port.Element = (*Element)(nil)

// Node returns the underlying html node.
func (el *Element) Node() *html.Node { return el.node }

// TagName implements port.Element.
func (el *Element) TagName() string { return strings.ToUpper(el.node.Data) }

// ID implements port.Element.
func (el *Element) ID() string {
	v, _ := el.Attr("id")
	return v
}

// ClassName implements port.Element.
func (el *Element) ClassName() string {
	v, _ := el.Attr("class")
	return v
}

// HasClass implements port.Element.
func (el *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(el.ClassName()) {
		if c == name {
			return true
		}
	}
	return false
}

// Attr implements port.Element.
func (el *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr implements port.Element. It bypasses property setter hooks.
func (el *Element) SetAttr(name, value string) error {
	name = strings.ToLower(name)
	found := false
	for i, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == name {
			el.node.Attr[i].Val = value
			found = true
			break
		}
	}
	if !found {
		el.node.Attr = append(el.node.Attr, html.Attribute{Key: name, Val: value})
	}
	el.attributeChanged(name)

	if name == resourceAttr(el.TagName()) && (el.TagName() == "IMG" || el.Connected()) {
		el.env.queueLoad(el)
	}
	return nil
}

// RemoveAttr implements port.Element.
func (el *Element) RemoveAttr(name string) error {
	name = strings.ToLower(name)
	for i, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == name {
			el.node.Attr = append(el.node.Attr[:i], el.node.Attr[i+1:]...)
			el.attributeChanged(name)
			return nil
		}
	}
	return nil
}

func (el *Element) attributeChanged(name string) {
	el.env.record(port.MutationRecord{
		Type:          port.MutationAttributes,
		Target:        el,
		AttributeName: name,
	}, el.node)
}

// Property implements port.Element.
func (el *Element) Property(name string) string {
	v, _ := el.Attr(name)
	return v
}

// SetProperty implements port.Element, running intercepted setters.
func (el *Element) SetProperty(name, value string) error {
	return el.env.setProperty(el, strings.ToLower(name), value)
}

// Style implements port.Element.
func (el *Element) Style() port.Style { return &Style{el: el} }

// Parent implements port.Element.
func (el *Element) Parent() port.Element { return el.env.element(el.node.Parent) }

// Children implements port.Element.
func (el *Element) Children() []port.Element {
	var out []port.Element
	for c := el.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, el.env.Element(c))
		}
	}
	return out
}

// Connected implements port.Element.
func (el *Element) Connected() bool { return isAncestor(el.env.root, el.node) }

// Matches implements port.Element.
func (el *Element) Matches(selector string) (bool, error) {
	sel, err := el.env.compile(selector)
	if err != nil {
		return false, err
	}
	return sel.Match(el.node), nil
}

// QuerySelector implements port.Element.
func (el *Element) QuerySelector(selector string) (port.Element, error) {
	all, err := el.env.queryAll(el.node, selector)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// QuerySelectorAll implements port.Element.
func (el *Element) QuerySelectorAll(selector string) ([]port.Element, error) {
	return el.env.queryAll(el.node, selector)
}

func (e *Env) queryAll(root *html.Node, selector string) ([]port.Element, error) {
	sel, err := e.compile(selector)
	if err != nil {
		return nil, err
	}
	found := goquery.NewDocumentFromNode(root).FindMatcher(sel)
	return e.elements(found.Nodes), nil
}

// TextContent implements port.Element.
func (el *Element) TextContent() string {
	return goquery.NewDocumentFromNode(el.node).Text()
}

// SetTextContent replaces the children with one text node.
func (el *Element) SetTextContent(text string) {
	for c := el.node.FirstChild; c != nil; {
		next := c.NextSibling
		el.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		el.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	el.env.record(port.MutationRecord{Type: port.MutationChildList, Target: el}, el.node)
}

// SetRect overrides the layout box reported by Rect.
func (el *Element) SetRect(r entity.Rect) { el.rect = &r }

// Rect implements port.Element. Hidden elements report an empty box.
func (el *Element) Rect() entity.Rect {
	if !el.Visible() {
		return entity.Rect{}
	}
	style := &Style{el: el}
	if el.rect != nil {
		r := *el.rect
		if w, ok := pixels(style.Property("width")); ok {
			r.Width = w
		}
		if h, ok := pixels(style.Property("height")); ok {
			r.Height = h
		}
		return r
	}

	var r entity.Rect
	if w, ok := pixels(style.Property("width")); ok {
		r.Width = w
	} else if w, ok := pixels(el.Property("width")); ok {
		r.Width = w
	}
	if h, ok := pixels(style.Property("height")); ok {
		r.Height = h
	} else if h, ok := pixels(el.Property("height")); ok {
		r.Height = h
	}
	return r
}

func pixels(v string) (float64, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Visible implements port.Element.
func (el *Element) Visible() bool {
	if _, hidden := el.Attr("hidden"); hidden {
		return false
	}
	style := &Style{el: el}
	if strings.EqualFold(style.Property("visibility"), "hidden") {
		return false
	}
	for n := el.node; n != nil; n = n.Parent {
		anc := el.env.Element(n)
		if anc == nil {
			continue
		}
		if strings.EqualFold((&Style{el: anc}).Property("display"), "none") {
			return false
		}
	}
	return true
}

// AddEventListener implements port.Element.
func (el *Element) AddEventListener(event string, fn func()) {
	if el.listeners == nil {
		el.listeners = make(map[string][]func())
	}
	el.listeners[event] = append(el.listeners[event], fn)
}

// DispatchEvent implements port.Element.
func (el *Element) DispatchEvent(event string) {
	for _, fn := range el.listeners[event] {
		el.env.safely(event+" listener", fn)
	}
}

// Click implements port.Element.
func (el *Element) Click() error {
	el.DispatchEvent("click")
	return nil
}

// DefineMethod exposes a script-visible method on the element.
func (el *Element) DefineMethod(name string, fn Method) {
	if el.methods == nil {
		el.methods = make(map[string]Method)
	}
	el.methods[name] = fn
}

// Call implements port.Element.
func (el *Element) Call(method string, args ...any) (any, error) {
	fn, ok := el.methods[method]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", el.TagName(), method, port.ErrNoMethod)
	}
	return fn(args...)
}

// Media implements port.Element.
func (el *Element) Media() (port.Media, bool) {
	m, ok := el.MediaState()
	if !ok {
		return nil, false
	}
	return m, true
}

// MediaState returns the concrete media state of VIDEO and AUDIO elements.
func (el *Element) MediaState() (*Media, bool) {
	if el.node.DataAtom != atom.Video && el.node.DataAtom != atom.Audio {
		return nil, false
	}
	if el.media == nil {
		el.media = newMedia(el.env.maxRate)
	}
	return el.media, true
}

// AppendChild inserts child as the last child through insertion hooks.
func (el *Element) AppendChild(child port.Element) (port.Element, error) {
	c, ok := child.(*Element)
	if !ok || c == nil || c.env != el.env {
		return nil, errForeignElement
	}
	return el.env.insert(el, c, func() (port.Element, error) {
		return el.attach(c, nil)
	})
}

// InsertBefore inserts child before ref through insertion hooks. A nil
// ref appends.
func (el *Element) InsertBefore(child, ref port.Element) (port.Element, error) {
	c, ok := child.(*Element)
	if !ok || c == nil || c.env != el.env {
		return nil, errForeignElement
	}
	var refNode *html.Node
	if ref != nil {
		r, ok := ref.(*Element)
		if !ok || r.node.Parent != el.node {
			return nil, errors.New("reference node is not a child of this element")
		}
		refNode = r.node
	}
	return el.env.insert(el, c, func() (port.Element, error) {
		return el.attach(c, refNode)
	})
}

func (el *Element) attach(c *Element, ref *html.Node) (port.Element, error) {
	if isAncestor(c.node, el.node) {
		return nil, errors.New("cannot insert an ancestor into its descendant")
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	el.node.InsertBefore(c.node, ref)
	el.env.record(port.MutationRecord{
		Type:   port.MutationChildList,
		Target: el,
		Added:  []port.Element{c},
	}, el.node)

	if el.Connected() {
		el.env.queueSubtreeLoads(c.node)
	}
	return c, nil
}

// Remove detaches the element from its parent.
func (el *Element) Remove() {
	parent := el.node.Parent
	if parent == nil {
		return
	}
	parent.RemoveChild(el.node)
	if p := el.env.Element(parent); p != nil {
		el.env.record(port.MutationRecord{Type: port.MutationChildList, Target: p}, parent)
	}
}

// SetInnerHTML replaces the children with parsed markup without running
// insertion hooks.
func (el *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), el.node)
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}
	for c := el.node.FirstChild; c != nil; {
		next := c.NextSibling
		el.node.RemoveChild(c)
		c = next
	}

	var added []port.Element
	for _, n := range nodes {
		el.node.AppendChild(n)
		if a := el.env.Element(n); a != nil {
			added = append(added, a)
		}
	}
	el.env.record(port.MutationRecord{
		Type:   port.MutationChildList,
		Target: el,
		Added:  added,
	}, el.node)

	if el.Connected() {
		for _, n := range nodes {
			el.env.queueSubtreeLoads(n)
		}
	}
	return nil
}

// OuterHTML serializes the element.
func (el *Element) OuterHTML() string {
	var b strings.Builder
	_ = html.Render(&b, el.node)
	return b.String()
}
