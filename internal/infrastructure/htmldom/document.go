package htmldom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
)

// Document is the page document.
type Document struct {
	env *Env
}

var _ port.Document = (*Document)(nil)

func (d *Document) find(a atom.Atom) *Element {
	var walk func(n *html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == a {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	return d.env.Element(walk(d.env.root))
}

// DocumentElement implements port.Document.
func (d *Document) DocumentElement() port.Element {
	return d.portElement(d.find(atom.Html))
}

// Head implements port.Document.
func (d *Document) Head() port.Element {
	return d.portElement(d.find(atom.Head))
}

// Body implements port.Document.
func (d *Document) Body() port.Element {
	return d.portElement(d.find(atom.Body))
}

// Element returns the concrete element of el or nil.
func (d *Document) Element(el port.Element) *Element {
	e, _ := el.(*Element)
	return e
}

func (d *Document) portElement(el *Element) port.Element {
	if el == nil {
		return nil
	}
	return el
}

// CreateElement implements port.Document. The element starts detached.
func (d *Document) CreateElement(tag string) port.Element {
	name := strings.ToLower(tag)
	n := &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name))}
	return d.env.Element(n)
}

// QuerySelector implements port.Document.
func (d *Document) QuerySelector(selector string) (port.Element, error) {
	all, err := d.env.queryAll(d.env.root, selector)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// QuerySelectorAll implements port.Document.
func (d *Document) QuerySelectorAll(selector string) ([]port.Element, error) {
	return d.env.queryAll(d.env.root, selector)
}

// ReadyState implements port.Document.
func (d *Document) ReadyState() entity.ReadyState {
	return d.env.readyState
}

// OnReady implements port.Document.
func (d *Document) OnReady(fn func()) {
	if d.env.readyState != entity.ReadyStateLoading {
		fn()
		return
	}
	d.env.onReady = append(d.env.onReady, fn)
}
