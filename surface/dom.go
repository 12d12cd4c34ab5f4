package surface

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	gridSelector = cascadia.MustCompile(`[data-id="font-grid"]`)
	tileSelector = cascadia.MustCompile(`div.tile`)
	imgSelector  = cascadia.MustCompile(`img`)
)

// Grid 返回树中的 font-grid 容器节点，找不到时返回 nil。
func Grid(root *html.Node) *html.Node {
	if root == nil {
		return nil
	}
	return gridSelector.MatchFirst(root)
}

// Tiles 返回容器中的全部字形格子节点（文档顺序）。
func Tiles(grid *html.Node) []*html.Node {
	if grid == nil {
		return nil
	}
	return tileSelector.MatchAll(grid)
}

// CloneTree 深拷贝节点及其全部子孙，返回的树与原树没有共享节点。
func CloneTree(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(CloneTree(child))
	}
	return c
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attribute(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, attribute(key, val))
}
