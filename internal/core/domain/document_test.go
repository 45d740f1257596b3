package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_TextAndLines(t *testing.T) {
	doc := Document{
		Nodes: Nodes{
			&Heading{
				Children: Nodes{&Text{Value: "Title"}},
				Position: span(1, 2, 7, 0, 5),
			},
			&LineBreak{},
			&List{Children: Nodes{
				&ListItem{Children: Nodes{&Text{Value: "- a"}, &Text{Value: "b"}}},
				&ListItem{Children: Nodes{&Text{Value: "- c"}}},
			}},
			&LineBreak{},
		},
	}

	assert.Equal(t, "  Title\n- a b\n- c\n", doc.Text())
	assert.Equal(t, []string{"  Title", "", "", "- a b", "- c", "", ""}, doc.Lines())
}

func TestNodeText_TextGroupPadsFromColumns(t *testing.T) {
	group := &TextGroup{Children: Nodes{
		&Text{Value: "Name", Position: span(1, 0, 4, 0, 4)},
		&Text{Value: "Value", Position: span(2, 8, 13, 4, 9)},
	}}

	assert.Equal(t, "Name    Value", NodeText(group))
}

func TestNodeText_Table(t *testing.T) {
	row := func(cells ...string) Node {
		r := &TableRow{Position: span(1, 2, 2, 0, 0)}
		for _, c := range cells {
			r.Children = append(r.Children, &TableCell{Children: Nodes{&Text{Value: c}}})
		}
		return r
	}
	table := &Table{Children: Nodes{row("a", "b"), row("c", "d")}}

	assert.Equal(t, "a  b\nc  d\n", NodeText(table))
}

func TestNodeText_TableRowWithoutPosition(t *testing.T) {
	r := &TableRow{Children: Nodes{
		&TableCell{Children: Nodes{&Text{Value: "x"}, &Text{Value: "y"}}},
		&TableCell{Children: Nodes{&Text{Value: "z"}}},
	}}

	assert.Equal(t, "x y z\n", NodeText(r))
}

func TestNodeText_UnrenderedVariants(t *testing.T) {
	assert.Empty(t, NodeText(&Image{Alt: "logo"}))
	assert.Empty(t, NodeText(&Code{Value: "x := 1"}))
}

func TestContext_Tokens(t *testing.T) {
	assert.Equal(t, 3, Context{Data: "abcdefghijkl"}.Tokens())
	assert.Equal(t, 0, Context{Data: "abc"}.Tokens())
}

func TestRetrievalGraph_Nodes(t *testing.T) {
	g := RetrievalGraph{NodeMap: map[string]IndexNode{
		"a": {ID: "a"},
		"b": {ID: "b"},
	}}

	assert.Equal(t, 2, g.NodeCount())
	assert.Len(t, g.Nodes(), 2)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", *StringPtr("x"))
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "x", Deref(StringPtr("x")))
}
