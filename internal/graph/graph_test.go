package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wires/internal/value"
)

func TestAddNode_Idempotent(t *testing.T) {
	g := New()
	g.AddNode("n")
	g.AddNode("n")

	assert.Equal(t, []string{"n"}, g.Nodes())
	assert.True(t, g.HasNode("n"))
	assert.False(t, g.HasNode("missing"))
}

func TestAddAttribute_Idempotent(t *testing.T) {
	g := New()
	g.AddNode("n")
	g.AddAttribute("n", "a")
	require.NoError(t, g.SetValue("n", "a", value.Int(1)))

	// Re-adding must not reset the stored value.
	g.AddAttribute("n", "a")

	v, err := g.Value("n", "a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
	assert.Equal(t, []string{"a"}, g.Attributes("n"))
}

func TestAddAttribute_WithoutNode(t *testing.T) {
	g := New()
	g.AddAttribute("ghost", "a")

	assert.True(t, g.HasAttribute("ghost", "a"))
	assert.False(t, g.HasNode("ghost"))
	assert.Equal(t, []string{"a"}, g.Attributes("ghost"))
}

func TestSetValue_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
	}{
		{"int", value.Int(7)},
		{"float", value.Float(2.5)},
		{"string", value.String("hello")},
		{"bool", value.Bool(true)},
		{"matrix", value.Identity44()},
		{"opaque", value.Opaque{Name: "point", V: [2]int{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode("n")
			g.AddAttribute("n", "a")
			require.NoError(t, g.SetValue("n", "a", tt.v))

			got, err := g.Value("n", "a")
			require.NoError(t, err)
			assert.Equal(t, tt.v, got)
		})
	}
}

func TestSetValue_UnknownAttribute(t *testing.T) {
	g := New()
	g.AddNode("n")

	err := g.SetValue("n", "missing", value.Int(1))
	assert.True(t, IsNotFound(err))
	assert.False(t, g.HasAttribute("n", "missing"))
}

func TestSetValue_TypeMismatchDropsWrite(t *testing.T) {
	g := New()
	g.AddNode("n")
	g.AddAttribute("n", "a")
	notified := 0
	g.AddObserver("n", "a", func(*Graph, Ref, value.Value) { notified++ })

	require.NoError(t, g.SetValue("n", "a", value.Int(1)))
	err := g.SetValue("n", "a", value.String("two"))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	v, err := Get[value.Int](g, "n", "a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
	assert.Equal(t, 1, notified, "rejected write must not notify")
}

func TestSetValue_NilValue(t *testing.T) {
	g := New()
	g.AddAttribute("n", "a")
	notified := 0
	g.AddObserver("n", "a", func(*Graph, Ref, value.Value) { notified++ })

	err := g.SetValue("n", "a", nil)
	require.Error(t, err)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidValue, code)
	assert.False(t, IsTypeMismatch(err))
	assert.Zero(t, notified)

	_, err = g.Value("n", "a")
	assert.True(t, IsNoValue(err))

	require.NoError(t, g.SetValue("n", "a", value.Int(1)))
	err = g.SetValue("n", "a", nil)
	assert.False(t, IsTypeMismatch(err))
	v, err := Get[value.Int](g, "n", "a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
}

func TestGet_TypeMismatch(t *testing.T) {
	g := New()
	g.AddAttribute("n", "a")
	require.NoError(t, g.SetValue("n", "a", value.Int(1)))

	_, err := Get[value.String](g, "n", "a")
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "requested string")

	v, err := Get[value.Value](g, "n", "a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
}

func TestValue_NotFoundAndNoValue(t *testing.T) {
	g := New()
	g.AddAttribute("n", "a")

	_, err := g.Value("n", "missing")
	assert.True(t, IsNotFound(err))
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, code)

	_, err = g.Value("n", "a")
	assert.True(t, IsNoValue(err))

	_, err = g.ValueOf(NodeRef("n"))
	assert.True(t, IsNotFound(err))
}

func TestConnect_SetSemantics(t *testing.T) {
	g := New()
	g.Connect(NodeRef("a"), NodeRef("b"))
	g.Connect(NodeRef("a"), NodeRef("b"))
	g.ConnectAttribute("a", "out", "b", "in")
	g.ConnectAttribute("a", "out", "b", "in")

	assert.Equal(t, []Ref{NodeRef("b")}, g.Succ(NodeRef("a")))
	assert.Equal(t, []Ref{NodeRef("a")}, g.Pred(NodeRef("b")))
	assert.Equal(t, []Ref{AttrRef("b", "in")}, g.Succ(AttrRef("a", "out")))
	assert.Equal(t, []Ref{AttrRef("a", "out")}, g.Pred(AttrRef("b", "in")))
	assert.Len(t, g.Connections(), 2)
}

func TestConnect_NodeAndAttributeKeysAreDistinct(t *testing.T) {
	g := New()
	// A node literally named "a.b" must not collide with attribute a.b.
	g.Connect(NodeRef("a.b"), NodeRef("c"))
	g.Connect(AttrRef("a", "b"), AttrRef("c", "d"))

	assert.Equal(t, []Ref{NodeRef("c")}, g.Succ(NodeRef("a.b")))
	assert.Equal(t, []Ref{AttrRef("c", "d")}, g.Succ(AttrRef("a", "b")))
}

func TestRef(t *testing.T) {
	r := ParseRef("node.attr.with.dots")
	assert.True(t, r.IsAttribute())
	assert.Equal(t, "node", r.Node())
	assert.Equal(t, "attr.with.dots", r.Attr())
	assert.Equal(t, "node.attr.with.dots", r.String())

	n := ParseRef("plain")
	assert.False(t, n.IsAttribute())
	assert.Equal(t, "plain", n.String())
	assert.Equal(t, "", n.Attr())

	assert.True(t, Ref{}.IsZero())
	assert.False(t, n.IsZero())
}
