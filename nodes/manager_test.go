package nodes_test

import (
	"testing"

	"github.com/kestrelgraph/stephen/nodes"
	"github.com/stretchr/testify/require"
)

func TestNewManagerActiveNodesInOrder(t *testing.T) {
	m := nodes.NewManager(3)
	require.Equal(t, []uint32{0, 1, 2}, m.ActiveNodes())
	require.Equal(t, uint32(3), m.Capacity())
	require.False(t, m.HasFree())
}

func TestFreeNodeAndNewNode(t *testing.T) {
	m := nodes.NewManager(2)
	m.FreeNode(0)

	require.Equal(t, []uint32{1}, m.ActiveNodes())
	require.False(t, m.IsActive(0))
	require.True(t, m.HasFree())

	c, ok := m.NewNode()
	require.True(t, ok)
	require.Equal(t, uint32(0), c)
	require.True(t, m.IsActive(0))
	require.Equal(t, []uint32{1, 0}, m.ActiveNodes())
}

func TestNewNodeFailsWhenExhausted(t *testing.T) {
	m := nodes.NewManager(1)
	_, ok := m.NewNode()
	require.False(t, ok)
}

func TestGrowAddsToFreeList(t *testing.T) {
	m := nodes.NewManager(1)
	m.Grow(3)
	require.Equal(t, uint32(3), m.Capacity())
	require.True(t, m.HasFree())

	c, ok := m.NewNode()
	require.True(t, ok)
	require.True(t, m.IsActive(c))
}

func TestIsActiveOutOfRange(t *testing.T) {
	m := nodes.NewManager(2)
	require.False(t, m.IsActive(99))
}

func TestCoincideStack(t *testing.T) {
	m := nodes.NewManager(3)
	require.False(t, m.HasCoincidence())

	m.Coincide(0, 0)
	require.False(t, m.HasCoincidence(), "equal pairs are not pushed")

	m.Coincide(0, 1)
	m.Coincide(1, 2)
	require.True(t, m.HasCoincidence())

	p, ok := m.PopCoincidence()
	require.True(t, ok)
	require.Equal(t, nodes.Pair{U: 1, V: 2}, p)

	p, ok = m.PopCoincidence()
	require.True(t, ok)
	require.Equal(t, nodes.Pair{U: 0, V: 1}, p)

	_, ok = m.PopCoincidence()
	require.False(t, ok)
}

func TestResetActiveRange(t *testing.T) {
	m := nodes.NewManager(4)
	m.FreeNode(1)

	m.ResetActiveRange(2)
	require.Equal(t, []uint32{0, 1}, m.ActiveNodes())
	require.True(t, m.IsActive(0))
	require.True(t, m.IsActive(1))
	require.False(t, m.IsActive(2))
	require.False(t, m.IsActive(3))

	c, ok := m.NewNode()
	require.True(t, ok)
	require.Equal(t, uint32(2), c, "free list must be exactly [2,4) in ascending order")
}
