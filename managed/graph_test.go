package managed_test

import (
	"testing"

	"github.com/kestrelgraph/stephen/managed"
	"github.com/kestrelgraph/stephen/wordgraph"
	"github.com/stretchr/testify/require"
)

func TestNewAndAddEdge(t *testing.T) {
	g, err := managed.New(3, 1)
	require.NoError(t, err)
	require.Equal(t, 3, g.NumberOfNodes())
	require.Equal(t, []uint32{0, 1, 2}, g.Nodes.ActiveNodes())

	require.NoError(t, g.AddEdge(0, 0, 1))
	target, ok := g.Target(0, 0)
	require.True(t, ok)
	require.Equal(t, wordgraph.Node(1), target)
}

func TestNewNodeGrowsCapacityWhenFreeListEmpty(t *testing.T) {
	g, err := managed.New(1, 1)
	require.NoError(t, err)
	require.False(t, g.Nodes.HasFree())

	c := g.NewNode()
	require.Equal(t, wordgraph.Node(1), c)
	require.Equal(t, 2, g.NumberOfNodes())
	require.True(t, g.Nodes.IsActive(1))
}

func TestProcessCoincidencesMergesTowardSmallerID(t *testing.T) {
	g, err := managed.New(3, 1)
	require.NoError(t, err)

	var merged [][2]wordgraph.Node
	g.OnMerge = func(min, max wordgraph.Node) {
		merged = append(merged, [2]wordgraph.Node{min, max})
	}

	g.Coincide(1, 2)
	require.True(t, g.Nodes.HasCoincidence())

	g.ProcessCoincidences()

	require.False(t, g.Nodes.HasCoincidence())
	require.True(t, g.Nodes.IsActive(1))
	require.False(t, g.Nodes.IsActive(2))
	require.Equal(t, [][2]wordgraph.Node{{1, 2}}, merged)
}

func TestProcessCoincidencesCascadesThroughNewEdges(t *testing.T) {
	g, err := managed.New(4, 1)
	require.NoError(t, err)
	// 0 -(0)-> 2, 1 -(0)-> 3: merging 0 and 1 forces 2 and 3 to coincide too.
	require.NoError(t, g.AddEdge(0, 0, 2))
	require.NoError(t, g.AddEdge(1, 0, 3))

	g.Coincide(0, 1)
	g.ProcessCoincidences()

	require.True(t, g.Nodes.IsActive(0))
	require.False(t, g.Nodes.IsActive(1))
	require.True(t, g.Nodes.IsActive(2))
	require.False(t, g.Nodes.IsActive(3), "2 and 3 must have cascaded together since 0 and 1 both now target the same label")

	target, ok := g.Target(0, 0)
	require.True(t, ok)
	require.Equal(t, wordgraph.Node(2), target)
}

func TestStandardizeRenumbersInBFSOrder(t *testing.T) {
	g, err := managed.New(3, 1)
	require.NoError(t, err)
	// node 0's only edge goes straight to node 2; node 1 is active but
	// unreached from 0.
	require.NoError(t, g.AddEdge(0, 0, 2))

	relabel := g.Standardize()
	require.NotNil(t, relabel)

	// BFS order from 0: [0, 2, 1] -> new ids 0,1,2 respectively.
	require.Equal(t, wordgraph.Node(0), relabel[0])
	require.Equal(t, wordgraph.Node(1), relabel[2])
	require.Equal(t, wordgraph.Node(2), relabel[1])

	target, ok := g.Target(0, 0)
	require.True(t, ok)
	require.Equal(t, wordgraph.Node(1), target)
	require.Equal(t, 3, g.NumberOfNodes())
}
