package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/business-central-sdk/bcschema/internal/edm"
)

// complexTypeGraph is the reference graph between complex types
type complexTypeGraph struct {
	nodes []string
	edges map[string][]string // complex type -> complex types it references
}

func newComplexTypeGraph(types map[string]*ComplexType) *complexTypeGraph {
	graph := &complexTypeGraph{
		edges: make(map[string][]string),
	}

	for name, ct := range types {
		graph.nodes = append(graph.nodes, name)
		for _, p := range ct.properties {
			if p.ref.Kind != edm.KindComplex {
				continue
			}
			if _, ok := types[p.ref.Complex]; ok {
				graph.edges[name] = append(graph.edges[name], p.ref.Complex)
			}
		}
	}

	// deterministic traversal
	sort.Strings(graph.nodes)
	for name := range graph.edges {
		sort.Strings(graph.edges[name])
	}

	return graph
}

// detectCycles returns every reference cycle found, each as the path of
// type names that closes on itself.
func (g *complexTypeGraph) detectCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	var dfs func(node string, path []string)
	dfs = func(node string, path []string) {
		visited[node] = true
		recursionStack[node] = true
		path = append(path, node)

		for _, neighbor := range g.edges[node] {
			if !visited[neighbor] {
				dfs(neighbor, path)
			} else if recursionStack[neighbor] {
				for i, n := range path {
					if n == neighbor {
						cycle := make([]string, len(path)-i)
						copy(cycle, path[i:])
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		recursionStack[node] = false
	}

	for _, node := range g.nodes {
		if !visited[node] {
			dfs(node, nil)
		}
	}

	return cycles
}

// depths returns the nesting depth of every complex type: 1 for a type with
// only primitive properties. Only meaningful on an acyclic graph.
func (g *complexTypeGraph) depths() map[string]int {
	depth := make(map[string]int, len(g.nodes))

	var measure func(node string) int
	measure = func(node string) int {
		if d, ok := depth[node]; ok {
			return d
		}
		d := 1
		for _, neighbor := range g.edges[node] {
			if nd := measure(neighbor) + 1; nd > d {
				d = nd
			}
		}
		depth[node] = d
		return d
	}

	for _, node := range g.nodes {
		measure(node)
	}

	return depth
}

func formatCycle(cycle []string) string {
	return fmt.Sprintf("%s -> %s", strings.Join(cycle, " -> "), cycle[0])
}
