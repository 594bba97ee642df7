package segment

// forest is a union-find over pixel indices with union by size.
type forest struct {
	parent []int32
	size   []int32
	thresh []float32
}

func newForest(n int, k float32) *forest {
	f := &forest{
		parent: make([]int32, n),
		size:   make([]int32, n),
		thresh: make([]float32, n),
	}
	for i := range f.parent {
		f.parent[i] = int32(i)
		f.size[i] = 1
		f.thresh[i] = k
	}
	return f
}

func (f *forest) find(i int32) int32 {
	root := i
	for f.parent[root] != root {
		root = f.parent[root]
	}
	for f.parent[i] != root {
		next := f.parent[i]
		f.parent[i] = root
		i = next
	}
	return root
}

// union joins the trees rooted at a and b and returns the new root.
func (f *forest) union(a, b int32) int32 {
	if f.size[a] < f.size[b] {
		a, b = b, a
	}
	f.parent[b] = a
	f.size[a] += f.size[b]
	return a
}
