package engine

import "github.com/Clark-Hu/movies-dashboard/internal/domain"

// View is an ordered subset of a Dataset. It holds indices into the dataset
// rather than copies of the rows.
type View struct {
	ds  *domain.Dataset
	idx []int
}

// All returns a view over every row of the dataset.
func All(ds *domain.Dataset) View {
	idx := make([]int, ds.Len())
	for i := range idx {
		idx[i] = i
	}
	return View{ds: ds, idx: idx}
}

// Filter returns the rows of ds matching spec, in dataset order.
func Filter(ds *domain.Dataset, spec FilterSpec) View {
	n := ds.Len()
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if spec.Match(ds.At(i)) {
			idx = append(idx, i)
		}
	}
	return View{ds: ds, idx: idx}
}

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.idx) }

// At returns the i-th row of the view.
func (v View) At(i int) domain.Movie { return v.ds.At(v.idx[i]) }

// Movies copies the view's rows out in order.
func (v View) Movies() []domain.Movie {
	out := make([]domain.Movie, len(v.idx))
	for i, j := range v.idx {
		out[i] = v.ds.At(j)
	}
	return out
}

func (v View) sub(positions []int) View {
	idx := make([]int, len(positions))
	for i, p := range positions {
		idx[i] = v.idx[p]
	}
	return View{ds: v.ds, idx: idx}
}
