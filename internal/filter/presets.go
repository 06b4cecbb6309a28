package filter

import "sort"

// presetFuncs builds each named kernel. Every call returns a fresh slice.
var presetFuncs = map[string]func() ([]float64, int){
	"identity": func() ([]float64, int) { return IdentityKernel(1) },
	"box":      func() ([]float64, int) { return BoxKernel(1) },
	"gaussian": func() ([]float64, int) {
		w, size := CachedGaussianKernel(1)
		return append([]float64(nil), w...), size
	},
	"sharpen": fixed3x3(
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	),
	// Laplacian with 8-neighborhood.
	"edge": fixed3x3(
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	),
	"emboss": fixed3x3(
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	),
	"sobel-x": fixed3x3(
		1, 0, -1,
		2, 0, -2,
		1, 0, -1,
	),
	"sobel-y": fixed3x3(
		1, 2, 1,
		0, 0, 0,
		-1, -2, -1,
	),
}

func fixed3x3(w ...float64) func() ([]float64, int) {
	return func() ([]float64, int) {
		return append([]float64(nil), w...), 3
	}
}

// Preset returns the named kernel. The boolean is false for unknown names.
func Preset(name string) (weights []float64, size int, ok bool) {
	fn, ok := presetFuncs[name]
	if !ok {
		return nil, 0, false
	}
	weights, size = fn()
	return weights, size, true
}

// PresetNames returns the known preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presetFuncs))
	for name := range presetFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
