// Package filter implements the spatial convolution used by kernelop.
//
// The package works on raw single-channel 8-bit planes and row-major
// float64 kernels:
//   - Direct 2D convolution over a row range (ConvolveRows)
//   - Border preparation for pixels without a full neighborhood
//   - Kernel generators (identity, box, Gaussian) and named presets
//
// Row ranges are the unit of parallel work: ConvolveRows only reads src
// and only writes the requested rows of dst, so disjoint ranges may run
// concurrently against the same planes.
package filter
