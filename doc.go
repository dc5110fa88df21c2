// Package ggcore computes the render parameters of faceted
// grammar-of-graphics plots.
//
// A Plot combines a dataset, a global aesthetic mapping and a list of
// layers. Build resolves the mapping of every layer, runs its stat, sets
// up the geom's bounds and applies the position adjustment. The results
// of all layers train the scales which then map every record to a Visual
// in the layout space of its panel.
//
// Scales
//
// The concept of a scale is taken from ggplot2. Build knows about the
// following scales:
//   - x and y       mandatory for all plots, possibly one per panel
//                   column or row if the facet has free scales
//   - color, fill   continuous gradients or discrete palettes
//   - size, alpha   continuous or discrete ranges
//   - linewidth
//   - shape         always discrete
//   - linetype      always discrete
//   - label         identity
//
// Scales are trained in layer order and within a layer in row order, so
// the palette values of discrete scales are assigned in first-seen order
// and two builds of the same plot are identical.
//
// Faceted Plots and Grouping
//
// Wrapped facets lay out one panel per combination of the facet
// variables, grids one panel per combination of row and column
// variables. Grouping is done on discrete values, which may be bin
// intervals produced by aes.Bin.
//
// Errors
//
// Problems of the plot description are reported as *SpecError before
// any work is done. Problems with the data of a layer are reported as
// *LayerError: the layer is dropped and the other layers are built.
package ggcore
