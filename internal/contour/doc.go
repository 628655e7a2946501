// Package contour traces the outer boundary of a mask component and
// simplifies it into a compact polygon.
//
// # Tracing
//
// Trace walks the component boundary with Moore-neighbor tracing: from the
// component's first pixel in raster-scan order, the walk repeatedly scans
// the 8-neighborhood clockwise, starting just past the backtrack cell it
// entered from, and steps to the first foreground pixel found. Vertices
// are the coordinates of the boundary pixels themselves, in walk order.
// The walk terminates when its (pixel, backtrack) state repeats, which
// closes exactly one loop of the boundary; no iteration cap is needed
// because every step either finishes or visits a fresh state.
//
// The boundary walk always uses the 8-neighborhood regardless of the
// connectivity chosen for labeling: connectivity decides which pixels form
// a component, while the walk merely follows the rim of whatever component
// it is given.
//
// Rings are implicitly closed (the first vertex is not repeated at the
// end) and oriented clockwise in raster axes, meaning positive shoelace
// area with y growing downward. Interior holes are never visited: the
// scan-order start pixel lies on the outer rim, and the walk cannot leave
// it.
//
// # Simplification
//
// Simplify applies Douglas–Peucker with tolerance epsilon to a closed
// ring. The ring is split at the vertex farthest from the start vertex so
// both halves are open chains with fixed endpoints, preventing the closed
// ring from collapsing onto an arbitrary chord. A result with fewer than
// three distinct vertices reports ErrDegenerate rather than returning a
// line or point disguised as a polygon.
package contour
