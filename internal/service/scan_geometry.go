package service

import "math"

// Scan geometry for the document-scan feature. The native layer detects a
// page contour in the camera frame; these helpers order the detected corners
// and size the perspective-warp output. Raster work stays in the native layer.

// Point is a 2D point in image pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad holds the four corners of a detected document, ordered top-left,
// top-right, bottom-right, bottom-left.
type Quad struct {
	TopLeft     Point `json:"top_left"`
	TopRight    Point `json:"top_right"`
	BottomRight Point `json:"bottom_right"`
	BottomLeft  Point `json:"bottom_left"`
}

// MinQuadArea is the smallest contour area (in px²) accepted as a page
// candidate during detection.
const MinQuadArea = 1000

// OrderQuadCorners orders four arbitrary corner points into a Quad. The two
// points with the smaller y are the top edge, left/right decided by x; same
// for the bottom edge.
func OrderQuadCorners(pts [4]Point) Quad {
	sorted := pts
	// Insertion sort by y; four elements, stability irrelevant.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Y < sorted[j-1].Y; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	top := [2]Point{sorted[0], sorted[1]}
	bottom := [2]Point{sorted[2], sorted[3]}

	quad := Quad{}
	if top[0].X < top[1].X {
		quad.TopLeft, quad.TopRight = top[0], top[1]
	} else {
		quad.TopLeft, quad.TopRight = top[1], top[0]
	}
	if bottom[0].X < bottom[1].X {
		quad.BottomLeft, quad.BottomRight = bottom[0], bottom[1]
	} else {
		quad.BottomLeft, quad.BottomRight = bottom[1], bottom[0]
	}
	return quad
}

// WarpTargetSize returns the output dimensions for a perspective warp of the
// quad: the larger of each pair of opposing side lengths.
func (q Quad) WarpTargetSize() (width, height int) {
	widthBottom := distance(q.BottomRight, q.BottomLeft)
	widthTop := distance(q.TopRight, q.TopLeft)
	maxWidth := math.Max(widthBottom, widthTop)

	heightRight := distance(q.TopRight, q.BottomRight)
	heightLeft := distance(q.TopLeft, q.BottomLeft)
	maxHeight := math.Max(heightRight, heightLeft)

	return int(maxWidth), int(maxHeight)
}

// Area returns the quad's polygon area via the shoelace formula.
func (q Quad) Area() float64 {
	pts := []Point{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// PlausibleDocumentQuad reports whether a candidate quad is large enough to
// be a page.
func PlausibleDocumentQuad(q Quad) bool {
	return q.Area() >= MinQuadArea
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
