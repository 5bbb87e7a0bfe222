package slider

import "playground-e2e/internal/domain/entity"

// DragPath returns where the pointer goes down and the waypoints it moves
// through. The number of waypoints is always steps regardless of distance; the
// last one is the target. Both points sit on the vertical centre of box.
func DragPath(box entity.BoundingBox, percent, startFraction float64, steps int) (entity.Point, []entity.Point) {
	if steps < 1 {
		steps = 1
	}
	y := box.Y + box.Height/2
	start := entity.Point{X: box.X + box.Width*startFraction, Y: y}
	end := entity.Point{X: box.X + box.Width*(percent/100), Y: y}

	path := make([]entity.Point, steps)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		path[i-1] = entity.Point{
			X: start.X + (end.X-start.X)*f,
			Y: y,
		}
	}
	path[steps-1] = end
	return start, path
}
