package algo

import "github.com/elektrokombinacija/gridpath/internal/core"

// BreadthFirstLength returns the optimal 4-connected path length by plain
// breadth-first search. It is an independent reference for the engine, which
// may answer longer on some obstacle layouts.
func BreadthFirstLength(grid *core.Grid, query core.Query) (int, bool, error) {
	if err := query.Validate(grid); err != nil {
		return core.NoPath, false, err
	}
	if query.Start == query.Goal {
		return 0, true, nil
	}

	dist := map[core.Pos]int{query.Start: 0}
	queue := []core.Pos{query.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range grid.Neighbors(cur) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			if next == query.Goal {
				return dist[next], true, nil
			}
			queue = append(queue, next)
		}
	}
	return core.NoPath, false, nil
}
