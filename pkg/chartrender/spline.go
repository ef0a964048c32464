package chartrender

import "math"

// 每段曲线的采样点数
const splineSteps = 12

type point struct {
	x, y float64
}

// smooth 按 Chart.js 的 splineCurve 计算贝塞尔控制点并采样，
// 距离在归一化坐标下计算，避免数值轴量级远大于序号轴
func smooth(xs, ys []float64, tension float64, steps int) ([]float64, []float64) {
	n := len(xs)
	if n < 3 || steps < 1 {
		return xs, ys
	}

	sx, sy := span(xs), span(ys)
	pts := make([]point, n)
	for i := range xs {
		pts[i] = point{xs[i], ys[i]}
	}

	before := make([]point, n)
	after := make([]point, n)
	for i := range pts {
		prev, cur, next := pts[max(i-1, 0)], pts[i], pts[min(i+1, n-1)]

		d01 := dist(prev, cur, sx, sy)
		d12 := dist(cur, next, sx, sy)
		s01, s12 := 0.0, 0.0
		if d01+d12 > 0 {
			s01 = d01 / (d01 + d12)
			s12 = d12 / (d01 + d12)
		}
		fa, fb := tension*s01, tension*s12

		before[i] = point{cur.x - fa*(next.x-prev.x), cur.y - fa*(next.y-prev.y)}
		after[i] = point{cur.x + fb*(next.x-prev.x), cur.y + fb*(next.y-prev.y)}
	}

	outX := make([]float64, 0, (n-1)*steps+1)
	outY := make([]float64, 0, (n-1)*steps+1)
	for i := 0; i < n-1; i++ {
		p0, p1, p2, p3 := pts[i], after[i], before[i+1], pts[i+1]
		for k := 0; k < steps; k++ {
			p := bezier(p0, p1, p2, p3, float64(k)/float64(steps))
			outX = append(outX, p.x)
			outY = append(outY, p.y)
		}
	}
	outX = append(outX, pts[n-1].x)
	outY = append(outY, pts[n-1].y)
	return outX, outY
}

func bezier(p0, p1, p2, p3 point, t float64) point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return point{
		x: a*p0.x + b*p1.x + c*p2.x + d*p3.x,
		y: a*p0.y + b*p1.y + c*p2.y + d*p3.y,
	}
}

func dist(a, b point, sx, sy float64) float64 {
	return math.Hypot((b.x-a.x)/sx, (b.y-a.y)/sy)
}

func span(v []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if hi-lo == 0 || math.IsInf(hi-lo, 0) {
		return 1
	}
	return hi - lo
}
