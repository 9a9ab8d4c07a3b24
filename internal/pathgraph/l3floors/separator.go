package l3floors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pathgraph/internal/config"
	"github.com/banshee-data/pathgraph/internal/pathgraph"
	"github.com/banshee-data/pathgraph/internal/pgobserve"
)

// Point is one non-vertical trajectory point together with the index it
// held in the original trajectory, before vertical-passage points were
// removed.
type Point struct {
	OriginalIndex int
	Position      pathgraph.Position
}

// Separate partitions non-vertical points into floor clusters by
// Z-histogram peak analysis (spec.md §4.3), falling back to uniform
// slabbing when no peak survives separation.
//
// Returns floors keyed by level (1..K, ascending z_mean). An empty
// input or a point set with no surviving cluster yields an empty map,
// which is non-fatal (spec.md §4.9 NoFloors).
func Separate(points []Point, cfg *config.TuningConfig) map[int]*pathgraph.Floor {
	if len(points) == 0 {
		return map[int]*pathgraph.Floor{}
	}

	zMin, zMax := points[0].Position.Z, points[0].Position.Z
	for _, p := range points {
		z := p.Position.Z
		if z < zMin {
			zMin = z
		}
		if z > zMax {
			zMax = z
		}
	}

	floorHeight := cfg.GetFloorHeight()
	zRange := zMax - zMin

	if zRange < floorHeight {
		// A Z range under one floor height is a single floor (level 1),
		// whatever its point count.
		floor := buildFloor(points)
		floor.Level = 1
		pgobserve.Logger.Debug("l3floors: separated floors", "count", 1)
		return map[int]*pathgraph.Floor{1: floor}
	}

	peaks := detectPeaks(points, zMin, zMax, cfg)
	if len(peaks) == 0 {
		peaks = uniformSlabPeaks(zMin, zMax, floorHeight)
	}

	floors := assignToPeaks(points, peaks, cfg.GetMinPointsPerFloor())
	pgobserve.Logger.Debug("l3floors: separated floors", "count", len(floors))
	return floors
}

func meanZ(points []Point) float64 {
	sum := 0.0
	for _, p := range points {
		sum += p.Position.Z
	}
	return sum / float64(len(points))
}

// detectPeaks builds a smoothed Z-histogram and returns the z-centers of
// accepted, separated peaks.
func detectPeaks(points []Point, zMin, zMax float64, cfg *config.TuningConfig) []float64 {
	binWidth := cfg.GetHistogramBinWidth()
	minBins := cfg.GetMinHistogramBins()
	zRange := zMax - zMin

	numBins := int(math.Ceil(zRange / binWidth))
	if numBins < minBins {
		numBins = minBins
		binWidth = zRange / float64(numBins)
	}
	if binWidth <= 0 {
		binWidth = zRange / float64(minBins)
	}

	counts := make([]float64, numBins)
	for _, p := range points {
		bin := int((p.Position.Z - zMin) / binWidth)
		if bin < 0 {
			bin = 0
		}
		if bin >= numBins {
			bin = numBins - 1
		}
		counts[bin]++
	}

	smoothed := gaussianSmooth(counts, cfg.GetGaussianSigmaBins())

	totalPoints := float64(len(points))
	threshold := cfg.GetSignificantBinFraction() * totalPoints

	significant := make([]bool, numBins)
	for i, c := range smoothed {
		significant[i] = c >= threshold
	}

	regions := groupSignificantBins(significant, cfg.GetPeakGapBins())

	type candidate struct {
		z     float64
		count float64
	}
	candidates := make([]candidate, 0, len(regions))
	for _, r := range regions {
		weights := smoothed[r.start:r.end]
		centers := make([]float64, r.end-r.start)
		for i := range centers {
			bin := r.start + i
			centers[i] = zMin + (float64(bin)+0.5)*binWidth
		}
		peakZ := stat.Mean(centers, weights)
		candidates = append(candidates, candidate{z: peakZ, count: floats.Sum(weights)})
	}

	// Accept peaks strongest-first, enforcing minimum separation, then
	// report the accepted set in ascending Z order for determinism.
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].count > candidates[j].count })

	minSeparation := cfg.GetPeakSeparationFraction() * cfg.GetFloorHeight()
	var accepted []float64
	for _, c := range candidates {
		tooClose := false
		for _, a := range accepted {
			if math.Abs(c.z-a) < minSeparation {
				tooClose = true
				break
			}
		}
		if !tooClose {
			accepted = append(accepted, c.z)
		}
	}

	sort.Float64s(accepted)
	return accepted
}

type binRange struct{ start, end int } // [start, end)

// groupSignificantBins merges consecutive significant bins separated by
// a gap of at most maxGap non-significant bins into one region.
func groupSignificantBins(significant []bool, maxGap int) []binRange {
	var sigIdx []int
	for i, v := range significant {
		if v {
			sigIdx = append(sigIdx, i)
		}
	}
	if len(sigIdx) == 0 {
		return nil
	}

	var regions []binRange
	start := sigIdx[0]
	prev := sigIdx[0]
	for _, idx := range sigIdx[1:] {
		if idx-prev-1 > maxGap {
			regions = append(regions, binRange{start, prev + 1})
			start = idx
		}
		prev = idx
	}
	regions = append(regions, binRange{start, prev + 1})
	return regions
}

// gaussianSmooth convolves counts with a normalized 1-D Gaussian kernel
// of the given sigma (in bin units), using zero-padding at the edges.
func gaussianSmooth(counts []float64, sigmaBins float64) []float64 {
	radius := int(math.Ceil(3 * sigmaBins))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-(x * x) / (2 * sigmaBins * sigmaBins))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	out := make([]float64, len(counts))
	for i := range counts {
		sum := 0.0
		for k, w := range kernel {
			src := i + k - radius
			if src < 0 || src >= len(counts) {
				continue
			}
			sum += counts[src] * w
		}
		out[i] = sum
	}
	return out
}

// uniformSlabPeaks falls back to evenly spaced slab centers when no
// histogram peak survives separation.
func uniformSlabPeaks(zMin, zMax, floorHeight float64) []float64 {
	numSlabs := int(math.Ceil((zMax - zMin) / floorHeight))
	if numSlabs < 1 {
		numSlabs = 1
	}
	peaks := make([]float64, numSlabs)
	for i := range peaks {
		peaks[i] = zMin + (float64(i)+0.5)*floorHeight
	}
	return peaks
}

// assignToPeaks assigns each point to its nearest peak (ties broken by
// ascending peak index for determinism), drops undersized clusters, and
// relabels the survivors 1..K in ascending z_mean order.
func assignToPeaks(points []Point, peaks []float64, minPointsPerFloor int) map[int]*pathgraph.Floor {
	buckets := make([][]Point, len(peaks))
	for _, p := range points {
		best := 0
		bestDist := math.Abs(p.Position.Z - peaks[0])
		for k := 1; k < len(peaks); k++ {
			d := math.Abs(p.Position.Z - peaks[k])
			if d < bestDist {
				bestDist = d
				best = k
			}
		}
		buckets[best] = append(buckets[best], p)
	}

	type built struct {
		floor *pathgraph.Floor
	}
	var survivors []built
	for _, bucket := range buckets {
		if len(bucket) < minPointsPerFloor {
			continue
		}
		survivors = append(survivors, built{floor: buildFloor(bucket)})
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].floor.ZMean < survivors[j].floor.ZMean
	})

	result := make(map[int]*pathgraph.Floor, len(survivors))
	for i, s := range survivors {
		s.floor.Level = i + 1
		result[s.floor.Level] = s.floor
	}
	return result
}

func buildFloor(bucket []Point) *pathgraph.Floor {
	f := &pathgraph.Floor{
		OriginalIndices: make([]int, len(bucket)),
		Points:          make([]pathgraph.Position, len(bucket)),
	}
	zMin, zMax, sum := math.Inf(1), math.Inf(-1), 0.0
	for i, p := range bucket {
		f.OriginalIndices[i] = p.OriginalIndex
		f.Points[i] = p.Position
		z := p.Position.Z
		sum += z
		if z < zMin {
			zMin = z
		}
		if z > zMax {
			zMax = z
		}
	}
	f.ZMean = sum / float64(len(bucket))
	f.ZMin = zMin
	f.ZMax = zMax
	return f
}
