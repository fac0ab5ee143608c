package encoding

// ResolutionClass buckets a source by its effective resolution.
type ResolutionClass string

const (
	Res2160p   ResolutionClass = "2160p"
	Res1440p   ResolutionClass = "1440p"
	Res1080p   ResolutionClass = "1080p"
	Res720p    ResolutionClass = "720p"
	Res480p    ResolutionClass = "480p"
	ResSD      ResolutionClass = "SD"
	ResUnknown ResolutionClass = "Unknown"
)

// ultrawideRatio is the aspect ratio above which width decides the class.
const ultrawideRatio = 2.0

type threshold struct {
	min   int
	class ResolutionClass
}

var (
	widthThresholds = []threshold{
		{3800, Res2160p},
		{2500, Res1440p},
		{1900, Res1080p},
		{1200, Res720p},
	}
	heightThresholds = []threshold{
		{2000, Res2160p},
		{1300, Res1440p},
		{900, Res1080p},
		{650, Res720p},
		{400, Res480p},
	}
)

// ClassifyResolution buckets width x height. Sources wider than 2:1 are
// classified by width because letterboxed masters under-report height.
func ClassifyResolution(width, height int) ResolutionClass {
	if width <= 0 || height <= 0 {
		return ResUnknown
	}
	ratio := float64(width) / float64(height)
	if ratio > ultrawideRatio {
		return classify(width, widthThresholds, Res480p)
	}
	return classify(height, heightThresholds, ResSD)
}

func classify(value int, table []threshold, fallback ResolutionClass) ResolutionClass {
	for _, t := range table {
		if value >= t.min {
			return t.class
		}
	}
	return fallback
}
