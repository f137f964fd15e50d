package patterns

var colorCycle = [8][4]float32{
	{1, 0, 0, 1},
	{0, 1, 0, 1},
	{0, 0, 1, 1},
	{1, 1, 0, 1},
	{0, 0, 0, 1},
	{0, 1, 1, 1},
	{1, 0, 1, 1},
	{1, 1, 1, 1},
}

// Colors clears every frame to the next of eight saturated colours, which
// maximises the difference between two consecutive frames.
type Colors struct{}

func (Colors) Name() string     { return "colors" }
func (Colors) Init()            {}
func (Colors) GLInit(Renderer)  {}
func (Colors) Destroy(Renderer) {}

func (Colors) Render(r Renderer, _ float64, frame uint64) {
	c := colorCycle[frame%uint64(len(colorCycle))]
	r.ClearColor(c[0], c[1], c[2], c[3])
	r.Clear()
}
