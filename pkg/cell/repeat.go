package cell

import "github.com/vango-dev/gridcell/pkg/vdom"

// RepeatIconName is the registry name of the repeated-icon variant.
const RepeatIconName = "repeatIcon"

const (
	defaultIconBase  = "/images/"
	defaultMaxRepeat = 100
)

// RepeatIcon treats the cell value as a count N and renders N copies of
// one image. Zero, negative and non-numeric values render no images.
//
// Params:
//   - rendererImage: image file name (required)
//   - basePath: prefix joined to rendererImage (default "/images/")
//   - maxRepeat: upper bound on N (default 100)
type RepeatIcon struct{}

// Name implements Variant.
func (RepeatIcon) Name() string { return RepeatIconName }

// Describe implements Describer.
func (RepeatIcon) Describe() Description {
	return Description{
		Summary: "repeats an icon value-count times",
		Params:  []string{"rendererImage (required)", "basePath", "maxRepeat", "alt"},
	}
}

// Mount implements Variant.
func (RepeatIcon) Mount(ctx Context) (Renderer, error) {
	image := ctx.Params.String("rendererImage", "")
	if image == "" {
		return nil, missing(RepeatIconName, "rendererImage", ctx.Column)
	}
	limit := ctx.Params.Int("maxRepeat", defaultMaxRepeat)
	if limit < 0 {
		limit = 0
	}
	return &repeatIconRenderer{
		src: ctx.Params.String("basePath", defaultIconBase) + image,
		alt: ctx.Params.String("alt", image),
		max: limit,
	}, nil
}

type repeatIconRenderer struct {
	src string
	alt string
	max int
}

// Render implements Renderer.
func (r *repeatIconRenderer) Render(ctx Context) *vdom.VNode {
	n := ToCount(ctx.Value)
	if n > r.max {
		n = r.max
	}
	return vdom.Span(
		vdom.Class("gc-repeat"),
		vdom.Repeat(n, func(int) *vdom.VNode {
			return vdom.Img(vdom.Class("gc-icon"), vdom.Src(r.src), vdom.Alt(r.alt))
		}),
	)
}
