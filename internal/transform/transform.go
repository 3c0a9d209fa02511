package transform

// Transform is the visual state of one rendered element.
type Transform struct {
	TranslateX      float64
	TranslateY      float64
	ScaleX          float64
	ScaleY          float64
	RotationDegrees float64
	Opacity         float64
}

// Identity is the untransformed, fully opaque state.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// Visible reports whether the element should be drawn at all.
func (t Transform) Visible() bool {
	return t.Opacity > 0.01 && t.ScaleX > 0 && t.ScaleY > 0
}

// Rig is a set of independent keyframe maps evaluated against one driving
// scalar. Channels without a map keep the base value.
type Rig struct {
	TranslateX KeyframeMap
	TranslateY KeyframeMap
	Scale      KeyframeMap
	Rotation   KeyframeMap
	Opacity    KeyframeMap
}

// Apply evaluates every channel map at v on top of base.
func (r Rig) Apply(v float64, base Transform) Transform {
	out := base
	if r.TranslateX.Len() > 0 {
		out.TranslateX = r.TranslateX.Map(v)
	}
	if r.TranslateY.Len() > 0 {
		out.TranslateY = r.TranslateY.Map(v)
	}
	if r.Scale.Len() > 0 {
		s := r.Scale.Map(v)
		out.ScaleX, out.ScaleY = s, s
	}
	if r.Rotation.Len() > 0 {
		out.RotationDegrees = r.Rotation.Map(v)
	}
	if r.Opacity.Len() > 0 {
		out.Opacity = r.Opacity.Map(v)
	}
	return out
}
