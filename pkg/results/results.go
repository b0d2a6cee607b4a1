package results

// Results is the analysis output consumed by the engine.
//
// Only the fields the engine reads are modelled. Other sheets produced by
// the backend (model summaries, warnings, cohort tables) are ignored during
// decoding.
type Results struct {
	Effects []EffectRecord `json:"Effects"`
	Heatmap Heatmap        `json:"heatmap"`
	Options RunOptions     `json:"options"`

	// Error carries a backend failure message. The engine does not act on
	// it; callers surface it to the user.
	Error string `json:"error,omitempty"`
}

// Heatmap holds the heatmap-specific part of a results object.
type Heatmap struct {
	// Data is the set of records the backend considered plottable. Only
	// its presence is used: an empty Data means no heatmap can be shown.
	Data []EffectRecord `json:"data,omitempty"`

	// Dendrogram is the precomputed clustering figure, if any.
	Dendrogram *Descriptor `json:"dendrogram,omitempty"`
}

// RunOptions are the run-level settings echoed back by the backend.
type RunOptions struct {
	Name string `json:"name,omitempty"`
}

// HasHeatmap reports whether any heatmap can be shown.
func (r *Results) HasHeatmap() bool {
	return r != nil && len(r.Heatmap.Data) > 0
}

// HasDendrogram reports whether the clustering view can be shown.
func (r *Results) HasDendrogram() bool {
	return r.HasHeatmap() && r.Heatmap.Dendrogram != nil
}

// Title returns the run name used as the plot title.
func (r *Results) Title() string {
	if r == nil {
		return ""
	}
	return r.Options.Name
}
