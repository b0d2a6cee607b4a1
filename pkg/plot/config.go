package plot

// Export defaults.
const (
	DefaultExportFormat   = "svg"
	DefaultExportFilename = "plot_export"
	DefaultExportSize     = 1600
	DefaultExportScale    = 1
)

// ValidExportFormats lists the image formats the charting engine can export.
var ValidExportFormats = map[string]bool{
	"svg":  true,
	"png":  true,
	"jpeg": true,
	"webp": true,
}

// Config holds renderer settings that travel with the figure.
type Config struct {
	DisplayModeBar       bool         `json:"displayModeBar"`
	ToImageButtonOptions ImageOptions `json:"toImageButtonOptions"`
	DisplayLogo          bool         `json:"displaylogo"`
}

// ImageOptions configures the renderer's image export button.
type ImageOptions struct {
	Format   string  `json:"format"`
	Filename string  `json:"filename"`
	Height   int     `json:"height"`
	Width    int     `json:"width"`
	Scale    float64 `json:"scale"`
}

// DefaultConfig returns the renderer settings attached to every figure.
func DefaultConfig() Config {
	return Config{
		DisplayModeBar: true,
		ToImageButtonOptions: ImageOptions{
			Format:   DefaultExportFormat,
			Filename: DefaultExportFilename,
			Height:   DefaultExportSize,
			Width:    DefaultExportSize,
			Scale:    DefaultExportScale,
		},
		DisplayLogo: false,
	}
}
