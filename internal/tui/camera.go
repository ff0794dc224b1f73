package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/driveline/onroad/internal/bus"
	"github.com/driveline/onroad/internal/ui"
)

// DualCameraEnv enables the driver-facing view next to the road view.
const DualCameraEnv = "DUAL_CAMERA_VIEW"

// CameraLayer is the placeholder for the external camera renderer. It fills
// the back of the stack with a framed viewport per stream and a frame
// counter so the tick plumbing stays visible.
type CameraLayer struct {
	width  int
	height int
	dual   bool
	frame  uint64
	vEgo   float64
	haveV  bool
}

// NewCameraLayer reads the dual-camera toggle once at construction.
func NewCameraLayer() *CameraLayer {
	return &CameraLayer{dual: os.Getenv(DualCameraEnv) != ""}
}

// Resize sets the region the layer fills.
func (c *CameraLayer) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Update advances the frame counter and samples the speed readout.
func (c *CameraLayer) Update(s ui.State) {
	c.frame++
	if s.SM == nil {
		return
	}
	if bus.Usable(s.SM, bus.TopicCarState) {
		if payload, ok := s.SM.Get(bus.TopicCarState); ok {
			if cs, ok := payload.(bus.CarState); ok {
				c.vEgo = cs.VEgo
				c.haveV = true
			}
		}
	}
}

// View renders the road view, preceded by the driver view when dual mode is
// on.
func (c *CameraLayer) View() string {
	width, height := c.width, c.height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	if !c.dual {
		return c.renderStream("ROAD", width, height)
	}

	// Driver view sits left of the road view in an even split.
	half := width / 2
	driver := c.renderStream("DRIVER", half, height)
	road := c.renderStream("ROAD", width-half, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, driver, road)
}

func (c *CameraLayer) renderStream(name string, width, height int) string {
	inner := width - 2
	if inner < 10 {
		inner = 10
	}
	rows := height - 2
	if rows < 3 {
		rows = 3
	}

	status := fmt.Sprintf("%s  frame %d", name, c.frame)
	if c.haveV && name == "ROAD" {
		status += fmt.Sprintf("  %.1f m/s", c.vEgo)
	}

	lines := make([]string, 0, rows)
	lines = append(lines, cameraLabelStyle.Render(status))
	horizon := rows / 2
	for i := 1; i < rows; i++ {
		if i == horizon {
			lines = append(lines, strings.Repeat("─", inner))
		} else {
			lines = append(lines, "")
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cameraFrameStyle.Width(inner).Height(rows).Render(body)
}
