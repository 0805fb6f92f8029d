package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fumofumoenjoyer/FumoRfetch/sysinfo"
)

// Renderer writes the composed logo and report to a terminal.
type Renderer struct {
	Out   io.Writer
	Gap   int
	Width WidthFunc
}

// InfoLines formats the report as labeled, colored lines in display order.
// An unset terminal is shown as "Unknown".
func InfoLines(r sysinfo.Report) []string {
	terminal := sysinfo.Unknown
	if r.Terminal != nil {
		terminal = *r.Terminal
	}

	return []string{
		sysinfo.ColorBoldCyan + r.Username + "@" + r.Hostname + sysinfo.ColorReset,
		field("OS", r.OS),
		field("Kernel", r.Kernel),
		field("Uptime", r.Uptime),
		field("Shell", r.Shell),
		field("Terminal", terminal),
		field("Packages", r.Packages),
		field("CPU", r.CPU),
		field("GPU", r.GPU),
		field("GPU Driver", r.GPUDriver),
		field("Memory", r.MemoryUsed+" / "+r.MemoryTotal),
	}
}

func field(label, value string) string {
	return fmt.Sprintf("%s%s:%s %s", sysinfo.ColorBoldGreen, label, sysinfo.ColorReset, value)
}

// Render hides the cursor, writes the logo and report side by side and shows
// the cursor again.
func (rd Renderer) Render(logo []string, r sysinfo.Report) error {
	w := bufio.NewWriter(rd.Out)

	if _, err := io.WriteString(w, sysinfo.HideCursor); err != nil {
		return err
	}
	for _, row := range Compose(logo, InfoLines(r), rd.Gap, rd.Width) {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, sysinfo.ShowCursor); err != nil {
		return err
	}
	return w.Flush()
}
