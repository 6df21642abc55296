package scene

import (
	"fmt"
	"strings"
)

// SVGBuilder renders a geometry into a standalone SVG document. The document
// carries its own entry animation (2s linear left-to-right reveal of every
// path) and hover behavior (point enlargement plus a cursor-following value
// tooltip), so it works when served directly or embedded in a page.
type SVGBuilder struct{}

func NewSVGBuilder() *SVGBuilder {
	return &SVGBuilder{}
}

// SVGHandle holds one rendered document.
type SVGHandle struct {
	key string
	doc string
}

func (h *SVGHandle) Key() string {
	return h.key
}

// Document returns the rendered SVG text.
func (h *SVGHandle) Document() string {
	return h.doc
}

// Draw renders the scene. Empty geometries render to a bare grid/axes
// document rather than failing.
func (b *SVGBuilder) Draw(g Geometry) (Handle, error) {
	var sb strings.Builder
	sb.Grow(1 << 14)

	outerW := g.Width + g.Margin.Left + g.Margin.Right
	outerH := g.Height + g.Margin.Top + g.Margin.Bottom + 50

	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" id=\"%s\" width=\"%0.f\" height=\"%0.f\" viewBox=\"0 0 %0.f %0.f\">\n",
		g.Key, outerW, outerH, outerW, outerH)

	writeStyle(&sb, g.AnimMillis)

	fmt.Fprintf(&sb, "  <g transform=\"translate(%0.f,%0.f)\">\n", g.Margin.Left, g.Margin.Top)

	for _, y := range g.GridY {
		fmt.Fprintf(&sb, "    <line class=\"grid\" x1=\"0\" y1=\"%0.1f\" x2=\"%0.1f\" y2=\"%0.1f\"/>\n", y, g.Width, y)
	}
	for _, x := range g.GridX {
		fmt.Fprintf(&sb, "    <line class=\"grid\" x1=\"%0.1f\" y1=\"0\" x2=\"%0.1f\" y2=\"%0.1f\"/>\n", x, x, g.Height)
	}

	for _, p := range g.Paths {
		writePath(&sb, p)
	}

	for _, m := range g.Markers {
		fmt.Fprintf(&sb, "    <circle class=\"pt\" cx=\"%0.2f\" cy=\"%0.2f\" r=\"%0.f\" fill=\"%s\" data-series=\"%s\" data-value=\"%g\"/>\n",
			m.X, m.Y, PointRadius, m.Color, m.Series, m.Value)
	}

	writeAxes(&sb, g)
	writeLegend(&sb, g.Legend)

	sb.WriteString("  </g>\n")
	writeTooltipScript(&sb)
	sb.WriteString("</svg>\n")

	return &SVGHandle{key: g.Key, doc: sb.String()}, nil
}

// Destroy drops the handle. The document is plain text; there is nothing
// else to release.
func (b *SVGBuilder) Destroy(h Handle) {}

func writeStyle(sb *strings.Builder, animMillis int) {
	sb.WriteString("  <style>\n")
	sb.WriteString("    text { font-family: Arial, sans-serif; font-size: 16px; fill: black; }\n")
	sb.WriteString("    .grid { stroke: black; stroke-width: 0.5; stroke-dasharray: 4; }\n")
	sb.WriteString("    .axis { stroke: black; stroke-width: 1; }\n")
	fmt.Fprintf(sb, "    .series { animation: reveal %dms linear forwards; clip-path: inset(0 100%% 0 0); }\n", animMillis)
	sb.WriteString("    @keyframes reveal { to { clip-path: inset(0); } }\n")
	fmt.Fprintf(sb, "    .pt { cursor: pointer; } .pt:hover { r: %0.fpx; }\n", HoverRadius)
	sb.WriteString("    #tooltip { pointer-events: none; visibility: hidden; }\n")
	sb.WriteString("    #tooltip rect { fill: rgba(255,255,255,0.9); stroke: #ddd; rx: 4; }\n")
	sb.WriteString("    #tooltip text { font-size: 12px; }\n")
	sb.WriteString("  </style>\n")
}

func writePath(sb *strings.Builder, p Path) {
	if len(p.Pts) == 0 {
		return
	}
	var d strings.Builder
	for i, pt := range p.Pts {
		if i == 0 {
			fmt.Fprintf(&d, "M %0.2f %0.2f", pt.X, pt.Y)
			continue
		}
		fmt.Fprintf(&d, " L %0.2f %0.2f", pt.X, pt.Y)
	}
	dash := ""
	if p.Dashed {
		dash = fmt.Sprintf(" stroke-dasharray=\"%s\"", DashPattern)
	}
	fmt.Fprintf(sb, "    <path class=\"series\" id=\"%s\" d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%0.f\"%s/>\n",
		p.ID, d.String(), p.Color, p.Width, dash)
}

func writeAxes(sb *strings.Builder, g Geometry) {
	fmt.Fprintf(sb, "    <line class=\"axis\" x1=\"0\" y1=\"%0.1f\" x2=\"%0.1f\" y2=\"%0.1f\"/>\n", g.Height, g.Width, g.Height)
	fmt.Fprintf(sb, "    <line class=\"axis\" x1=\"0\" y1=\"0\" x2=\"0\" y2=\"%0.1f\"/>\n", g.Height)

	for _, t := range g.YTicks {
		fmt.Fprintf(sb, "    <line class=\"axis\" x1=\"-6\" y1=\"%0.1f\" x2=\"0\" y2=\"%0.1f\"/>\n", t.Pos, t.Pos)
		fmt.Fprintf(sb, "    <text x=\"-10\" y=\"%0.1f\" text-anchor=\"end\" dominant-baseline=\"middle\">%s</text>\n", t.Pos, t.Label)
	}
	for _, t := range g.XTicks {
		fmt.Fprintf(sb, "    <line class=\"axis\" x1=\"%0.1f\" y1=\"%0.1f\" x2=\"%0.1f\" y2=\"%0.1f\"/>\n", t.Pos, g.Height, t.Pos, g.Height+6)
		fmt.Fprintf(sb, "    <text x=\"%0.1f\" y=\"%0.1f\" text-anchor=\"end\" transform=\"rotate(%0.f %0.1f %0.1f)\">%s</text>\n",
			t.Pos, g.Height+20, TickRotation, t.Pos, g.Height+20, t.Label)
	}
}

func writeLegend(sb *strings.Builder, l Legend) {
	if len(l.Items) == 0 {
		return
	}
	fmt.Fprintf(sb, "    <g transform=\"translate(%0.f,%0.f)\">\n", l.X, l.Y)
	fmt.Fprintf(sb, "      <rect width=\"%0.f\" height=\"%0.f\" fill=\"rgba(255,255,255,0.8)\" stroke=\"black\" rx=\"10\" ry=\"10\"/>\n", l.Width, l.Height)
	for _, item := range l.Items {
		y := float64(item.Row)*LegendRowHeight + 15
		fmt.Fprintf(sb, "      <line x1=\"20\" y1=\"%0.f\" x2=\"40\" y2=\"%0.f\" stroke=\"%s\" stroke-width=\"4\"/>\n", y, y, item.Color)
		fmt.Fprintf(sb, "      <text x=\"45\" y=\"%0.f\" dominant-baseline=\"middle\">%s</text>\n", y, item.Label)
	}
	sb.WriteString("    </g>\n")
}

// writeTooltipScript emits the hover handlers: a value tooltip following the
// cursor with 2-decimal locale formatting, matching the point enlargement the
// stylesheet already applies.
func writeTooltipScript(sb *strings.Builder) {
	sb.WriteString(`  <g id="tooltip"><rect width="110" height="24"/><text x="8" y="16"></text></g>
  <script><![CDATA[
    (function () {
      var svg = document.currentScript ? document.currentScript.ownerSVGElement : null;
      if (!svg) { return; }
      var tip = svg.getElementById("tooltip");
      var label = tip.querySelector("text");
      function move(evt) {
        var pt = svg.createSVGPoint();
        pt.x = evt.clientX; pt.y = evt.clientY;
        var loc = pt.matrixTransform(svg.getScreenCTM().inverse());
        tip.setAttribute("transform", "translate(" + (loc.x + 10) + "," + (loc.y - 30) + ")");
      }
      svg.querySelectorAll(".pt").forEach(function (c) {
        c.addEventListener("mouseover", function (evt) {
          var v = Number(c.getAttribute("data-value"));
          label.textContent = "Value: " + v.toLocaleString("en-US", { maximumFractionDigits: 2 });
          tip.style.visibility = "visible";
          move(evt);
        });
        c.addEventListener("mousemove", move);
        c.addEventListener("mouseout", function () {
          tip.style.visibility = "hidden";
        });
      });
    })();
  ]]></script>
`)
}
